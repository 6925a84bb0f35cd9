package rtm

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dwaring87/rtm-api/internal/domain"
)

// fakeAPI serves canned rsp bodies per method and records every request's
// query so tests can check signing and parameters.
type fakeAPI struct {
	t *testing.T

	mu       sync.Mutex
	bodies   map[string]string
	requests []url.Values
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	f := &fakeAPI{t: t, bodies: make(map[string]string)}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		f.mu.Lock()
		f.requests = append(f.requests, q)
		body, ok := f.bodies[q.Get("method")]
		f.mu.Unlock()
		if !ok {
			body = `{"rsp":{"stat":"fail","err":{"code":"112","msg":"Method not found"}}}`
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeAPI) respond(method, rspBody string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies[method] = fmt.Sprintf(`{"rsp":%s}`, rspBody)
}

func (f *fakeAPI) lastRequest() url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(f.t, f.requests)
	return f.requests[len(f.requests)-1]
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...Option) *Client {
	opts = append([]Option{WithEndpoint(srv.URL + "/")}, opts...)
	return New("key123", "sekrit", opts...)
}

func TestCall_SignsEveryRequest(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.respond("rtm.test.echo", `{"stat":"ok"}`)

	c := newTestClient(t, srv)
	_, err := c.call(context.Background(), "rtm.test.echo", map[string]string{"foo": "bar"})
	require.NoError(t, err)

	q := api.lastRequest()
	assert.Equal(t, "key123", q.Get("api_key"))
	assert.Equal(t, "json", q.Get("format"))

	// Recompute the signature over everything except api_sig itself.
	expected := url.Values{}
	for k, vs := range q {
		if k != "api_sig" {
			expected.Set(k, vs[0])
		}
	}
	assert.Equal(t, sign("sekrit", expected), q.Get("api_sig"))
}

func TestCall_ServiceError(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.respond("rtm.tasks.getList", `{"stat":"fail","err":{"code":"98","msg":"Login failed / Invalid auth token"}}`)

	c := newTestClient(t, srv)
	_, err := c.GetTasks(context.Background(), "")
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, CodeLoginFailed, apiErr.Code)
	assert.True(t, IsAuthError(err))
}

func TestGetTasks_FlattensNestedLists(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.respond("rtm.tasks.getList", `{"stat":"ok","tasks":{"rev":"abc","list":[
		{"id":"1","taskseries":[
			{"id":"10","name":"Buy milk","source":"api","url":"","created":"2026-08-20T10:00:00Z","modified":"2026-08-20T10:00:00Z",
			 "tags":{"tag":["errand","grocery"]},
			 "task":[{"id":"100","due":"2026-08-24T00:00:00Z","has_due_time":"0","added":"2026-08-20T10:00:00Z","completed":"","deleted":"","priority":"1","postponed":"0","estimate":""}]},
			{"id":"11","name":"Call mom","source":"js","url":"","created":"2026-08-21T10:00:00Z","modified":"2026-08-21T10:00:00Z",
			 "tags":[],
			 "task":[{"id":"101","due":"","has_due_time":"0","added":"2026-08-21T10:00:00Z","completed":"2026-08-22T09:00:00Z","deleted":"","priority":"N","postponed":"0","estimate":""}]}
		]},
		{"id":"2","taskseries":{"id":"12","name":"Single series","source":"api","url":"","created":"2026-08-21T10:00:00Z","modified":"2026-08-21T10:00:00Z",
			"tags":[],
			"task":{"id":"102","due":"","has_due_time":"0","added":"2026-08-21T10:00:00Z","completed":"","deleted":"","priority":"3","postponed":"0","estimate":""}}}
	]}}`)

	c := newTestClient(t, srv)
	tasks, err := c.GetTasks(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	assert.Equal(t, domain.TaskRef(1, 10, 100), tasks[0].Ref())
	assert.Equal(t, "Buy milk", tasks[0].Name)
	assert.Equal(t, domain.PriorityHigh, tasks[0].Priority)
	assert.Equal(t, []string{"errand", "grocery"}, tasks[0].Tags)

	assert.True(t, tasks[1].IsCompleted())
	assert.Equal(t, domain.PriorityNone, tasks[1].Priority)

	// Third list used the collapsed single-object form end to end.
	assert.Equal(t, domain.TaskRef(2, 12, 102), tasks[2].Ref())
	assert.Equal(t, domain.PriorityLow, tasks[2].Priority)
}

func TestGetTasks_FilterForwarded(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.respond("rtm.tasks.getList", `{"stat":"ok","tasks":{"list":[]}}`)

	c := newTestClient(t, srv)
	_, err := c.GetTasks(context.Background(), "status:incomplete")
	require.NoError(t, err)

	assert.Equal(t, "status:incomplete", api.lastRequest().Get("filter"))
}

func TestMutations_CreateTimelineOnce(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.respond("rtm.timelines.create", `{"stat":"ok","timeline":"tl-77"}`)
	api.respond("rtm.tasks.complete", `{"stat":"ok"}`)
	api.respond("rtm.tasks.postpone", `{"stat":"ok"}`)

	c := newTestClient(t, srv, WithAuth("tok", 42))
	ref := domain.TaskRef(1, 10, 100)

	require.NoError(t, c.CompleteTask(context.Background(), ref))
	require.NoError(t, c.PostponeTask(context.Background(), ref))

	q := api.lastRequest()
	assert.Equal(t, "tl-77", q.Get("timeline"))
	assert.Equal(t, "1", q.Get("list_id"))
	assert.Equal(t, "10", q.Get("taskseries_id"))
	assert.Equal(t, "100", q.Get("task_id"))
	assert.Equal(t, "tok", q.Get("auth_token"))

	timelines := 0
	api.mu.Lock()
	for _, r := range api.requests {
		if r.Get("method") == "rtm.timelines.create" {
			timelines++
		}
	}
	api.mu.Unlock()
	assert.Equal(t, 1, timelines, "timeline must be cached per session")
}

func TestAuthHandshake(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.respond("rtm.auth.getFrob", `{"stat":"ok","frob":"frob-1"}`)
	api.respond("rtm.auth.getToken", `{"stat":"ok","auth":{"token":"tok-9","perms":"delete","user":{"id":"42","username":"bob","fullname":"Bob Smith"}}}`)

	c := newTestClient(t, srv)
	ctx := context.Background()

	frob, err := c.GetFrob(ctx)
	require.NoError(t, err)
	assert.Equal(t, "frob-1", frob)

	authURL := c.AuthURL(frob, "delete")
	u, err := url.Parse(authURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "key123", q.Get("api_key"))
	assert.Equal(t, "delete", q.Get("perms"))
	assert.Equal(t, "frob-1", q.Get("frob"))
	assert.NotEmpty(t, q.Get("api_sig"))

	auth, err := c.GetToken(ctx, frob)
	require.NoError(t, err)
	assert.Equal(t, "tok-9", auth.Token)
	assert.Equal(t, int64(42), auth.User.ID)
	assert.Equal(t, "bob", auth.User.Username)

	// Token is installed for subsequent calls.
	api.respond("rtm.auth.checkToken", `{"stat":"ok","auth":{"token":"tok-9","perms":"delete","user":{"id":"42","username":"bob","fullname":"Bob Smith"}}}`)
	_, err = c.CheckToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-9", api.lastRequest().Get("auth_token"))
}

func TestGetLists(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.respond("rtm.lists.getList", `{"stat":"ok","lists":{"list":[
		{"id":"100","name":"Inbox","deleted":"0","locked":"1","archived":"0","position":"-1","smart":"0"},
		{"id":"101","name":"Work","deleted":"0","locked":"0","archived":"0","position":"0","smart":"0"},
		{"id":"102","name":"Overdue","deleted":"0","locked":"0","archived":"0","position":"0","smart":"1"}
	]}}`)

	c := newTestClient(t, srv)
	lists, err := c.GetLists(context.Background())
	require.NoError(t, err)
	require.Len(t, lists, 3)

	assert.Equal(t, int64(100), lists[0].ID)
	assert.True(t, lists[0].Locked)
	assert.Equal(t, -1, lists[0].Position)
	assert.True(t, lists[2].Smart)
}

// recordingScheduler verifies the client consults the rate gate before each
// HTTP call with the authenticated user's id.
type recordingScheduler struct {
	mu    sync.Mutex
	users []int64
}

func (r *recordingScheduler) Wait(_ context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
	return nil
}

func (r *recordingScheduler) Schedule(userID int64, fn func()) { fn() }

func TestCall_GatedByScheduler(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.respond("rtm.lists.getList", `{"stat":"ok","lists":{"list":[]}}`)

	sched := &recordingScheduler{}
	c := newTestClient(t, srv, WithScheduler(sched), WithAuth("tok", 42))

	_, err := c.GetLists(context.Background())
	require.NoError(t, err)
	_, err = c.GetLists(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int64{42, 42}, sched.users)
}
