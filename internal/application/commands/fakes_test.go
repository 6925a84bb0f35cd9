package commands

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/dwaring87/rtm-api/internal/domain"
	"github.com/dwaring87/rtm-api/internal/ports"
	"github.com/dwaring87/rtm-api/internal/refstore"
)

// fakeTaskService serves a fixed task set and records mutations.
type fakeTaskService struct {
	tasks    []domain.Task
	getCalls int

	completed   []domain.Ref
	uncompleted []domain.Ref
	deleted     []domain.Ref
	postponed   []domain.Ref
	moved       map[domain.Ref]int64
	renamed     map[domain.Ref]string
	prioritized map[domain.Ref]domain.Priority
	due         map[domain.Ref]string
	tagged      map[domain.Ref][]string
	untagged    map[domain.Ref][]string

	err error
}

var _ ports.TaskService = (*fakeTaskService)(nil)

func newFakeTaskService(tasks ...domain.Task) *fakeTaskService {
	return &fakeTaskService{
		tasks:       tasks,
		moved:       make(map[domain.Ref]int64),
		renamed:     make(map[domain.Ref]string),
		prioritized: make(map[domain.Ref]domain.Priority),
		due:         make(map[domain.Ref]string),
		tagged:      make(map[domain.Ref][]string),
		untagged:    make(map[domain.Ref][]string),
	}
}

func (f *fakeTaskService) GetTasks(_ context.Context, _ string) ([]domain.Task, error) {
	f.getCalls++
	return f.tasks, f.err
}

func (f *fakeTaskService) AddTask(_ context.Context, name string, _ bool) (domain.Task, error) {
	if f.err != nil {
		return domain.Task{}, f.err
	}
	task := domain.Task{
		ListID:   1,
		SeriesID: int64(100 + len(f.tasks)),
		TaskID:   int64(1000 + len(f.tasks)),
		Name:     name,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

func (f *fakeTaskService) CompleteTask(_ context.Context, ref domain.Ref) error {
	f.completed = append(f.completed, ref)
	return f.err
}

func (f *fakeTaskService) UncompleteTask(_ context.Context, ref domain.Ref) error {
	f.uncompleted = append(f.uncompleted, ref)
	return f.err
}

func (f *fakeTaskService) DeleteTask(_ context.Context, ref domain.Ref) error {
	f.deleted = append(f.deleted, ref)
	return f.err
}

func (f *fakeTaskService) SetTaskName(_ context.Context, ref domain.Ref, name string) error {
	f.renamed[ref] = name
	return f.err
}

func (f *fakeTaskService) SetPriority(_ context.Context, ref domain.Ref, p domain.Priority) error {
	f.prioritized[ref] = p
	return f.err
}

func (f *fakeTaskService) SetDueDate(_ context.Context, ref domain.Ref, due string, _ bool) error {
	f.due[ref] = due
	return f.err
}

func (f *fakeTaskService) PostponeTask(_ context.Context, ref domain.Ref) error {
	f.postponed = append(f.postponed, ref)
	return f.err
}

func (f *fakeTaskService) MoveTask(_ context.Context, ref domain.Ref, toListID int64) error {
	f.moved[ref] = toListID
	return f.err
}

func (f *fakeTaskService) AddTags(_ context.Context, ref domain.Ref, tags []string) error {
	f.tagged[ref] = tags
	return f.err
}

func (f *fakeTaskService) RemoveTags(_ context.Context, ref domain.Ref, tags []string) error {
	f.untagged[ref] = tags
	return f.err
}

// fakeListService serves a fixed list set and records mutations.
type fakeListService struct {
	lists    []domain.List
	getCalls int

	renamed    map[int64]string
	archived   []int64
	unarchived []int64
	deleted    []int64

	err error
}

var _ ports.ListService = (*fakeListService)(nil)

func newFakeListService(lists ...domain.List) *fakeListService {
	return &fakeListService{lists: lists, renamed: make(map[int64]string)}
}

func (f *fakeListService) GetLists(_ context.Context) ([]domain.List, error) {
	f.getCalls++
	return f.lists, f.err
}

func (f *fakeListService) AddList(_ context.Context, name string) (domain.List, error) {
	if f.err != nil {
		return domain.List{}, f.err
	}
	list := domain.List{ID: int64(200 + len(f.lists)), Name: name}
	f.lists = append(f.lists, list)
	return list, nil
}

func (f *fakeListService) RenameList(_ context.Context, listID int64, name string) error {
	f.renamed[listID] = name
	return f.err
}

func (f *fakeListService) ArchiveList(_ context.Context, listID int64) error {
	f.archived = append(f.archived, listID)
	return f.err
}

func (f *fakeListService) UnarchiveList(_ context.Context, listID int64) error {
	f.unarchived = append(f.unarchived, listID)
	return f.err
}

func (f *fakeListService) DeleteList(_ context.Context, listID int64) error {
	f.deleted = append(f.deleted, listID)
	return f.err
}

// fakeCache is an in-memory ports.TaskCache.
type fakeCache struct {
	snapshots map[int64][]domain.Task
	syncedAt  map[int64]time.Time
}

var _ ports.TaskCache = (*fakeCache)(nil)

func newFakeCache() *fakeCache {
	return &fakeCache{
		snapshots: make(map[int64][]domain.Task),
		syncedAt:  make(map[int64]time.Time),
	}
}

func (f *fakeCache) Replace(userID int64, tasks []domain.Task) error {
	f.snapshots[userID] = tasks
	f.syncedAt[userID] = time.Now()
	return nil
}

func (f *fakeCache) Tasks(userID int64) ([]domain.Task, error) {
	return f.snapshots[userID], nil
}

func (f *fakeCache) LastSync(userID int64) (time.Time, error) {
	return f.syncedAt[userID], nil
}

func (f *fakeCache) Close() error { return nil }

const testUserID = 42

func newTestDeps(t *testing.T, tasks *fakeTaskService, lists *fakeListService) Deps {
	t.Helper()
	store := refstore.New(filepath.Join(t.TempDir(), "index.json"))
	if err := store.Load(); err != nil {
		t.Fatalf("load store: %v", err)
	}
	return Deps{
		Tasks:  tasks,
		Lists:  lists,
		Store:  store,
		UserID: testUserID,
	}
}
