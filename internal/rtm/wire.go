package rtm

import (
	"bytes"
	"encoding/json"
	"time"
)

// The service's JSON is generated from an XML representation, which leaves
// two quirks the decoder has to absorb: every scalar arrives as a string,
// and a field that is logically a collection arrives as a bare object when
// it holds exactly one element. The types here normalize both.

// many decodes a JSON value that may be an array of T, a single T, or an
// empty placeholder ("", null, []).
type many[T any] []T

func (m *many[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0, string(data) == "null", string(data) == `""`:
		*m = nil
		return nil
	case data[0] == '[':
		return json.Unmarshal(data, (*[]T)(m))
	default:
		var one T
		if err := json.Unmarshal(data, &one); err != nil {
			return err
		}
		*m = many[T]{one}
		return nil
	}
}

// flag decodes the service's "0"/"1" string booleans.
type flag bool

func (f *flag) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*f = s == "1"
	return nil
}

// tagList decodes the tags field, which is "[]" when empty and
// {"tag": "x"} or {"tag": ["x", "y"]} otherwise.
type tagList []string

func (t *tagList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] == '[' || string(data) == "null" {
		*t = nil
		return nil
	}
	var w struct {
		Tag many[string] `json:"tag"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*t = tagList(w.Tag)
	return nil
}

// parseTime parses the service's ISO 8601 timestamps. Empty strings (the
// service's encoding for "not set") and garbage both yield the zero time.
func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// envelope is the outer layer of every response.
type envelope struct {
	Rsp json.RawMessage `json:"rsp"`
}

// status is the part of the rsp object shared by success and failure.
type status struct {
	Stat string `json:"stat"`
	Err  *Error `json:"err"`
}

// wireList is a list as returned by lists.getList and list mutations.
type wireList struct {
	ID       int64  `json:"id,string"`
	Name     string `json:"name"`
	Deleted  flag   `json:"deleted"`
	Locked   flag   `json:"locked"`
	Archived flag   `json:"archived"`
	Smart    flag   `json:"smart"`
	Position int    `json:"position,string"`
}

// wireTaskList is one list's worth of task series inside tasks.getList.
type wireTaskList struct {
	ID     int64            `json:"id,string"`
	Series many[wireSeries] `json:"taskseries"`
}

type wireSeries struct {
	ID       int64          `json:"id,string"`
	Name     string         `json:"name"`
	Source   string         `json:"source"`
	URL      string         `json:"url"`
	Created  string         `json:"created"`
	Modified string         `json:"modified"`
	Tags     tagList        `json:"tags"`
	Task     many[wireTask] `json:"task"`
}

type wireTask struct {
	ID         int64  `json:"id,string"`
	Due        string `json:"due"`
	HasDueTime flag   `json:"has_due_time"`
	Added      string `json:"added"`
	Completed  string `json:"completed"`
	Deleted    string `json:"deleted"`
	Priority   string `json:"priority"`
	Postponed  string `json:"postponed"`
	Estimate   string `json:"estimate"`
}

type wireUser struct {
	ID       int64  `json:"id,string"`
	Username string `json:"username"`
	FullName string `json:"fullname"`
}
