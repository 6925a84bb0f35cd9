package commands

import (
	"context"
	"testing"
	"time"

	"github.com/dwaring87/rtm-api/internal/domain"
)

func TestAddTaskCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid name", input: "Buy milk tomorrow", wantErr: false},
		{name: "empty name", input: "", wantErr: true},
		{name: "whitespace name", input: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &AddTaskCommand{Name: tt.input}
			err := cmd.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAddTaskCommand_Execute(t *testing.T) {
	svc := newFakeTaskService()
	deps := newTestDeps(t, svc, newFakeListService())

	result, err := NewAddTaskCommand(deps, "Buy milk", true).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Index != 1 {
		t.Errorf("first task should get index 1, got %d", result.Index)
	}
	if result.Task.Name != "Buy milk" {
		t.Errorf("unexpected task name %q", result.Task.Name)
	}

	// The minted index resolves without another fetch.
	ref, err := deps.ResolveTaskRef(context.Background(), result.Index)
	if err != nil {
		t.Fatalf("new task's index does not resolve: %v", err)
	}
	if ref != result.Task.Ref() {
		t.Errorf("index resolves to %+v, want %+v", ref, result.Task.Ref())
	}
	if svc.getCalls != 0 {
		t.Errorf("resolving a freshly added task must not fetch, got %d calls", svc.getCalls)
	}
}

func TestCompleteTaskCommand_Execute(t *testing.T) {
	task := domain.Task{ListID: 1, SeriesID: 10, TaskID: 100, Name: "Buy milk"}
	svc := newFakeTaskService(task)
	deps := newTestDeps(t, svc, newFakeListService())
	index := deps.Store.Resolve(testUserID, task.Ref())

	result, err := NewCompleteTaskCommand(deps, index).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Index != index {
		t.Errorf("expected index %d in result, got %d", index, result.Index)
	}
	if len(svc.completed) != 1 || svc.completed[0] != task.Ref() {
		t.Errorf("expected complete call for %+v, got %+v", task.Ref(), svc.completed)
	}
}

func TestCompleteTaskCommand_InvalidIndex(t *testing.T) {
	deps := newTestDeps(t, newFakeTaskService(), newFakeListService())

	for _, index := range []int{0, -1} {
		if _, err := NewCompleteTaskCommand(deps, index).Execute(context.Background()); err == nil {
			t.Errorf("index %d should fail validation", index)
		}
	}
}

func TestSetPriorityCommand_Validate(t *testing.T) {
	tests := []struct {
		priority string
		wantErr  bool
	}{
		{"1", false},
		{"2", false},
		{"3", false},
		{"N", false},
		{"none", false},
		{"4", true},
		{"high", true},
	}

	for _, tt := range tests {
		t.Run(tt.priority, func(t *testing.T) {
			cmd := &SetPriorityCommand{Index: 1, Priority: tt.priority}
			err := cmd.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("priority %q should fail validation", tt.priority)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("priority %q: unexpected error: %v", tt.priority, err)
			}
		})
	}
}

func TestMoveTaskCommand_Execute(t *testing.T) {
	task := domain.Task{ListID: 1, SeriesID: 10, TaskID: 100, Name: "Buy milk"}
	svc := newFakeTaskService(task)
	lists := newFakeListService(domain.List{ID: 7, Name: "Errands"})
	deps := newTestDeps(t, svc, lists)

	taskIndex := deps.Store.Resolve(testUserID, task.Ref())
	listIndex := deps.Store.Resolve(testUserID, domain.ListRef(7))

	_, err := NewMoveTaskCommand(deps, taskIndex, listIndex).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.moved[task.Ref()]; got != 7 {
		t.Errorf("expected move to list 7, got %d", got)
	}
}

func TestTagTaskCommand_Execute(t *testing.T) {
	task := domain.Task{ListID: 1, SeriesID: 10, TaskID: 100}
	svc := newFakeTaskService(task)
	deps := newTestDeps(t, svc, newFakeListService())
	index := deps.Store.Resolve(testUserID, task.Ref())

	_, err := NewTagTaskCommand(deps, index, []string{"work", "urgent"}, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.tagged[task.Ref()]; len(got) != 2 {
		t.Errorf("expected 2 tags recorded, got %v", got)
	}

	_, err = NewTagTaskCommand(deps, index, []string{"urgent"}, true).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := svc.untagged[task.Ref()]; len(got) != 1 {
		t.Errorf("expected 1 tag removal recorded, got %v", got)
	}
}

func TestListTasksCommand_Execute(t *testing.T) {
	now := time.Now()
	svc := newFakeTaskService(
		domain.Task{ListID: 1, SeriesID: 10, TaskID: 100, Name: "open"},
		domain.Task{ListID: 1, SeriesID: 11, TaskID: 101, Name: "done", Completed: now},
		domain.Task{ListID: 1, SeriesID: 12, TaskID: 102, Name: "gone", Deleted: now},
	)
	deps := newTestDeps(t, svc, newFakeListService())

	result, err := NewListTasksCommand(deps, "", false, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected only the open task, got %d rows", len(result.Rows))
	}
	if result.Rows[0].Task.Name != "open" {
		t.Errorf("unexpected task %q", result.Rows[0].Task.Name)
	}

	withDone, err := NewListTasksCommand(deps, "", false, true).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(withDone.Rows) != 2 {
		t.Errorf("expected open and completed tasks, got %d rows", len(withDone.Rows))
	}
}

func TestListTasksCommand_StableIndicesAcrossRuns(t *testing.T) {
	tasks := []domain.Task{
		{ListID: 1, SeriesID: 10, TaskID: 100, Name: "a"},
		{ListID: 1, SeriesID: 11, TaskID: 101, Name: "b"},
	}
	svc := newFakeTaskService(tasks...)
	deps := newTestDeps(t, svc, newFakeListService())

	first, err := NewListTasksCommand(deps, "", false, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := NewListTasksCommand(deps, "", false, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first.Rows {
		if first.Rows[i].Index != second.Rows[i].Index {
			t.Errorf("row %d index changed between runs: %d then %d",
				i, first.Rows[i].Index, second.Rows[i].Index)
		}
	}
}

func TestListTasksCommand_Cached(t *testing.T) {
	svc := newFakeTaskService(domain.Task{ListID: 1, SeriesID: 10, TaskID: 100, Name: "a"})
	deps := newTestDeps(t, svc, newFakeListService())
	deps.Cache = newFakeCache()

	// Prime the cache via one live fetch.
	if _, err := NewListTasksCommand(deps, "", false, false).Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	calls := svc.getCalls

	result, err := NewListTasksCommand(deps, "", true, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.FromCache {
		t.Error("expected cached result")
	}
	if len(result.Rows) != 1 {
		t.Errorf("expected 1 cached row, got %d", len(result.Rows))
	}
	if svc.getCalls != calls {
		t.Error("cached listing must not hit the service")
	}
}

func TestListListsCommand_Execute(t *testing.T) {
	lists := newFakeListService(
		domain.List{ID: 7, Name: "Work"},
		domain.List{ID: 8, Name: "Old", Archived: true},
	)
	deps := newTestDeps(t, newFakeTaskService(), lists)

	rows, err := NewListListsCommand(deps, false).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected archived list hidden, got %d rows", len(rows))
	}

	all, err := NewListListsCommand(deps, true).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("expected 2 rows with archived included, got %d", len(all))
	}
}

func TestClearIndexCommand_Execute(t *testing.T) {
	deps := newTestDeps(t, newFakeTaskService(), newFakeListService())
	deps.Store.Resolve(testUserID, domain.TaskRef(1, 10, 100))

	if _, err := NewClearIndexCommand(deps).Execute(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if refs := deps.Store.Refs(testUserID); len(refs) != 0 {
		t.Errorf("expected empty table after clear, got %d entries", len(refs))
	}
}

func TestShowIndexCommand_SortedByIndex(t *testing.T) {
	deps := newTestDeps(t, newFakeTaskService(), newFakeListService())
	deps.Store.Resolve(testUserID, domain.TaskRef(1, 10, 100))
	deps.Store.Resolve(testUserID, domain.TaskRef(1, 11, 101))
	deps.Store.Resolve(testUserID, domain.ListRef(7))

	rows, err := NewShowIndexCommand(deps).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i := 1; i < len(rows); i++ {
		if rows[i-1].Index >= rows[i].Index {
			t.Errorf("rows not sorted: %d before %d", rows[i-1].Index, rows[i].Index)
		}
	}
}
