package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/dwaring87/rtm-api/internal/domain"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := Open(filepath.Join(t.TempDir(), "tasks.db"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestReplaceAndTasks_RoundTrip(t *testing.T) {
	cache := newTestCache(t)
	added := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)

	want := []domain.Task{
		{
			ListID: 1, SeriesID: 10, TaskID: 100,
			Name: "Buy milk", Source: "api",
			Tags: []string{"errand", "grocery"}, Priority: domain.PriorityHigh,
			Due: added.Add(48 * time.Hour), HasDueTime: true, Added: added,
		},
		{
			ListID: 1, SeriesID: 11, TaskID: 101,
			Name: "Call mom", Source: "js",
			Added: added.Add(time.Hour), Completed: added.Add(2 * time.Hour),
		},
	}

	if err := cache.Replace(42, want); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := cache.Tasks(42)
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d tasks, got %d", len(want), len(got))
	}

	first := got[0]
	if first.Name != "Buy milk" || first.Priority != domain.PriorityHigh {
		t.Errorf("first task mangled: %+v", first)
	}
	if len(first.Tags) != 2 || first.Tags[0] != "errand" {
		t.Errorf("tags mangled: %v", first.Tags)
	}
	if !first.HasDueTime || !first.Due.Equal(added.Add(48*time.Hour)) {
		t.Errorf("due mangled: %v (has time %v)", first.Due, first.HasDueTime)
	}

	second := got[1]
	if !second.IsCompleted() {
		t.Error("completed timestamp lost")
	}
	if second.Tags != nil {
		t.Errorf("empty tags must stay empty, got %v", second.Tags)
	}
	if !second.Due.IsZero() {
		t.Errorf("zero due must stay zero, got %v", second.Due)
	}
}

func TestReplace_SwapsWholesale(t *testing.T) {
	cache := newTestCache(t)

	old := []domain.Task{{ListID: 1, SeriesID: 10, TaskID: 100, Name: "old"}}
	if err := cache.Replace(42, old); err != nil {
		t.Fatalf("replace: %v", err)
	}

	fresh := []domain.Task{{ListID: 2, SeriesID: 20, TaskID: 200, Name: "new"}}
	if err := cache.Replace(42, fresh); err != nil {
		t.Fatalf("replace: %v", err)
	}

	got, err := cache.Tasks(42)
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(got) != 1 || got[0].Name != "new" {
		t.Errorf("old snapshot leaked through: %+v", got)
	}
}

func TestReplace_UsersIsolated(t *testing.T) {
	cache := newTestCache(t)

	if err := cache.Replace(42, []domain.Task{{ListID: 1, SeriesID: 10, TaskID: 100, Name: "mine"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := cache.Replace(7, []domain.Task{{ListID: 2, SeriesID: 20, TaskID: 200, Name: "theirs"}}); err != nil {
		t.Fatalf("replace: %v", err)
	}
	if err := cache.Replace(42, nil); err != nil {
		t.Fatalf("replace: %v", err)
	}

	mine, err := cache.Tasks(42)
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(mine) != 0 {
		t.Errorf("user 42 should be empty, got %d", len(mine))
	}

	theirs, err := cache.Tasks(7)
	if err != nil {
		t.Fatalf("tasks: %v", err)
	}
	if len(theirs) != 1 {
		t.Errorf("user 7's snapshot lost, got %d tasks", len(theirs))
	}
}

func TestLastSync(t *testing.T) {
	cache := newTestCache(t)

	never, err := cache.LastSync(42)
	if err != nil {
		t.Fatalf("last sync: %v", err)
	}
	if !never.IsZero() {
		t.Errorf("expected zero time before first sync, got %v", never)
	}

	before := time.Now().Add(-time.Second)
	if err := cache.Replace(42, nil); err != nil {
		t.Fatalf("replace: %v", err)
	}

	at, err := cache.LastSync(42)
	if err != nil {
		t.Fatalf("last sync: %v", err)
	}
	if at.Before(before) {
		t.Errorf("sync time %v not updated", at)
	}
}
