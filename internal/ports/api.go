package ports

import (
	"context"

	"github.com/dwaring87/rtm-api/internal/domain"
)

// TaskService is the remote task API surface the command layer talks to.
// All mutating calls address a task by its full identifier triple; resolving
// local indices to refs happens above this interface.
type TaskService interface {
	// GetTasks fetches the user's current tasks, optionally narrowed by a
	// service-side filter expression. An empty filter returns everything.
	GetTasks(ctx context.Context, filter string) ([]domain.Task, error)

	// AddTask creates a task. With parse set, the service interprets smart
	// syntax in name (due dates, priorities, list targeting).
	AddTask(ctx context.Context, name string, parse bool) (domain.Task, error)

	CompleteTask(ctx context.Context, ref domain.Ref) error
	UncompleteTask(ctx context.Context, ref domain.Ref) error
	DeleteTask(ctx context.Context, ref domain.Ref) error
	SetTaskName(ctx context.Context, ref domain.Ref, name string) error
	SetPriority(ctx context.Context, ref domain.Ref, p domain.Priority) error

	// SetDueDate sets or clears (empty string) the due date. With parse set,
	// the service accepts fuzzy strings like "next friday".
	SetDueDate(ctx context.Context, ref domain.Ref, due string, parse bool) error

	PostponeTask(ctx context.Context, ref domain.Ref) error
	MoveTask(ctx context.Context, ref domain.Ref, toListID int64) error
	AddTags(ctx context.Context, ref domain.Ref, tags []string) error
	RemoveTags(ctx context.Context, ref domain.Ref, tags []string) error
}

// ListService is the remote list API surface.
type ListService interface {
	GetLists(ctx context.Context) ([]domain.List, error)
	AddList(ctx context.Context, name string) (domain.List, error)
	RenameList(ctx context.Context, listID int64, name string) error
	ArchiveList(ctx context.Context, listID int64) error
	UnarchiveList(ctx context.Context, listID int64) error
	DeleteList(ctx context.Context, listID int64) error
}
