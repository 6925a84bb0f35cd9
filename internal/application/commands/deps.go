// Package commands holds one command object per user-facing operation. Each
// command validates its inputs, resolves local indices to remote identifier
// triples, and drives the API through the ports interfaces.
package commands

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/dwaring87/rtm-api/internal/application"
	"github.com/dwaring87/rtm-api/internal/domain"
	"github.com/dwaring87/rtm-api/internal/ports"
)

// Deps bundles the collaborators every command needs. Cache may be nil when
// no snapshot store is configured.
type Deps struct {
	Tasks  ports.TaskService
	Lists  ports.ListService
	Store  ports.ReferenceStore
	Cache  ports.TaskCache
	Logger *slog.Logger
	UserID int64
}

func (d Deps) logger() *slog.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// RefreshTasks fetches the full task set, re-indexes every live task, and
// persists the index table. Persistence and cache failures are logged, not
// returned: the in-memory table stays authoritative and the fetch itself
// succeeded.
func (d Deps) RefreshTasks(ctx context.Context) ([]domain.Task, error) {
	tasks, err := d.Tasks.GetTasks(ctx, "")
	if err != nil {
		return nil, err
	}

	for _, t := range tasks {
		if t.IsDeleted() {
			continue
		}
		d.Store.Resolve(d.UserID, t.Ref())
	}
	if err := d.Store.Save(); err != nil {
		d.logger().Warn("persist index failed", "error", err)
	}

	if d.Cache != nil {
		if err := d.Cache.Replace(d.UserID, tasks); err != nil {
			d.logger().Warn("update task cache failed", "error", err)
		}
	}
	return tasks, nil
}

// RefreshLists fetches the current lists and re-indexes them.
func (d Deps) RefreshLists(ctx context.Context) ([]domain.List, error) {
	lists, err := d.Lists.GetLists(ctx)
	if err != nil {
		return nil, err
	}

	for _, l := range lists {
		if l.Deleted {
			continue
		}
		d.Store.Resolve(d.UserID, l.Ref())
	}
	if err := d.Store.Save(); err != nil {
		d.logger().Warn("persist index failed", "error", err)
	}
	return lists, nil
}

// ResolveTaskRef turns a local index into a task's identifier triple. On a
// miss it refreshes from the service exactly once and retries; a second miss
// is a user error, surfaced as *application.ReferenceError.
func (d Deps) ResolveTaskRef(ctx context.Context, index int) (domain.Ref, error) {
	ref, err := d.Store.Lookup(d.UserID, index)
	if err == nil {
		return checkTaskRef(ref)
	}
	if !errors.Is(err, ports.ErrRefNotFound) {
		return domain.Ref{}, err
	}

	if _, err := d.RefreshTasks(ctx); err != nil {
		return domain.Ref{}, err
	}

	ref, err = d.Store.Lookup(d.UserID, index)
	if err != nil {
		return domain.Ref{}, &application.ReferenceError{Index: index}
	}
	return checkTaskRef(ref)
}

func checkTaskRef(ref domain.Ref) (domain.Ref, error) {
	if ref.IsList() {
		return domain.Ref{}, &application.ValidationError{
			Field:   "index",
			Message: "refers to a list, not a task",
		}
	}
	return ref, nil
}

// ResolveListRef turns a local index into a list id, refreshing lists once
// on a miss, mirroring ResolveTaskRef.
func (d Deps) ResolveListRef(ctx context.Context, index int) (domain.Ref, error) {
	ref, err := d.Store.Lookup(d.UserID, index)
	if err == nil {
		return checkListRef(ref)
	}
	if !errors.Is(err, ports.ErrRefNotFound) {
		return domain.Ref{}, err
	}

	if _, err := d.RefreshLists(ctx); err != nil {
		return domain.Ref{}, err
	}

	ref, err = d.Store.Lookup(d.UserID, index)
	if err != nil {
		return domain.Ref{}, &application.ReferenceError{Index: index}
	}
	return checkListRef(ref)
}

func checkListRef(ref domain.Ref) (domain.Ref, error) {
	if !ref.IsList() {
		return domain.Ref{}, &application.ValidationError{
			Field:   "index",
			Message: "refers to a task, not a list",
		}
	}
	return ref, nil
}
