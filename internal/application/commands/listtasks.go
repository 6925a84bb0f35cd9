package commands

import (
	"context"
	"sort"
	"time"

	"github.com/dwaring87/rtm-api/internal/domain"
)

// TaskRow pairs a task with its local index for display.
type TaskRow struct {
	Index int
	Task  domain.Task
}

// ListTasksResult contains the result of listing tasks
type ListTasksResult struct {
	Rows      []TaskRow
	FromCache bool
	SyncedAt  time.Time
}

// ListTasksCommand fetches and indexes the user's tasks. With Cached set it
// serves the last snapshot instead of hitting the service.
type ListTasksCommand struct {
	deps             Deps
	Filter           string
	Cached           bool
	IncludeCompleted bool
}

// NewListTasksCommand creates a new ListTasksCommand
func NewListTasksCommand(deps Deps, filter string, cached, includeCompleted bool) *ListTasksCommand {
	return &ListTasksCommand{
		deps:             deps,
		Filter:           filter,
		Cached:           cached,
		IncludeCompleted: includeCompleted,
	}
}

// Execute runs the list command
func (c *ListTasksCommand) Execute(ctx context.Context) (*ListTasksResult, error) {
	if c.Cached && c.deps.Cache != nil {
		return c.fromCache()
	}

	var tasks []domain.Task
	var err error
	if c.Filter == "" {
		tasks, err = c.deps.RefreshTasks(ctx)
	} else {
		// Filtered fetches do not re-index: a partial view must not mint
		// indices the full table would assign differently later, so indices
		// come from whatever the table already holds.
		tasks, err = c.deps.Tasks.GetTasks(ctx, c.Filter)
	}
	if err != nil {
		return nil, err
	}

	return &ListTasksResult{Rows: c.rows(tasks)}, nil
}

func (c *ListTasksCommand) fromCache() (*ListTasksResult, error) {
	tasks, err := c.deps.Cache.Tasks(c.deps.UserID)
	if err != nil {
		return nil, err
	}
	syncedAt, err := c.deps.Cache.LastSync(c.deps.UserID)
	if err != nil {
		return nil, err
	}
	return &ListTasksResult{
		Rows:      c.rows(tasks),
		FromCache: true,
		SyncedAt:  syncedAt,
	}, nil
}

func (c *ListTasksCommand) rows(tasks []domain.Task) []TaskRow {
	rows := make([]TaskRow, 0, len(tasks))
	for _, t := range tasks {
		if t.IsDeleted() {
			continue
		}
		if t.IsCompleted() && !c.IncludeCompleted {
			continue
		}
		rows = append(rows, TaskRow{
			Index: c.deps.Store.Resolve(c.deps.UserID, t.Ref()),
			Task:  t,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })
	return rows
}
