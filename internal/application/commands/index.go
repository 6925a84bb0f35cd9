package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/dwaring87/rtm-api/internal/domain"
)

// RefRow pairs a local index with the raw identifier triple it stands for.
type RefRow struct {
	Index int
	Ref   domain.Ref
}

// ShowIndexCommand dumps the user's local index table
type ShowIndexCommand struct {
	deps Deps
}

// NewShowIndexCommand creates a new ShowIndexCommand
func NewShowIndexCommand(deps Deps) *ShowIndexCommand {
	return &ShowIndexCommand{deps: deps}
}

// Execute runs the show command
func (c *ShowIndexCommand) Execute(_ context.Context) ([]RefRow, error) {
	refs := c.deps.Store.Refs(c.deps.UserID)

	rows := make([]RefRow, 0, len(refs))
	for index, ref := range refs {
		rows = append(rows, RefRow{Index: index, Ref: ref})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })
	return rows, nil
}

// ClearIndexCommand drops the user's index table so the next fetch numbers
// everything from scratch. Used when the numbers are suspected stale, e.g.
// after edits through another client.
type ClearIndexCommand struct {
	deps Deps
}

// NewClearIndexCommand creates a new ClearIndexCommand
func NewClearIndexCommand(deps Deps) *ClearIndexCommand {
	return &ClearIndexCommand{deps: deps}
}

// Execute runs the clear command
func (c *ClearIndexCommand) Execute(_ context.Context) (string, error) {
	if err := c.deps.Store.Clear(c.deps.UserID); err != nil {
		return "", fmt.Errorf("failed to clear index: %w", err)
	}
	return "Cleared local task numbers; the next fetch renumbers from #1", nil
}
