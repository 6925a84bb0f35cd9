package commands

import (
	"context"
	"fmt"
)

// MoveTaskCommand moves the task behind a local index to the list behind
// another local index
type MoveTaskCommand struct {
	deps      Deps
	Index     int
	ListIndex int
}

// NewMoveTaskCommand creates a new MoveTaskCommand
func NewMoveTaskCommand(deps Deps, index, listIndex int) *MoveTaskCommand {
	return &MoveTaskCommand{deps: deps, Index: index, ListIndex: listIndex}
}

// Validate checks if the move operation is valid
func (c *MoveTaskCommand) Validate() error {
	if err := validateIndex(c.Index); err != nil {
		return err
	}
	return validateIndex(c.ListIndex)
}

// Execute runs the move command
func (c *MoveTaskCommand) Execute(ctx context.Context) (*TaskActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	taskRef, err := c.deps.ResolveTaskRef(ctx, c.Index)
	if err != nil {
		return nil, err
	}
	listRef, err := c.deps.ResolveListRef(ctx, c.ListIndex)
	if err != nil {
		return nil, err
	}

	if err := c.deps.Tasks.MoveTask(ctx, taskRef, listRef.ListID); err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	// The task's list id changed remotely; refresh on the next fetch will
	// assign the moved task a fresh index. Drop nothing here.
	return &TaskActionResult{
		Index:   c.Index,
		Message: fmt.Sprintf("Moved #%d to list #%d", c.Index, c.ListIndex),
	}, nil
}
