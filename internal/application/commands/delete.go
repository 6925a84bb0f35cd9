package commands

import (
	"context"
	"fmt"
)

// DeleteTaskCommand deletes the task behind a local index
type DeleteTaskCommand struct {
	deps  Deps
	Index int
}

// NewDeleteTaskCommand creates a new DeleteTaskCommand
func NewDeleteTaskCommand(deps Deps, index int) *DeleteTaskCommand {
	return &DeleteTaskCommand{deps: deps, Index: index}
}

// Validate checks if the delete operation is valid
func (c *DeleteTaskCommand) Validate() error {
	return validateIndex(c.Index)
}

// Execute runs the delete command
func (c *DeleteTaskCommand) Execute(ctx context.Context) (*TaskActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.deps.ResolveTaskRef(ctx, c.Index)
	if err != nil {
		return nil, err
	}

	if err := c.deps.Tasks.DeleteTask(ctx, ref); err != nil {
		return nil, fmt.Errorf("failed to delete task: %w", err)
	}

	return &TaskActionResult{
		Index:   c.Index,
		Message: fmt.Sprintf("Deleted #%d", c.Index),
	}, nil
}
