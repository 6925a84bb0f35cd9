package commands

import (
	"context"
	"fmt"

	"github.com/dwaring87/rtm-api/internal/application"
)

// TaskActionResult is the result of a single-task mutation.
type TaskActionResult struct {
	Index   int
	Message string
}

func validateIndex(index int) error {
	if index < 1 {
		return &application.ValidationError{
			Field:   "index",
			Message: "must be a positive task number",
		}
	}
	return nil
}

// CompleteTaskCommand marks the task behind a local index complete
type CompleteTaskCommand struct {
	deps  Deps
	Index int
}

// NewCompleteTaskCommand creates a new CompleteTaskCommand
func NewCompleteTaskCommand(deps Deps, index int) *CompleteTaskCommand {
	return &CompleteTaskCommand{deps: deps, Index: index}
}

// Validate checks if the complete operation is valid
func (c *CompleteTaskCommand) Validate() error {
	return validateIndex(c.Index)
}

// Execute runs the complete command
func (c *CompleteTaskCommand) Execute(ctx context.Context) (*TaskActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.deps.ResolveTaskRef(ctx, c.Index)
	if err != nil {
		return nil, err
	}

	if err := c.deps.Tasks.CompleteTask(ctx, ref); err != nil {
		return nil, fmt.Errorf("failed to complete task: %w", err)
	}

	return &TaskActionResult{
		Index:   c.Index,
		Message: fmt.Sprintf("Completed #%d", c.Index),
	}, nil
}

// UncompleteTaskCommand reopens a completed task
type UncompleteTaskCommand struct {
	deps  Deps
	Index int
}

// NewUncompleteTaskCommand creates a new UncompleteTaskCommand
func NewUncompleteTaskCommand(deps Deps, index int) *UncompleteTaskCommand {
	return &UncompleteTaskCommand{deps: deps, Index: index}
}

// Validate checks if the uncomplete operation is valid
func (c *UncompleteTaskCommand) Validate() error {
	return validateIndex(c.Index)
}

// Execute runs the uncomplete command
func (c *UncompleteTaskCommand) Execute(ctx context.Context) (*TaskActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.deps.ResolveTaskRef(ctx, c.Index)
	if err != nil {
		return nil, err
	}

	if err := c.deps.Tasks.UncompleteTask(ctx, ref); err != nil {
		return nil, fmt.Errorf("failed to uncomplete task: %w", err)
	}

	return &TaskActionResult{
		Index:   c.Index,
		Message: fmt.Sprintf("Reopened #%d", c.Index),
	}, nil
}
