package commands

import (
	"context"
	"fmt"
)

// SetDueCommand sets or clears the due date of the task behind a local
// index. Due is passed to the service verbatim with fuzzy parsing enabled,
// so "tomorrow" and "2026-09-01" both work; empty clears the date.
type SetDueCommand struct {
	deps  Deps
	Index int
	Due   string
}

// NewSetDueCommand creates a new SetDueCommand
func NewSetDueCommand(deps Deps, index int, due string) *SetDueCommand {
	return &SetDueCommand{deps: deps, Index: index, Due: due}
}

// Validate checks if the due operation is valid
func (c *SetDueCommand) Validate() error {
	return validateIndex(c.Index)
}

// Execute runs the due command
func (c *SetDueCommand) Execute(ctx context.Context) (*TaskActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.deps.ResolveTaskRef(ctx, c.Index)
	if err != nil {
		return nil, err
	}

	if err := c.deps.Tasks.SetDueDate(ctx, ref, c.Due, true); err != nil {
		return nil, fmt.Errorf("failed to set due date: %w", err)
	}

	msg := fmt.Sprintf("Set due date of #%d to %s", c.Index, c.Due)
	if c.Due == "" {
		msg = fmt.Sprintf("Cleared due date of #%d", c.Index)
	}
	return &TaskActionResult{Index: c.Index, Message: msg}, nil
}

// PostponeTaskCommand pushes the due date of the task behind a local index
// forward by one day
type PostponeTaskCommand struct {
	deps  Deps
	Index int
}

// NewPostponeTaskCommand creates a new PostponeTaskCommand
func NewPostponeTaskCommand(deps Deps, index int) *PostponeTaskCommand {
	return &PostponeTaskCommand{deps: deps, Index: index}
}

// Validate checks if the postpone operation is valid
func (c *PostponeTaskCommand) Validate() error {
	return validateIndex(c.Index)
}

// Execute runs the postpone command
func (c *PostponeTaskCommand) Execute(ctx context.Context) (*TaskActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.deps.ResolveTaskRef(ctx, c.Index)
	if err != nil {
		return nil, err
	}

	if err := c.deps.Tasks.PostponeTask(ctx, ref); err != nil {
		return nil, fmt.Errorf("failed to postpone task: %w", err)
	}

	return &TaskActionResult{
		Index:   c.Index,
		Message: fmt.Sprintf("Postponed #%d", c.Index),
	}, nil
}
