package commands

import (
	"context"
	"fmt"

	"github.com/dwaring87/rtm-api/internal/application"
	"github.com/dwaring87/rtm-api/internal/domain"
)

// SetPriorityCommand changes the priority of the task behind a local index
type SetPriorityCommand struct {
	deps     Deps
	Index    int
	Priority string
}

// NewSetPriorityCommand creates a new SetPriorityCommand
func NewSetPriorityCommand(deps Deps, index int, priority string) *SetPriorityCommand {
	return &SetPriorityCommand{deps: deps, Index: index, Priority: priority}
}

// Validate checks if the priority operation is valid
func (c *SetPriorityCommand) Validate() error {
	if err := validateIndex(c.Index); err != nil {
		return err
	}
	switch c.Priority {
	case "1", "2", "3", "N", "n", "none", "":
		return nil
	default:
		return &application.ValidationError{
			Field:   "priority",
			Message: "must be 1, 2, 3, or N",
		}
	}
}

// Execute runs the priority command
func (c *SetPriorityCommand) Execute(ctx context.Context) (*TaskActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.deps.ResolveTaskRef(ctx, c.Index)
	if err != nil {
		return nil, err
	}

	p := domain.ParsePriority(c.Priority)
	if err := c.deps.Tasks.SetPriority(ctx, ref, p); err != nil {
		return nil, fmt.Errorf("failed to set priority: %w", err)
	}

	return &TaskActionResult{
		Index:   c.Index,
		Message: fmt.Sprintf("Set priority of #%d to %s", c.Index, p),
	}, nil
}
