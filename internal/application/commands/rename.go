package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dwaring87/rtm-api/internal/application"
)

// RenameTaskCommand renames the task behind a local index
type RenameTaskCommand struct {
	deps    Deps
	Index   int
	NewName string
}

// NewRenameTaskCommand creates a new RenameTaskCommand
func NewRenameTaskCommand(deps Deps, index int, newName string) *RenameTaskCommand {
	return &RenameTaskCommand{deps: deps, Index: index, NewName: newName}
}

// Validate checks if the rename operation is valid
func (c *RenameTaskCommand) Validate() error {
	if err := validateIndex(c.Index); err != nil {
		return err
	}
	if strings.TrimSpace(c.NewName) == "" {
		return &application.ValidationError{
			Field:   "name",
			Message: "new name is required",
		}
	}
	return nil
}

// Execute runs the rename command
func (c *RenameTaskCommand) Execute(ctx context.Context) (*TaskActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.deps.ResolveTaskRef(ctx, c.Index)
	if err != nil {
		return nil, err
	}

	newName := strings.TrimSpace(c.NewName)
	if err := c.deps.Tasks.SetTaskName(ctx, ref, newName); err != nil {
		return nil, fmt.Errorf("failed to rename task: %w", err)
	}

	return &TaskActionResult{
		Index:   c.Index,
		Message: fmt.Sprintf("Renamed #%d to %s", c.Index, newName),
	}, nil
}
