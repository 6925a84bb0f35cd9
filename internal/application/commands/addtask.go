package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dwaring87/rtm-api/internal/application"
	"github.com/dwaring87/rtm-api/internal/domain"
)

// AddTaskResult contains the result of adding a task
type AddTaskResult struct {
	Index   int
	Task    domain.Task
	Message string
}

// AddTaskCommand creates a task. Parse enables the service's smart-add
// syntax in the name (due dates, !priority, ^list, #tags).
type AddTaskCommand struct {
	deps  Deps
	Name  string
	Parse bool
}

// NewAddTaskCommand creates a new AddTaskCommand
func NewAddTaskCommand(deps Deps, name string, parse bool) *AddTaskCommand {
	return &AddTaskCommand{deps: deps, Name: name, Parse: parse}
}

// Validate checks if the add operation is valid
func (c *AddTaskCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &application.ValidationError{
			Field:   "name",
			Message: "task name is required",
		}
	}
	return nil
}

// Execute runs the add command
func (c *AddTaskCommand) Execute(ctx context.Context) (*AddTaskResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	task, err := c.deps.Tasks.AddTask(ctx, strings.TrimSpace(c.Name), c.Parse)
	if err != nil {
		return nil, fmt.Errorf("failed to add task: %w", err)
	}

	index := c.deps.Store.Resolve(c.deps.UserID, task.Ref())
	if err := c.deps.Store.Save(); err != nil {
		c.deps.logger().Warn("persist index failed", "error", err)
	}

	return &AddTaskResult{
		Index:   index,
		Task:    task,
		Message: fmt.Sprintf("Added #%d %s", index, task.Name),
	}, nil
}
