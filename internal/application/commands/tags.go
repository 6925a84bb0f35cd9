package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/dwaring87/rtm-api/internal/application"
)

// TagTaskCommand adds or removes tags on the task behind a local index
type TagTaskCommand struct {
	deps   Deps
	Index  int
	Tags   []string
	Remove bool
}

// NewTagTaskCommand creates a new TagTaskCommand
func NewTagTaskCommand(deps Deps, index int, tags []string, remove bool) *TagTaskCommand {
	return &TagTaskCommand{deps: deps, Index: index, Tags: tags, Remove: remove}
}

// Validate checks if the tag operation is valid
func (c *TagTaskCommand) Validate() error {
	if err := validateIndex(c.Index); err != nil {
		return err
	}
	if len(c.Tags) == 0 {
		return &application.ValidationError{
			Field:   "tags",
			Message: "at least one tag is required",
		}
	}
	for _, tag := range c.Tags {
		if strings.TrimSpace(tag) == "" {
			return &application.ValidationError{
				Field:   "tags",
				Message: "tags must not be empty",
			}
		}
	}
	return nil
}

// Execute runs the tag command
func (c *TagTaskCommand) Execute(ctx context.Context) (*TaskActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.deps.ResolveTaskRef(ctx, c.Index)
	if err != nil {
		return nil, err
	}

	verb := "Tagged"
	if c.Remove {
		err = c.deps.Tasks.RemoveTags(ctx, ref, c.Tags)
		verb = "Untagged"
	} else {
		err = c.deps.Tasks.AddTags(ctx, ref, c.Tags)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update tags: %w", err)
	}

	return &TaskActionResult{
		Index:   c.Index,
		Message: fmt.Sprintf("%s #%d with %s", verb, c.Index, strings.Join(c.Tags, ", ")),
	}, nil
}
