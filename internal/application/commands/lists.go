package commands

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dwaring87/rtm-api/internal/application"
	"github.com/dwaring87/rtm-api/internal/domain"
)

// ListRow pairs a list with its local index for display.
type ListRow struct {
	Index int
	List  domain.List
}

// ListListsCommand fetches and indexes the user's lists
type ListListsCommand struct {
	deps            Deps
	IncludeArchived bool
}

// NewListListsCommand creates a new ListListsCommand
func NewListListsCommand(deps Deps, includeArchived bool) *ListListsCommand {
	return &ListListsCommand{deps: deps, IncludeArchived: includeArchived}
}

// Execute runs the lists command
func (c *ListListsCommand) Execute(ctx context.Context) ([]ListRow, error) {
	lists, err := c.deps.RefreshLists(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ListRow, 0, len(lists))
	for _, l := range lists {
		if l.Deleted {
			continue
		}
		if l.Archived && !c.IncludeArchived {
			continue
		}
		rows = append(rows, ListRow{
			Index: c.deps.Store.Resolve(c.deps.UserID, l.Ref()),
			List:  l,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Index < rows[j].Index })
	return rows, nil
}

// ListActionResult is the result of a single-list mutation.
type ListActionResult struct {
	Index   int
	Message string
}

// AddListCommand creates a new remote list
type AddListCommand struct {
	deps Deps
	Name string
}

// NewAddListCommand creates a new AddListCommand
func NewAddListCommand(deps Deps, name string) *AddListCommand {
	return &AddListCommand{deps: deps, Name: name}
}

// Validate checks if the add operation is valid
func (c *AddListCommand) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return &application.ValidationError{
			Field:   "name",
			Message: "list name is required",
		}
	}
	return nil
}

// Execute runs the add command
func (c *AddListCommand) Execute(ctx context.Context) (*ListActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	list, err := c.deps.Lists.AddList(ctx, strings.TrimSpace(c.Name))
	if err != nil {
		return nil, fmt.Errorf("failed to add list: %w", err)
	}

	index := c.deps.Store.Resolve(c.deps.UserID, list.Ref())
	if err := c.deps.Store.Save(); err != nil {
		c.deps.logger().Warn("persist index failed", "error", err)
	}

	return &ListActionResult{
		Index:   index,
		Message: fmt.Sprintf("Added list #%d %s", index, list.Name),
	}, nil
}

// RenameListCommand renames the list behind a local index
type RenameListCommand struct {
	deps    Deps
	Index   int
	NewName string
}

// NewRenameListCommand creates a new RenameListCommand
func NewRenameListCommand(deps Deps, index int, newName string) *RenameListCommand {
	return &RenameListCommand{deps: deps, Index: index, NewName: newName}
}

// Validate checks if the rename operation is valid
func (c *RenameListCommand) Validate() error {
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
func (c *RenameListCommand) Execute(ctx context.Context) (*ListActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.deps.ResolveListRef(ctx, c.Index)
	if err != nil {
		return nil, err
	}

	newName := strings.TrimSpace(c.NewName)
	if err := c.deps.Lists.RenameList(ctx, ref.ListID, newName); err != nil {
		return nil, fmt.Errorf("failed to rename list: %w", err)
	}

	return &ListActionResult{
		Index:   c.Index,
		Message: fmt.Sprintf("Renamed list #%d to %s", c.Index, newName),
	}, nil
}

// ArchiveListCommand archives or unarchives the list behind a local index
type ArchiveListCommand struct {
	deps      Deps
	Index     int
	Unarchive bool
}

// NewArchiveListCommand creates a new ArchiveListCommand
func NewArchiveListCommand(deps Deps, index int, unarchive bool) *ArchiveListCommand {
	return &ArchiveListCommand{deps: deps, Index: index, Unarchive: unarchive}
}

// Validate checks if the archive operation is valid
func (c *ArchiveListCommand) Validate() error {
	return validateIndex(c.Index)
}

// Execute runs the archive command
func (c *ArchiveListCommand) Execute(ctx context.Context) (*ListActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.deps.ResolveListRef(ctx, c.Index)
	if err != nil {
		return nil, err
	}

	verb := "Archived"
	if c.Unarchive {
		err = c.deps.Lists.UnarchiveList(ctx, ref.ListID)
		verb = "Unarchived"
	} else {
		err = c.deps.Lists.ArchiveList(ctx, ref.ListID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to archive list: %w", err)
	}

	return &ListActionResult{
		Index:   c.Index,
		Message: fmt.Sprintf("%s list #%d", verb, c.Index),
	}, nil
}

// DeleteListCommand deletes the list behind a local index
type DeleteListCommand struct {
	deps  Deps
	Index int
}

// NewDeleteListCommand creates a new DeleteListCommand
func NewDeleteListCommand(deps Deps, index int) *DeleteListCommand {
	return &DeleteListCommand{deps: deps, Index: index}
}

// Validate checks if the delete operation is valid
func (c *DeleteListCommand) Validate() error {
	return validateIndex(c.Index)
}

// Execute runs the delete command
func (c *DeleteListCommand) Execute(ctx context.Context) (*ListActionResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	ref, err := c.deps.ResolveListRef(ctx, c.Index)
	if err != nil {
		return nil, err
	}

	if err := c.deps.Lists.DeleteList(ctx, ref.ListID); err != nil {
		return nil, fmt.Errorf("failed to delete list: %w", err)
	}

	return &ListActionResult{
		Index:   c.Index,
		Message: fmt.Sprintf("Deleted list #%d", c.Index),
	}, nil
}
