package rtm

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dwaring87/rtm-api/internal/domain"
)

// GetLists fetches all of the user's lists, including archived and smart
// lists; filtering is the caller's business.
func (c *Client) GetLists(ctx context.Context) ([]domain.List, error) {
	rsp, err := c.call(ctx, "rtm.lists.getList", nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Lists struct {
			List many[wireList] `json:"list"`
		} `json:"lists"`
	}
	if err := json.Unmarshal(rsp, &out); err != nil {
		return nil, fmt.Errorf("decode lists: %w", err)
	}

	lists := make([]domain.List, 0, len(out.Lists.List))
	for _, w := range out.Lists.List {
		lists = append(lists, convertList(w))
	}
	return lists, nil
}

// AddList creates a new list and returns it as the service recorded it.
func (c *Client) AddList(ctx context.Context, name string) (domain.List, error) {
	timeline, err := c.timelineID(ctx)
	if err != nil {
		return domain.List{}, err
	}

	rsp, err := c.call(ctx, "rtm.lists.add", map[string]string{
		"timeline": timeline,
		"name":     name,
	})
	if err != nil {
		return domain.List{}, err
	}

	var out struct {
		List wireList `json:"list"`
	}
	if err := json.Unmarshal(rsp, &out); err != nil {
		return domain.List{}, fmt.Errorf("decode list: %w", err)
	}
	return convertList(out.List), nil
}

// RenameList changes a list's name.
func (c *Client) RenameList(ctx context.Context, listID int64, name string) error {
	return c.mutateList(ctx, "rtm.lists.setName", listID, map[string]string{"name": name})
}

// ArchiveList archives a list.
func (c *Client) ArchiveList(ctx context.Context, listID int64) error {
	return c.mutateList(ctx, "rtm.lists.archive", listID, nil)
}

// UnarchiveList restores an archived list.
func (c *Client) UnarchiveList(ctx context.Context, listID int64) error {
	return c.mutateList(ctx, "rtm.lists.unarchive", listID, nil)
}

// DeleteList deletes a list. The service moves its tasks to the inbox.
func (c *Client) DeleteList(ctx context.Context, listID int64) error {
	return c.mutateList(ctx, "rtm.lists.delete", listID, nil)
}

func (c *Client) mutateList(ctx context.Context, method string, listID int64, extra map[string]string) error {
	timeline, err := c.timelineID(ctx)
	if err != nil {
		return err
	}

	params := map[string]string{
		"timeline": timeline,
		"list_id":  strconv.FormatInt(listID, 10),
	}
	for k, v := range extra {
		params[k] = v
	}

	_, err = c.call(ctx, method, params)
	return err
}

func convertList(w wireList) domain.List {
	return domain.List{
		ID:       w.ID,
		Name:     w.Name,
		Deleted:  bool(w.Deleted),
		Locked:   bool(w.Locked),
		Archived: bool(w.Archived),
		Smart:    bool(w.Smart),
		Position: w.Position,
	}
}
