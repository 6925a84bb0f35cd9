package rtm

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/dwaring87/rtm-api/internal/domain"
)

// GetTasks fetches the user's tasks, flattened to one domain.Task per task
// (the service nests them list → series → task). filter is a service-side
// filter expression; empty fetches everything.
func (c *Client) GetTasks(ctx context.Context, filter string) ([]domain.Task, error) {
	params := map[string]string{}
	if filter != "" {
		params["filter"] = filter
	}

	rsp, err := c.call(ctx, "rtm.tasks.getList", params)
	if err != nil {
		return nil, err
	}

	var out struct {
		Tasks struct {
			List many[wireTaskList] `json:"list"`
		} `json:"tasks"`
	}
	if err := json.Unmarshal(rsp, &out); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	var tasks []domain.Task
	for _, list := range out.Tasks.List {
		tasks = append(tasks, flattenList(list)...)
	}
	return tasks, nil
}

// AddTask creates a task. With parse set, the service's smart-add syntax in
// name is honored (due dates, priority markers, ^list targeting). The
// returned task carries the service-assigned identifier triple.
func (c *Client) AddTask(ctx context.Context, name string, parse bool) (domain.Task, error) {
	timeline, err := c.timelineID(ctx)
	if err != nil {
		return domain.Task{}, err
	}

	params := map[string]string{
		"timeline": timeline,
		"name":     name,
	}
	if parse {
		params["parse"] = "1"
	}

	rsp, err := c.call(ctx, "rtm.tasks.add", params)
	if err != nil {
		return domain.Task{}, err
	}

	var out struct {
		List wireTaskList `json:"list"`
	}
	if err := json.Unmarshal(rsp, &out); err != nil {
		return domain.Task{}, fmt.Errorf("decode added task: %w", err)
	}

	tasks := flattenList(out.List)
	if len(tasks) == 0 {
		return domain.Task{}, fmt.Errorf("service returned no task for add")
	}
	return tasks[0], nil
}

// CompleteTask marks a task complete.
func (c *Client) CompleteTask(ctx context.Context, ref domain.Ref) error {
	return c.mutateTask(ctx, "rtm.tasks.complete", ref, nil)
}

// UncompleteTask reopens a completed task.
func (c *Client) UncompleteTask(ctx context.Context, ref domain.Ref) error {
	return c.mutateTask(ctx, "rtm.tasks.uncomplete", ref, nil)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, ref domain.Ref) error {
	return c.mutateTask(ctx, "rtm.tasks.delete", ref, nil)
}

// SetTaskName renames a task.
func (c *Client) SetTaskName(ctx context.Context, ref domain.Ref, name string) error {
	return c.mutateTask(ctx, "rtm.tasks.setName", ref, map[string]string{"name": name})
}

// SetPriority sets a task's priority.
func (c *Client) SetPriority(ctx context.Context, ref domain.Ref, p domain.Priority) error {
	return c.mutateTask(ctx, "rtm.tasks.setPriority", ref, map[string]string{"priority": p.String()})
}

// SetDueDate sets a task's due date, or clears it when due is empty. With
// parse set, the service accepts fuzzy strings like "next friday at 2pm".
func (c *Client) SetDueDate(ctx context.Context, ref domain.Ref, due string, parse bool) error {
	extra := map[string]string{"due": due}
	if parse {
		extra["parse"] = "1"
	}
	return c.mutateTask(ctx, "rtm.tasks.setDueDate", ref, extra)
}

// PostponeTask pushes a task's due date forward by a day (service policy:
// tasks without a due date or overdue become due today).
func (c *Client) PostponeTask(ctx context.Context, ref domain.Ref) error {
	return c.mutateTask(ctx, "rtm.tasks.postpone", ref, nil)
}

// MoveTask moves a task to another list.
func (c *Client) MoveTask(ctx context.Context, ref domain.Ref, toListID int64) error {
	return c.mutateTask(ctx, "rtm.tasks.moveTo", ref, map[string]string{
		"from_list_id": strconv.FormatInt(ref.ListID, 10),
		"to_list_id":   strconv.FormatInt(toListID, 10),
	})
}

// AddTags adds tags to a task.
func (c *Client) AddTags(ctx context.Context, ref domain.Ref, tags []string) error {
	return c.mutateTask(ctx, "rtm.tasks.addTags", ref, map[string]string{
		"tags": strings.Join(tags, ","),
	})
}

// RemoveTags removes tags from a task.
func (c *Client) RemoveTags(ctx context.Context, ref domain.Ref, tags []string) error {
	return c.mutateTask(ctx, "rtm.tasks.removeTags", ref, map[string]string{
		"tags": strings.Join(tags, ","),
	})
}

// mutateTask runs one timeline-scoped task mutation addressed by the full
// identifier triple.
func (c *Client) mutateTask(ctx context.Context, method string, ref domain.Ref, extra map[string]string) error {
	timeline, err := c.timelineID(ctx)
	if err != nil {
		return err
	}

	params := map[string]string{
		"timeline":      timeline,
		"list_id":       strconv.FormatInt(ref.ListID, 10),
		"taskseries_id": strconv.FormatInt(ref.SeriesID, 10),
		"task_id":       strconv.FormatInt(ref.TaskID, 10),
	}
	for k, v := range extra {
		params[k] = v
	}

	_, err = c.call(ctx, method, params)
	return err
}

func flattenList(list wireTaskList) []domain.Task {
	var tasks []domain.Task
	for _, series := range list.Series {
		for _, t := range series.Task {
			tasks = append(tasks, domain.Task{
				ListID:     list.ID,
				SeriesID:   series.ID,
				TaskID:     t.ID,
				Name:       series.Name,
				URL:        series.URL,
				Source:     series.Source,
				Tags:       []string(series.Tags),
				Priority:   domain.ParsePriority(t.Priority),
				Due:        parseTime(t.Due),
				HasDueTime: bool(t.HasDueTime),
				Added:      parseTime(t.Added),
				Completed:  parseTime(t.Completed),
				Deleted:    parseTime(t.Deleted),
			})
		}
	}
	return tasks
}
