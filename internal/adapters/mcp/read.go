package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dwaring87/rtm-api/internal/application/commands"
	"github.com/dwaring87/rtm-api/internal/domain"
)

// RegisterReadTools adds all read-only task tools to the MCP server.
func RegisterReadTools(s *server.MCPServer, deps commands.Deps) {
	s.AddTool(listTasksTool(), listTasksHandler(deps))
	s.AddTool(listListsTool(), listListsHandler(deps))
	s.AddTool(showIndexTool(), showIndexHandler(deps))
}

// --- list_tasks ---

func listTasksTool() mcp.Tool {
	return mcp.NewTool("list_tasks",
		mcp.WithDescription("List the user's tasks with their local numbers (#N). Numbers are stable across calls and are how every mutating tool addresses a task."),
		mcp.WithString("filter",
			mcp.Description("Service-side filter expression (e.g. 'status:incomplete AND dueBefore:tomorrow'). Omit for all open tasks."),
		),
		mcp.WithBoolean("include_completed",
			mcp.Description("Include completed tasks. Default false."),
		),
	)
}

func listTasksHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filter := req.GetString("filter", "")
		includeCompleted := req.GetBool("include_completed", false)

		cmd := commands.NewListTasksCommand(deps, filter, false, includeCompleted)
		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(result.Rows) == 0 {
			return mcp.NewToolResultText("No tasks."), nil
		}

		var sb strings.Builder
		for _, row := range result.Rows {
			sb.WriteString(formatTaskRow(row))
			sb.WriteByte('\n')
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- list_lists ---

func listListsTool() mcp.Tool {
	return mcp.NewTool("list_lists",
		mcp.WithDescription("List the user's task lists with their local numbers (#N)."),
		mcp.WithBoolean("include_archived",
			mcp.Description("Include archived lists. Default false."),
		),
	)
}

func listListsHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		includeArchived := req.GetBool("include_archived", false)

		rows, err := commands.NewListListsCommand(deps, includeArchived).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(rows) == 0 {
			return mcp.NewToolResultText("No lists."), nil
		}

		var sb strings.Builder
		for _, row := range rows {
			flags := ""
			if row.List.Smart {
				flags = " (smart)"
			}
			if row.List.Archived {
				flags += " (archived)"
			}
			fmt.Fprintf(&sb, "#%d  %s%s\n", row.Index, row.List.Name, flags)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- show_index ---

func showIndexTool() mcp.Tool {
	return mcp.NewTool("show_index",
		mcp.WithDescription("Dump the mapping from local numbers to the remote identifiers they stand for. Mostly useful for debugging stale numbers."),
	)
}

func showIndexHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rows, err := commands.NewShowIndexCommand(deps).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if len(rows) == 0 {
			return mcp.NewToolResultText("Index is empty."), nil
		}

		var sb strings.Builder
		for _, row := range rows {
			if row.Ref.IsList() {
				fmt.Fprintf(&sb, "#%d  list %d\n", row.Index, row.Ref.ListID)
			} else {
				fmt.Fprintf(&sb, "#%d  task %d/%d/%d\n",
					row.Index, row.Ref.ListID, row.Ref.SeriesID, row.Ref.TaskID)
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatTaskRow(row commands.TaskRow) string {
	t := row.Task

	var sb strings.Builder
	fmt.Fprintf(&sb, "#%d", row.Index)
	if t.Priority != domain.PriorityNone {
		fmt.Fprintf(&sb, " !%s", t.Priority)
	}
	fmt.Fprintf(&sb, " %s", t.Name)
	if !t.Due.IsZero() {
		layout := "2006-01-02"
		if t.HasDueTime {
			layout = "2006-01-02 15:04"
		}
		fmt.Fprintf(&sb, " (due %s)", t.Due.Format(layout))
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(&sb, " [%s]", strings.Join(t.Tags, ", "))
	}
	if t.IsCompleted() {
		sb.WriteString(" (completed)")
	}
	return sb.String()
}
