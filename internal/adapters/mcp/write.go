package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/dwaring87/rtm-api/internal/application/commands"
)

// RegisterWriteTools adds all mutating task tools to the MCP server.
func RegisterWriteTools(s *server.MCPServer, deps commands.Deps) {
	s.AddTool(addTaskTool(), addTaskHandler(deps))
	s.AddTool(completeTaskTool(), completeTaskHandler(deps))
	s.AddTool(postponeTaskTool(), postponeTaskHandler(deps))
	s.AddTool(deleteTaskTool(), deleteTaskHandler(deps))
	s.AddTool(setDueTool(), setDueHandler(deps))
}

// --- add_task ---

func addTaskTool() mcp.Tool {
	return mcp.NewTool("add_task",
		mcp.WithDescription("Add a new task. With parse=true the name may carry smart-add syntax (due date, !priority, ^list, #tags)."),
		mcp.WithString("name",
			mcp.Description("Task name"),
			mcp.Required(),
		),
		mcp.WithBoolean("parse",
			mcp.Description("Interpret smart-add syntax in the name. Default true."),
		),
	)
}

func addTaskHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		parse := req.GetBool("parse", true)

		result, err := commands.NewAddTaskCommand(deps, name, parse).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- complete_task ---

func completeTaskTool() mcp.Tool {
	return mcp.NewTool("complete_task",
		mcp.WithDescription("Mark the task with the given local number complete."),
		mcp.WithNumber("index",
			mcp.Description("Local task number as shown by list_tasks"),
			mcp.Required(),
		),
	)
}

func completeTaskHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index := req.GetInt("index", 0)

		result, err := commands.NewCompleteTaskCommand(deps, index).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- postpone_task ---

func postponeTaskTool() mcp.Tool {
	return mcp.NewTool("postpone_task",
		mcp.WithDescription("Push the task's due date out by one day (service semantics: overdue tasks become due today)."),
		mcp.WithNumber("index",
			mcp.Description("Local task number as shown by list_tasks"),
			mcp.Required(),
		),
	)
}

func postponeTaskHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index := req.GetInt("index", 0)

		result, err := commands.NewPostponeTaskCommand(deps, index).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- delete_task ---

func deleteTaskTool() mcp.Tool {
	return mcp.NewTool("delete_task",
		mcp.WithDescription("Delete the task with the given local number."),
		mcp.WithNumber("index",
			mcp.Description("Local task number as shown by list_tasks"),
			mcp.Required(),
		),
	)
}

func deleteTaskHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index := req.GetInt("index", 0)

		result, err := commands.NewDeleteTaskCommand(deps, index).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- set_due ---

func setDueTool() mcp.Tool {
	return mcp.NewTool("set_due",
		mcp.WithDescription("Set or clear the task's due date. The service parses natural language ('tomorrow', 'next friday at 5pm')."),
		mcp.WithNumber("index",
			mcp.Description("Local task number as shown by list_tasks"),
			mcp.Required(),
		),
		mcp.WithString("due",
			mcp.Description("Due date text. Empty string clears the due date."),
		),
	)
}

func setDueHandler(deps commands.Deps) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		index := req.GetInt("index", 0)
		due := req.GetString("due", "")

		result, err := commands.NewSetDueCommand(deps, index, due).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}
