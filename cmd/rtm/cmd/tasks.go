package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dwaring87/rtm-api/internal/application/commands"
	"github.com/dwaring87/rtm-api/internal/domain"
)

var (
	listFilter    string
	listCached    bool
	listCompleted bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `List tasks with their local numbers.

Every other command takes these numbers, so 'rtm list' is the natural
starting point. Numbers are stable: #3 keeps meaning the same task until
the index is cleared.

Examples:
  rtm list
  rtm list --filter "due:today"
  rtm list --cached`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		c := commands.NewListTasksCommand(deps, listFilter, listCached, listCompleted)
		result, err := c.Execute(context.Background())
		if err != nil {
			return err
		}

		if result.FromCache {
			fmt.Printf("(cached snapshot from %s)\n", result.SyncedAt.Format("2006-01-02 15:04"))
		}
		if len(result.Rows) == 0 {
			fmt.Println("No tasks.")
			return nil
		}
		for _, row := range result.Rows {
			fmt.Println(formatTask(row))
		}
		return nil
	},
}

var addNoParse bool

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a task",
	Long: `Add a task. The name is parsed with the service's smart-add syntax
unless --no-parse is given, so due dates, !priority, ^list and #tags work
inline.

Examples:
  rtm add "Pick up milk tomorrow !1 #errand"
  rtm add --no-parse "Literal ^name with #symbols"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		result, err := commands.NewAddTaskCommand(deps, args[0], !addNoParse).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var completeCmd = &cobra.Command{
	Use:   "complete <number>",
	Short: "Mark a task complete",
	Args:  cobra.ExactArgs(1),
	RunE:  taskAction(func(index int) taskActionExec { return commands.NewCompleteTaskCommand(deps, index) }),
}

var uncompleteCmd = &cobra.Command{
	Use:   "uncomplete <number>",
	Short: "Mark a completed task incomplete again",
	Args:  cobra.ExactArgs(1),
	RunE:  taskAction(func(index int) taskActionExec { return commands.NewUncompleteTaskCommand(deps, index) }),
}

var deleteCmd = &cobra.Command{
	Use:   "delete <number>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE:  taskAction(func(index int) taskActionExec { return commands.NewDeleteTaskCommand(deps, index) }),
}

var postponeCmd = &cobra.Command{
	Use:   "postpone <number>",
	Short: "Push a task's due date out by a day",
	Args:  cobra.ExactArgs(1),
	RunE:  taskAction(func(index int) taskActionExec { return commands.NewPostponeTaskCommand(deps, index) }),
}

var renameCmd = &cobra.Command{
	Use:   "rename <number> <new-name>",
	Short: "Rename a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewRenameTaskCommand(deps, index, args[1]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var priorityCmd = &cobra.Command{
	Use:   "priority <number> <1|2|3|none>",
	Short: "Set a task's priority",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewSetPriorityCommand(deps, index, args[1]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var dueCmd = &cobra.Command{
	Use:   "due <number> [date]",
	Short: "Set or clear a task's due date",
	Long: `Set a task's due date. The service parses natural language, so
'tomorrow' or 'next friday at 5pm' work. Omit the date to clear it.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		due := ""
		if len(args) == 2 {
			due = args[1]
		}
		result, err := commands.NewSetDueCommand(deps, index, due).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var moveCmd = &cobra.Command{
	Use:   "move <number> <list-number>",
	Short: "Move a task to another list",
	Long: `Move a task to another list. The destination is a list number as
shown by 'rtm lists'.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		listIndex, err := parseIndex(args[1])
		if err != nil {
			return err
		}
		result, err := commands.NewMoveTaskCommand(deps, index, listIndex).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var tagCmd = &cobra.Command{
	Use:   "tag <number> <tag>...",
	Short: "Add tags to a task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTagAction(args, false)
	},
}

var untagCmd = &cobra.Command{
	Use:   "untag <number> <tag>...",
	Short: "Remove tags from a task",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTagAction(args, true)
	},
}

func runTagAction(args []string, remove bool) error {
	if err := requireAuth(); err != nil {
		return err
	}
	index, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	result, err := commands.NewTagTaskCommand(deps, index, args[1:], remove).Execute(context.Background())
	if err != nil {
		return err
	}
	fmt.Println(result.Message)
	return nil
}

type taskActionExec interface {
	Execute(ctx context.Context) (*commands.TaskActionResult, error)
}

func taskAction(build func(index int) taskActionExec) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		result, err := build(index).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	}
}

// parseIndex accepts "3" and "#3" alike.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimPrefix(arg, "#"))
	if err != nil {
		return 0, fmt.Errorf("invalid task number %q", arg)
	}
	return n, nil
}

func formatTask(row commands.TaskRow) string {
	t := row.Task

	var sb strings.Builder
	fmt.Fprintf(&sb, "#%-3d", row.Index)
	if t.Priority != domain.PriorityNone {
		fmt.Fprintf(&sb, " !%s", t.Priority)
	}
	fmt.Fprintf(&sb, " %s", t.Name)
	if !t.Due.IsZero() {
		layout := "2006-01-02"
		if t.HasDueTime {
			layout = "2006-01-02 15:04"
		}
		fmt.Fprintf(&sb, "  due %s", t.Due.Format(layout))
	}
	if len(t.Tags) > 0 {
		fmt.Fprintf(&sb, "  #%s", strings.Join(t.Tags, " #"))
	}
	if t.IsCompleted() {
		sb.WriteString("  (completed)")
	}
	return sb.String()
}

func init() {
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "service-side filter expression")
	listCmd.Flags().BoolVar(&listCached, "cached", false, "show the local snapshot without a network call")
	listCmd.Flags().BoolVar(&listCompleted, "completed", false, "include completed tasks")

	addCmd.Flags().BoolVar(&addNoParse, "no-parse", false, "disable smart-add parsing of the name")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(completeCmd)
	rootCmd.AddCommand(uncompleteCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(postponeCmd)
	rootCmd.AddCommand(renameCmd)
	rootCmd.AddCommand(priorityCmd)
	rootCmd.AddCommand(dueCmd)
	rootCmd.AddCommand(moveCmd)
	rootCmd.AddCommand(tagCmd)
	rootCmd.AddCommand(untagCmd)
}
