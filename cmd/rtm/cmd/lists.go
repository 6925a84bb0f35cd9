package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwaring87/rtm-api/internal/application/commands"
)

var listsArchived bool

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Manage lists",
	Long: `Show the user's lists with their local numbers, or manage them via
subcommands. List numbers share the index with task numbers, so a list and
a task never collide on the same number.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		rows, err := commands.NewListListsCommand(deps, listsArchived).Execute(context.Background())
		if err != nil {
			return err
		}

		for _, row := range rows {
			flags := ""
			if row.List.Smart {
				flags = "  (smart)"
			}
			if row.List.Archived {
				flags += "  (archived)"
			}
			fmt.Printf("#%-3d %s%s\n", row.Index, row.List.Name, flags)
		}
		return nil
	},
}

var listsAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Create a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		result, err := commands.NewAddListCommand(deps, args[0]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var listsRenameCmd = &cobra.Command{
	Use:   "rename <number> <new-name>",
	Short: "Rename a list",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewRenameListCommand(deps, index, args[1]).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

var listsArchiveCmd = &cobra.Command{
	Use:   "archive <number>",
	Short: "Archive a list",
	Args:  cobra.ExactArgs(1),
	RunE:  listArchiveAction(false),
}

var listsUnarchiveCmd = &cobra.Command{
	Use:   "unarchive <number>",
	Short: "Bring an archived list back",
	Args:  cobra.ExactArgs(1),
	RunE:  listArchiveAction(true),
}

var listsDeleteCmd = &cobra.Command{
	Use:   "delete <number>",
	Short: "Delete a list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewDeleteListCommand(deps, index).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	},
}

func listArchiveAction(unarchive bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}
		index, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		result, err := commands.NewArchiveListCommand(deps, index, unarchive).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(result.Message)
		return nil
	}
}

func init() {
	listsCmd.Flags().BoolVar(&listsArchived, "archived", false, "include archived lists")

	rootCmd.AddCommand(listsCmd)
	listsCmd.AddCommand(listsAddCmd)
	listsCmd.AddCommand(listsRenameCmd)
	listsCmd.AddCommand(listsArchiveCmd)
	listsCmd.AddCommand(listsUnarchiveCmd)
	listsCmd.AddCommand(listsDeleteCmd)
}
