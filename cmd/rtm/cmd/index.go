package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dwaring87/rtm-api/internal/application/commands"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Inspect or reset the local number table",
}

var indexShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show which remote identifiers the local numbers stand for",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		rows, err := commands.NewShowIndexCommand(deps).Execute(context.Background())
		if err != nil {
			return err
		}

		if len(rows) == 0 {
			fmt.Println("Index is empty.")
			return nil
		}
		for _, row := range rows {
			if row.Ref.IsList() {
				fmt.Printf("#%-3d list %d\n", row.Index, row.Ref.ListID)
			} else {
				fmt.Printf("#%-3d task %d/%d/%d\n",
					row.Index, row.Ref.ListID, row.Ref.SeriesID, row.Ref.TaskID)
			}
		}
		return nil
	},
}

var indexClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Forget all local numbers",
	Long: `Forget all local numbers for the current user. The next 'rtm list'
assigns fresh numbers starting from #1. Other users' numbers are untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireAuth(); err != nil {
			return err
		}

		msg, err := commands.NewClearIndexCommand(deps).Execute(context.Background())
		if err != nil {
			return err
		}
		fmt.Println(msg)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.AddCommand(indexShowCmd)
	indexCmd.AddCommand(indexClearCmd)
}
