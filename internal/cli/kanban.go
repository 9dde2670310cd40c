// kanban.go implements the "atim kanban" command printing the board.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/atim-dev/atim/internal/api"
	"github.com/atim-dev/atim/internal/tui/views"
)

var kanbanCmd = &cobra.Command{
	Use:   "kanban",
	Short: "Show the work board",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		items, err := deps.API.KanbanItems(cmd.Context())
		if err != nil {
			return err
		}
		if len(items) == 0 {
			fmt.Println("(sample data)")
			items = views.SampleItems()
		}

		board := views.Buckets(items)
		printColumn("To Do", board.Todo)
		printColumn("In Progress", board.InProgress)
		printColumn("Done", board.Done)
		return nil
	},
}

func printColumn(title string, items []api.KanbanItem) {
	fmt.Printf("%s (%d)\n", title, len(items))
	for _, item := range items {
		fmt.Printf("  %-5s #%-4d %s\n", item.Type, item.Number, item.Title)
	}
	fmt.Println()
}
