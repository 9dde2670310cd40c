// issues.go implements the "atim issues" command listing detected issues.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var issuesCmd = &cobra.Command{
	Use:   "issues [id]",
	Short: "List detected issues, or show one in detail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		if len(args) == 1 {
			issue, err := deps.API.Issue(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s [%s/%s]\n", issue.Title, issue.Severity, issue.Status)
			fmt.Printf("%s:%d\n\n", issue.FilePath, issue.LineNumber)
			fmt.Println(issue.Description)
			if issue.SuggestedFix != "" {
				fmt.Printf("\nSuggested fix:\n%s\n", issue.SuggestedFix)
			}
			return nil
		}

		issues, err := deps.API.Issues(cmd.Context())
		if err != nil {
			return err
		}
		if len(issues) == 0 {
			fmt.Println("No issues detected.")
			return nil
		}
		for _, issue := range issues {
			fmt.Printf("%-10s %-8s %-6s %s\n", issue.ID, issue.Severity, issue.Status, issue.Title)
		}
		return nil
	},
}
