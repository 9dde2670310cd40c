// prs.go implements the "atim prs" commands for pull requests and feedback.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var prFeedbackApprove bool

var prsCmd = &cobra.Command{
	Use:   "prs",
	Short: "Browse and review Atim's pull requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		prs, err := deps.API.PullRequests(cmd.Context())
		if err != nil {
			return err
		}
		if len(prs) == 0 {
			fmt.Println("No pull requests yet.")
			return nil
		}
		for _, pr := range prs {
			fmt.Printf("%-10s %-7s #%-5d %s\n", pr.ID, pr.Status, pr.GitHubID, pr.Title)
		}
		return nil
	},
}

var prShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one pull request with its feedback",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		pr, err := deps.API.PullRequest(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s [%s]\n%s\n\n%s\n", pr.Title, pr.Status, pr.HTMLURL, pr.Description)
		if len(pr.Feedback) > 0 {
			fmt.Println("\nFeedback:")
			for _, fb := range pr.Feedback {
				verdict := "changes requested"
				if fb.Approved {
					verdict = "approved"
				}
				fmt.Printf("  [%s] %s\n", verdict, fb.Comment)
			}
		}
		return nil
	},
}

var prFeedbackCmd = &cobra.Command{
	Use:   "feedback <id> <comment>",
	Short: "Post review feedback on a pull request",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		fb, err := deps.API.SubmitFeedback(cmd.Context(), args[0], args[1], prFeedbackApprove)
		if err != nil {
			return err
		}
		fmt.Printf("Feedback recorded (%s).\n", fb.ID)
		return nil
	},
}

func init() {
	prFeedbackCmd.Flags().BoolVar(&prFeedbackApprove, "approve", false, "Approve the pull request along with the comment")
	prsCmd.AddCommand(prShowCmd)
	prsCmd.AddCommand(prFeedbackCmd)
}
