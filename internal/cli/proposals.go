// proposals.go implements the "atim proposals" commands for reviewing
// GitHub issue proposals.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var proposalsCmd = &cobra.Command{
	Use:   "proposals",
	Short: "List GitHub issue proposals awaiting review",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		proposals, err := deps.GitHub.Proposals(cmd.Context())
		if err != nil {
			return err
		}
		if len(proposals) == 0 {
			fmt.Println("No proposals waiting for review.")
			return nil
		}
		for _, p := range proposals {
			line := fmt.Sprintf("%-10s %-9s %-8s %s", p.ID, p.Status, p.Severity, p.Title)
			if p.GitHubIssueNumber != 0 {
				line += fmt.Sprintf("  #%d", p.GitHubIssueNumber)
			}
			fmt.Println(line)
		}
		return nil
	},
}

var proposalApproveCmd = &cobra.Command{
	Use:   "approve <id>",
	Short: "Publish a proposal as a GitHub issue",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		issueNumber, err := deps.GitHub.ApproveProposal(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Published as issue #%d\n", issueNumber)
		return nil
	},
}

var proposalRejectCmd = &cobra.Command{
	Use:   "reject <id>",
	Short: "Reject a proposal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := deps.GitHub.RejectProposal(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Println("Proposal rejected.")
		return nil
	},
}

var proposalStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show the target repository summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := deps.GitHub.Stats(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n", stats.Name, stats.Language)
		fmt.Printf("  open issues: %d\n", stats.OpenIssues)
		fmt.Printf("  open PRs:    %d\n", stats.OpenPulls)
		fmt.Printf("  stars:       %d\n", stats.Stars)
		fmt.Printf("  forks:       %d\n", stats.Forks)
		return nil
	},
}

func init() {
	proposalsCmd.AddCommand(proposalApproveCmd)
	proposalsCmd.AddCommand(proposalRejectCmd)
	proposalsCmd.AddCommand(proposalStatsCmd)
}
