// auth.go implements the login, logout, register, verify, and whoami commands.
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and persist the session token",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		email := ""
		if len(args) == 1 {
			email = args[0]
		}
		if email == "" {
			email, err = promptLine("Email: ")
			if err != nil {
				return err
			}
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		if ok := deps.Sessions.Login(cmd.Context(), email, password); !ok {
			return fmt.Errorf("login failed: %s", deps.Sessions.Snapshot().Err)
		}
		fmt.Printf("Signed in as %s\n", email)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Erase the persisted session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		deps.Sessions.Logout()
		fmt.Println("Signed out.")
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register [email]",
	Short: "Request a new account",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		email := ""
		if len(args) == 1 {
			email = args[0]
		}
		if email == "" {
			email, err = promptLine("Email: ")
			if err != nil {
				return err
			}
		}
		password, err := promptPassword("Password: ")
		if err != nil {
			return err
		}

		if ok := deps.Sessions.Register(cmd.Context(), email, password); !ok {
			return fmt.Errorf("registration failed: %s", deps.Sessions.Snapshot().Err)
		}
		fmt.Println("Account requested. Check your email for the verification link, then sign in.")
		return nil
	},
}

var verifyCmd = &cobra.Command{
	Use:   "verify <token>",
	Short: "Confirm an account with the emailed verification token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := deps.API.VerifyEmail(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		fmt.Println("Email verified. You can sign in now.")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, cleanup, err := newDeps()
		if err != nil {
			return err
		}
		defer cleanup()

		snapshot := deps.Sessions.Bootstrap(cmd.Context())
		if !snapshot.IsAuthenticated() {
			fmt.Println("Not signed in.")
			return nil
		}
		fmt.Printf("%s", snapshot.User.Email)
		if snapshot.User.Verified {
			fmt.Print(" (verified)")
		}
		fmt.Println()
		return nil
	},
}

// promptLine reads one trimmed line from stdin.
func promptLine(prompt string) (string, error) {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echoing when stdin is a terminal.
func promptPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	if term.IsTerminal(int(syscall.Stdin)) {
		data, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(data), nil
	}
	return promptLine("")
}
