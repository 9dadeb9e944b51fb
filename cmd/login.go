package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var loginCmd = &cobra.Command{
	Use:   "login [email]",
	Short: "Sign in and persist the session token",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	a, err := buildApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	var email string
	if len(args) == 1 {
		email = args[0]
	} else {
		fmt.Fprint(os.Stderr, "email: ")
		r := bufio.NewReader(os.Stdin)
		line, err := r.ReadString('\n')
		if err != nil {
			return fmt.Errorf("read email: %w", err)
		}
		email = strings.TrimSpace(line)
	}
	if email == "" {
		return fmt.Errorf("login: email is required")
	}

	fmt.Fprint(os.Stderr, "password: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}

	id, err := a.session.Login(cmd.Context(), email, string(raw))
	if err != nil {
		return err
	}
	fmt.Printf("signed in as %s (%s)\n", id.FullName(), id.Role)
	return nil
}
