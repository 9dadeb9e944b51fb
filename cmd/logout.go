package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Discard the persisted session token",
	RunE:  runLogout,
}

func runLogout(cmd *cobra.Command, args []string) error {
	a, err := buildApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	a.session.Logout()
	fmt.Println("signed out")
	return nil
}
