package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the identity of the persisted session, if any",
	RunE:  runWhoami,
}

func runWhoami(cmd *cobra.Command, args []string) error {
	a, err := buildApp(os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	id := a.session.Restore()
	if id == nil {
		fmt.Println("not signed in")
		return nil
	}
	fmt.Printf("%s <%s>\nrole: %s\n", id.FullName(), id.Email, id.Role)
	return nil
}
