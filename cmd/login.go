package cmd

import (
	"errors"
	"fmt"
	"strings"

	huh "charm.land/huh/v2"
	"github.com/spf13/cobra"

	"github.com/hookchat/hookchat/internal/logger"
	"github.com/hookchat/hookchat/internal/ui"
)

var loginCmd = &cobra.Command{
	Use:   "login [username]",
	Short: "Sign in without opening the chat",
	Long: `Signs in and remembers the session. Prompts for a username when none is
given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and forget the stored session",
	Args:  cobra.NoArgs,
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

// promptUsername asks for a username; replaced in tests
var promptUsername = func() (string, error) {
	var username string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(ui.LoginTitle).
				Placeholder(ui.UsernamePlaceholder).
				CharLimit(ui.UsernameCharLimit).
				Value(&username),
		),
	).WithTheme(ui.ModalTheme())
	err := form.Run()
	return username, err
}

func runLogin(cmd *cobra.Command, args []string) error {
	var username string
	if len(args) == 1 {
		username = args[0]
	} else {
		u, err := promptUsername()
		if err != nil {
			return fmt.Errorf("error reading username: %w", err)
		}
		username = u
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return errors.New(ui.EmptyUsernameMessage)
	}

	svc, err := loadServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	svc.session.SignIn(cmd.Context())
	logger.ComponentLogger("CLI").Info("signed in", "username", username)
	fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s.\n", username)
	return nil
}

func runLogout(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	svc.session.SignOut(cmd.Context())
	fmt.Fprintln(cmd.OutOrStdout(), "Signed out.")
	return nil
}
