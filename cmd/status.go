package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookchat/hookchat/internal/config"
	"github.com/hookchat/hookchat/internal/logger"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show session, theme and webhook settings",
	Args:  cobra.NoArgs,
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := cmd.Context()
	svc.session.Hydrate(ctx)
	svc.theme.Hydrate(ctx, svc.configuredTheme())

	signedIn := "no"
	if svc.session.IsAuthenticated() {
		signedIn = "yes"
	}
	backend := svc.cfg.GetStorageBackend()
	if ephemeral {
		backend += " (ephemeral)"
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Signed in: %s\n", signedIn)
	fmt.Fprintf(out, "Theme:     %s\n", svc.theme.Mode())
	fmt.Fprintf(out, "Webhook:   %s (timeout %s)\n", svc.client.URL(), svc.cfg.Timeout())
	fmt.Fprintf(out, "Storage:   %s in %s\n", backend, config.ExpandHome(svc.cfg.GetDataDir()))
	if p := logger.Path(); p != "" {
		fmt.Fprintf(out, "Log:       %s\n", p)
	}
	return nil
}
