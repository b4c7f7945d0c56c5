package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookchat/hookchat/internal/devhook"
	"github.com/hookchat/hookchat/internal/logger"
)

var (
	devhookAddr string
	devhookMode string
)

var devhookCmd = &cobra.Command{
	Use:   "devhook",
	Short: "Run a local echo webhook for development",
	Long: `Serves POST /webhook and answers every message with "echo: <message>".
--mode selects the reply shape so each one the client understands can be tried:
output, message, string, text, empty or error.`,
	Args: cobra.NoArgs,
	RunE: runDevhook,
}

func init() {
	devhookCmd.Flags().StringVar(&devhookAddr, "addr", devhook.DefaultAddr, "Listen address")
	devhookCmd.Flags().StringVar(&devhookMode, "mode", string(devhook.ModeOutput), "Reply shape")
	rootCmd.AddCommand(devhookCmd)
}

func runDevhook(cmd *cobra.Command, args []string) error {
	mode, err := devhook.ParseMode(devhookMode)
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintf(cmd.OutOrStdout(), "Echo webhook on %s%s (mode %s), ctrl+c to stop\n", devhookAddr, devhook.Path, mode)
	return devhook.New(mode).ListenAndServe(ctx, devhookAddr)
}
