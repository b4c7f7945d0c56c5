package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hookchat/hookchat/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:       "theme [toggle|light|dark]",
	Short:     "Show or change the stored theme",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"toggle", string(theme.Light), string(theme.Dark)},
	RunE:      runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	ctx := cmd.Context()
	svc.theme.Hydrate(ctx, svc.configuredTheme())

	if len(args) == 1 {
		if args[0] == "toggle" {
			svc.theme.Toggle(ctx)
		} else {
			mode, _ := theme.ParseMode(args[0])
			svc.theme.Set(ctx, mode)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Theme: %s\n", svc.theme.Mode())
	return nil
}
