package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hookchat/hookchat/internal/config"
	"github.com/hookchat/hookchat/internal/logger"
	"github.com/hookchat/hookchat/internal/storage"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove stored session, theme and log files",
	Long: `Removes the stored state (session flag and theme preference) for every
storage backend, and deletes hookchat log files. The config file is kept.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(cmd.InOrStdin(), cmd.OutOrStdout())
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(input io.Reader, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Gather what will be cleaned
	var existing []string
	for _, p := range storage.Paths(config.ExpandHome(cfg.GetDataDir())) {
		if _, err := os.Stat(p); err == nil {
			existing = append(existing, p)
		}
	}
	logPath := config.ExpandHome(cfg.GetLogPath())

	fmt.Fprintln(out, "This will clean:")
	if len(existing) == 0 {
		fmt.Fprintln(out, "  - no stored state found")
	}
	for _, p := range existing {
		fmt.Fprintf(out, "  - %s\n", p)
	}
	fmt.Fprintln(out, "  - All hookchat log files")

	// Confirm unless --yes flag is set
	if !skipConfirm {
		if !confirm(input, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	removed := 0
	for _, p := range existing {
		if err := os.RemoveAll(p); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: error removing %s: %v\n", p, err)
			continue
		}
		removed++
	}

	logsCleared, err := logger.ClearLogs(logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	// Print results
	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	fmt.Fprintf(out, "  - %d state location(s) removed\n", removed)
	fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Printf("%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
