package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/hookchat/hookchat/internal/app"
	"github.com/hookchat/hookchat/internal/config"
	"github.com/hookchat/hookchat/internal/logger"
	"github.com/hookchat/hookchat/internal/session"
	"github.com/hookchat/hookchat/internal/storage"
	"github.com/hookchat/hookchat/internal/theme"
	"github.com/hookchat/hookchat/internal/webhook"
)

var (
	debugMode             bool
	quietMode             bool
	configPath            string
	ephemeral             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "hookchat",
	Short: "Terminal chat client for webhook-backed bots",
	Long: `hookchat is a terminal chat client. Each message you send is posted to a
webhook as {"message": "..."} and the reply is shown in the conversation.

Sign in once and the session is remembered between runs, along with your
light or dark theme.`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.hookchat/config.json)")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "Keep session and theme in memory only")
}

func initConfig() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("hookchat %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("hookchat %s\n", version)
}

// services are the long-lived pieces every command builds from the config
type services struct {
	cfg     *config.Config
	store   storage.Store
	session *session.Store
	theme   *theme.Preference
	client  *webhook.Client
}

// loadServices reads the config and opens the state store
func loadServices() (*services, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	if p := cfg.GetLogPath(); p != "" {
		if err := logger.Init(config.ExpandHome(p)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	backend := cfg.GetStorageBackend()
	if ephemeral {
		backend = storage.BackendMemory
	}
	store, err := storage.Open(backend, config.ExpandHome(cfg.GetDataDir()))
	if err != nil {
		return nil, fmt.Errorf("error opening %s storage: %w", backend, err)
	}

	return &services{
		cfg:     cfg,
		store:   store,
		session: session.New(store),
		theme:   theme.New(store),
		client:  webhook.New(cfg.GetWebhookURL(), webhook.WithTimeout(cfg.Timeout())),
	}, nil
}

// Close releases the state store
func (s *services) Close() {
	if err := s.store.Close(); err != nil {
		logger.ComponentLogger("CLI").Warn("failed to close storage", "error", err)
	}
}

// configuredTheme is the theme used when nothing is stored
func (s *services) configuredTheme() theme.Mode {
	if mode, ok := theme.ParseMode(s.cfg.GetDefaultTheme()); ok {
		return mode
	}
	return theme.Dark
}

// signalContext is canceled on interrupt or termination
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runTUI(cmd *cobra.Command, args []string) error {
	svc, err := loadServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	// Ensure logger is closed on exit
	defer logger.Close()

	ctx, cancel := signalContext()
	defer cancel()

	m := app.New(ctx, app.Deps{
		Config:  svc.cfg,
		Session: svc.session,
		Theme:   svc.theme,
		Sender:  svc.client,
	}, version)
	p := tea.NewProgram(m, tea.WithContext(ctx))
	stop := m.Watch(p.Send)
	defer stop()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
