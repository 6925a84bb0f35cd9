package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dwaring87/rtm-api/internal/adapters/sqlite"
	"github.com/dwaring87/rtm-api/internal/application"
	"github.com/dwaring87/rtm-api/internal/application/commands"
	"github.com/dwaring87/rtm-api/internal/config"
	"github.com/dwaring87/rtm-api/internal/refstore"
	"github.com/dwaring87/rtm-api/internal/rtm"
	"github.com/dwaring87/rtm-api/internal/throttle"
)

var (
	verbose bool

	logger *slog.Logger
	client *rtm.Client
	store  *refstore.Store
	creds  *config.Credentials
	deps   commands.Deps
)

var rootCmd = &cobra.Command{
	Use:   "rtm",
	Short: "CLI for the Remember The Milk task service",
	Long: `rtm is a command-line interface for the Remember The Milk task service.

Tasks and lists are addressed by small local numbers (#1, #2, ...) that stay
stable across invocations, so you never have to type a remote identifier.
Requests are paced to stay inside the service's rate limit.

Set RTM_API_KEY and RTM_SHARED_SECRET (a .env file in the working directory
works too), then run 'rtm auth login' once.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		return initDeps()
	},
}

func initDeps() error {
	// A missing .env is fine; the environment may carry the keys.
	_ = godotenv.Load()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	apiKey, secret := config.APIKey(), config.SharedSecret()
	if apiKey == "" || secret == "" {
		return fmt.Errorf("RTM_API_KEY and RTM_SHARED_SECRET must be set")
	}

	var err error
	creds, err = config.LoadCredentials(config.CredentialsPath())
	if err != nil {
		return err
	}

	opts := []rtm.Option{
		rtm.WithScheduler(throttle.New(config.MinInterval())),
		rtm.WithLogger(logger),
	}
	if creds != nil {
		opts = append(opts, rtm.WithAuth(creds.Token, creds.UserID))
	}
	client = rtm.New(apiKey, secret, opts...)

	store = refstore.New(config.IndexPath())
	if err := store.Load(); err != nil {
		return err
	}

	deps = commands.Deps{
		Tasks:  client,
		Lists:  client,
		Store:  store,
		Logger: logger,
	}
	if creds != nil {
		deps.UserID = creds.UserID
	}

	// The snapshot cache is a convenience; run without it if it won't open.
	cache, err := sqlite.Open(config.CachePath())
	if err != nil {
		logger.Warn("task cache unavailable", "error", err)
	} else {
		deps.Cache = cache
	}

	return nil
}

func requireAuth() error {
	if creds == nil {
		return fmt.Errorf("%w: run 'rtm auth login' first", application.ErrNotAuthenticated)
	}
	return nil
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
