package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agrowork/agrowork-cli/internal/core/service"
	"github.com/agrowork/agrowork-cli/internal/infrastructure/api"
	"github.com/agrowork/agrowork-cli/internal/infrastructure/storage"
	"github.com/agrowork/agrowork-cli/internal/pkg/config"
	"github.com/agrowork/agrowork-cli/internal/stub"
	"github.com/agrowork/agrowork-cli/internal/stub/store"
	"github.com/agrowork/agrowork-cli/internal/tui"
	"github.com/agrowork/agrowork-cli/pkg/logger"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "agrowork",
		Short: "Terminal client for the AgroWork farm labor marketplace",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI()
		},
		SilenceUsage: true,
	}

	root.AddCommand(logoutCmd(), stubCmd())
	return root
}

func runTUI() error {
	cfg := config.Load()

	// The TUI owns the terminal, so logs go to a file.
	log := logger.Init(logger.Options{Level: cfg.LogLevel, File: cfg.LogFile})

	session := service.NewSessionStore(storage.NewSessionFile(cfg.SessionFile), log)
	session.Restore()

	gateway := api.NewClient(api.Options{
		BaseURL: cfg.APIBaseURL,
		Timeout: cfg.HTTPTimeout,
	}, log)

	return tui.Run(tui.Deps{
		Session: session,
		Orders:  service.NewOrderView(gateway, session, log),
		Gateway: gateway,
		Log:     log,
		Timeout: cfg.HTTPTimeout,
	})
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Load()
			log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true})

			session := service.NewSessionStore(storage.NewSessionFile(cfg.SessionFile), log)
			session.Logout()
			cmd.Println("logged out")
			return nil
		},
	}
}

func stubCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stub",
		Short: "Run the bundled in-memory marketplace API, for development",
		RunE: func(*cobra.Command, []string) error {
			cfg := config.Load()
			log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: cfg.Env == "development"})

			e := stub.NewRouter(store.New(), cfg.Stub.JWTSecret, cfg.Stub.TokenTTL, log)
			log.Info().Str("port", cfg.Stub.Port).Msg("stub marketplace API listening")
			return e.Start(":" + cfg.Stub.Port)
		},
	}
}
