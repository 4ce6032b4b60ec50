package main

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/costguard/costguard/pkg/server"
	"github.com/costguard/costguard/pkg/services/config"
	"github.com/costguard/costguard/pkg/services/mapping"
	"github.com/costguard/costguard/pkg/services/metering"
	"github.com/costguard/costguard/pkg/services/ratelimit"
	"github.com/costguard/costguard/pkg/services/report"
	"github.com/costguard/costguard/pkg/services/vault"
	"github.com/costguard/costguard/pkg/store/duckdb"
	"github.com/costguard/costguard/pkg/store/duckdb/commitment"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the web server for Cost Guard",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "costguard.yaml",
		"Path to the Cost Guard config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	passphrase := os.Getenv("COSTGUARD_VAULT_KEY")
	if passphrase == "" {
		return fmt.Errorf("COSTGUARD_VAULT_KEY is not set")
	}

	creds, err := vault.Open(cfg.Vault.Path, vault.DeriveKey(passphrase))
	if err != nil {
		return fmt.Errorf("failed to open credential vault: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.DBPath,
	})
	if err != nil {
		return fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	commitmentStore, err := commitment.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create commitment store: %w", err)
	}

	gate := ratelimit.NewGate(ratelimit.Config{
		Limit:  cfg.RateLimit.Requests,
		Window: cfg.RateLimit.Window(),
	})
	client := metering.NewHTTPClient(cfg.Vendor.BaseURL, metering.Credentials{
		APIKey: creds.APIKey,
		AppKey: creds.AppKey,
	}, metering.GateFromLimiter(gate))

	registry := mapping.NewRegistry()
	reports := report.NewController(registry, client, commitmentStore)

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)

	webAPI := server.NewWebAPI(logger, server.Config{
		Addr:            net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		ShutdownTimeout: 10 * time.Second,
		Dependencies: server.Dependencies{
			Reports:     reports,
			Commitments: commitmentStore,
			Registry:    registry,
		},
	})

	return webAPI.Start()
}
