package main

import (
	"fmt"
	"os"

	"github.com/costguard/costguard/pkg/runtime/terminal"
	"github.com/costguard/costguard/pkg/services/config"
	"github.com/costguard/costguard/pkg/services/mapping"
	"github.com/costguard/costguard/pkg/services/metering"
	"github.com/costguard/costguard/pkg/services/ratelimit"
	"github.com/costguard/costguard/pkg/services/report"
	"github.com/costguard/costguard/pkg/services/vault"
	"github.com/costguard/costguard/pkg/store/duckdb"
	"github.com/costguard/costguard/pkg/store/duckdb/commitment"
	"github.com/joho/godotenv"
)

func main() {
	reports, err := buildReports()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cli := terminal.NewCLI(terminal.Options{
		Reports: reports,
		Output:  os.Stdout,
	})

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildReports() (report.Controller, error) {
	_ = godotenv.Load()

	cfgPath := os.Getenv("COSTGUARD_CONFIG")
	if cfgPath == "" {
		cfgPath = "costguard.yaml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	passphrase := os.Getenv("COSTGUARD_VAULT_KEY")
	if passphrase == "" {
		return nil, fmt.Errorf("COSTGUARD_VAULT_KEY is not set")
	}

	creds, err := vault.Open(cfg.Vault.Path, vault.DeriveKey(passphrase))
	if err != nil {
		return nil, fmt.Errorf("failed to open credential vault: %w", err)
	}

	db, err := duckdb.NewDB(duckdb.Settings{
		DbPath: cfg.DBPath,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB instance: %w", err)
	}

	commitmentStore, err := commitment.NewStore(db)
	if err != nil {
		return nil, fmt.Errorf("failed to create commitment store: %w", err)
	}

	gate := ratelimit.NewGate(ratelimit.Config{
		Limit:  cfg.RateLimit.Requests,
		Window: cfg.RateLimit.Window(),
	})
	client := metering.NewHTTPClient(cfg.Vendor.BaseURL, metering.Credentials{
		APIKey: creds.APIKey,
		AppKey: creds.AppKey,
	}, metering.GateFromLimiter(gate))

	return report.NewController(mapping.NewRegistry(), client, commitmentStore), nil
}
