// finledger inspects and feeds the local ledger cache from the command line.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"finledger/internal/amqp"
	"finledger/internal/backend"
	"finledger/internal/config"
	"finledger/internal/log"
	"finledger/internal/services"
)

// cliContext holds what every command needs to run.
type cliContext struct {
	ctx context.Context
	svc *services.LedgerService
}

var cli struct {
	Statements statementsCmd `cmd:"" help:"List uploaded statements, most recent first."`
	Totals     totalsCmd     `cmd:"" help:"Show total income, total expenses and per-category sums."`
	Recent     recentCmd     `cmd:"" help:"Show the most recent transactions by date."`
	Categories categoriesCmd `cmd:"" help:"Group transactions by category."`
	Import     importCmd     `cmd:"" help:"Import a parsed statement file (JSON) into the ledger."`
	Remove     removeCmd     `cmd:"" help:"Remove a statement from the registry."`
	Clear      clearCmd      `cmd:"" help:"Clear all transactions from the ledger."`
}

func main() {
	kctx := kong.Parse(&cli,
		kong.Name("finledger"),
		kong.Description("Local financial ledger cache."))

	// Load .env for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Component: log.ComponentCLI,
	})
	log.SetDefault(logger)

	ctx := context.Background()

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", log.FieldError, err)
		os.Exit(1)
	}

	result, err := backend.NewFactory(logger).CreatePort(ctx, backendCfg)
	if err != nil {
		logger.Error("Failed to initialize storage backend", log.FieldError, err)
		os.Exit(1)
	}

	// AMQP is optional for the CLI; without a broker the ledger still works,
	// only the archive mirror lags.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		amqpClient, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Failed to initialize AMQP client, continuing without sync",
				log.FieldError, err)
		}
	}

	svc, err := services.NewLedgerService(ctx, result.Port, amqpClient, logger)
	if err != nil {
		logger.Error("Failed to initialize ledger service", log.FieldError, err)
		_ = result.Cleanup()
		os.Exit(1)
	}
	defer svc.Close()

	kctx.FatalIfErrorf(kctx.Run(&cliContext{ctx: ctx, svc: svc}))
}
