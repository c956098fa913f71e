package main

import (
	"context"
	"errors"
	"os"
	"time"

	"financas/internal/amqp"
	"financas/internal/cli"
	"financas/internal/log"
	"financas/internal/sheets"
	gsheet "financas/internal/sheets/google"
	sheetsmem "financas/internal/sheets/memory"
	"financas/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger(log.ComponentWorker)

	logger.Info("Starting financas-worker", log.FieldOperation, log.OpStartup)

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// Without a spreadsheet the worker still runs against an in-process
	// mirror, useful for local smoke tests of the pipeline.
	var mirror sheets.Mirror
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.NewClient(context.Background(), cfg)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		mirror = client
		logger.Info("Google Sheets client initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		mirror = sheetsmem.New()
		logger.Info("Google Sheets disabled, using in-process mirror")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, nil)

	backupWorker := worker.NewBackupWorker(repo, mirror, amqpClient, cfg.BackupInterval)
	if err := backupWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker failed", log.FieldError, err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
