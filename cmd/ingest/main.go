package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rewindlabs/rewindq/internal/dbg"
	"github.com/rewindlabs/rewindq/pkg/datasource/duckdb"
	"github.com/rewindlabs/rewindq/pkg/datasource/historical"
)

// ingest converts a duckdb sample table into the binary file format the
// replay reader memory-maps.
func main() {
	logger := dbg.NewDevLogger(zapcore.InfoLevel)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	logger.Info("ingest starting",
		zap.String("database", Database),
		zap.String("output", OutputDataSource))
	defer logger.Info("done")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	reader := duckdb.NewReader(Database)
	if err := reader.Connect(); err != nil {
		logger.Fatal("error connecting to database", zap.Error(err))
	}
	defer func() {
		_ = reader.Close()
	}()

	writer, err := historical.CreateWriter(OutputDataSource)
	if err != nil {
		logger.Fatal("error creating output data source", zap.Error(err))
	}

	if err := reader.LoadSamples(ctx, Symbol, IngestStart, IngestEnd, writer.Append); err != nil {
		_ = writer.Close()
		logger.Fatal("error loading samples", zap.Error(err))
	}

	if err := writer.Close(); err != nil {
		logger.Fatal("error closing output data source", zap.Error(err))
	}

	logger.Info("ingest complete", zap.Int64("samples", writer.Count()))
}
