package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/rewindlabs/rewindq/internal/dbg"
	"github.com/rewindlabs/rewindq/pkg/bus"
	"github.com/rewindlabs/rewindq/pkg/common"
	"github.com/rewindlabs/rewindq/pkg/datasource"
	"github.com/rewindlabs/rewindq/pkg/datasource/historical"
	"github.com/rewindlabs/rewindq/pkg/middleware"
)

func main() {
	logger := dbg.NewDevLogger(zapcore.InfoLevel)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	logger.Info("replay starting", zap.String("data_source", DataSource))
	defer logger.Info("done")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	source := historical.NewSource[historical.BinarySample](DataSource)
	if err := source.Open(); err != nil {
		logger.Fatal("error opening sample data source", zap.Error(err))
	}
	defer func() {
		_ = source.Close()
	}()

	reader := historical.NewSampleReader(source, Symbol, ReplayStart, ReplayEnd)

	router := bus.NewRouter(logger, RouterEventCapacity)
	monitor := middleware.NewMonitor(logger, MonitorLogEvery)

	router.SampleHandler = monitor.WithSample(func(common.Sample) error { return nil })

	go router.ExecLoop(ctx, datasource.CreateSampleDispatcher(router, reader))
	defer router.PrintStatistics()
	defer monitor.PrintStatistics()

	if err := <-router.Done(); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, historical.ErrEof) {
			logger.Error("error during replay", zap.Error(err))
		}
	}
}
