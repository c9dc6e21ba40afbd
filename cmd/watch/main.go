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
	"github.com/rewindlabs/rewindq/pkg/feed"
	"github.com/rewindlabs/rewindq/pkg/middleware"
)

// watch tails a live websocket feed and runs it through the same router and
// monitor the replay uses.
func main() {
	logger := dbg.NewDevLogger(zapcore.InfoLevel)
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	logger.Info("watch starting", zap.String("feed", FeedURL))
	defer logger.Info("done")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client, err := feed.Dial(ctx, FeedURL, logger)
	if err != nil {
		logger.Fatal("error dialing feed", zap.Error(err))
	}
	defer client.Close()

	router := bus.NewRouter(logger, RouterEventCapacity)
	monitor := middleware.NewMonitor(logger, MonitorLogEvery)

	router.SampleHandler = monitor.WithSample(func(common.Sample) error { return nil })

	_, samples := client.Subscribe(SubscriptionBuffer)
	go feed.Pump(ctx, samples, router, logger)

	go router.Exec(ctx)
	defer router.PrintStatistics()
	defer monitor.PrintStatistics()

	select {
	case <-client.Done():
		logger.Warn("feed disconnected")
		cancel()
		<-router.Done()
	case err := <-router.Done():
		if !errors.Is(err, context.Canceled) {
			logger.Error("error during watch", zap.Error(err))
		}
	}
}
