package feed

import (
	"context"

	"go.uber.org/zap"

	"github.com/rewindlabs/rewindq/pkg/bus"
	"github.com/rewindlabs/rewindq/pkg/common"
)

// Pump forwards samples from a subscription channel into the router until
// the channel closes or ctx is cancelled. A full router queue drops the
// sample; live feeds favor freshness over completeness.
func Pump(ctx context.Context, samples <-chan common.Sample, r *bus.Router, logger *zap.Logger) {
	for {
		select {
		case <-ctx.Done():
			return
		case sample, ok := <-samples:
			if !ok {
				return
			}
			if err := r.Post(bus.SampleEvent, sample); err != nil {
				logger.Warn("sample dropped",
					zap.String("symbol", sample.Symbol),
					zap.Error(err))
			}
		}
	}
}
