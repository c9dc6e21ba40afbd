package middleware

import (
	"go.uber.org/zap"

	"github.com/rewindlabs/rewindq/pkg/bus"
	"github.com/rewindlabs/rewindq/pkg/common"
	"github.com/rewindlabs/rewindq/pkg/utility/fixed"
)

// Monitor wraps a sample handler and tracks value statistics, logging a
// progress line every logEvery samples. Zero disables progress logging.
type Monitor struct {
	logger   *zap.Logger
	logEvery uint64

	seen uint64
	min  fixed.Point
	max  fixed.Point
	sum  fixed.Point
	last common.Sample
}

func NewMonitor(logger *zap.Logger, logEvery uint64) *Monitor {
	return &Monitor{
		logger:   logger,
		logEvery: logEvery,
	}
}

func (m *Monitor) WithSample(handler bus.SampleEventHandler) bus.SampleEventHandler {
	return func(sample common.Sample) error {
		m.observe(sample)
		return handler(sample)
	}
}

func (m *Monitor) observe(sample common.Sample) {
	if m.seen == 0 {
		m.min = sample.Value
		m.max = sample.Value
		m.sum = sample.Value
	} else {
		if sample.Value.Lt(m.min) {
			m.min = sample.Value
		}
		if sample.Value.Gt(m.max) {
			m.max = sample.Value
		}
		m.sum = m.sum.Add(sample.Value)
	}
	m.seen++
	m.last = sample

	if m.logEvery > 0 && m.seen%m.logEvery == 0 {
		m.logger.Info("replay progress",
			zap.Uint64("samples", m.seen),
			zap.String("symbol", sample.Symbol),
			zap.Time("ts", sample.TimeStamp),
			zap.String("value", sample.Value.String()))
	}
}

func (m *Monitor) PrintStatistics() {
	if m.seen == 0 {
		m.logger.Info("monitor statistics", zap.Uint64("samples", 0))
		return
	}

	mean := m.sum.DivInt(int(m.seen)) // #nosec G115

	m.logger.Info("monitor statistics",
		zap.Uint64("samples", m.seen),
		zap.String("min", m.min.String()),
		zap.String("max", m.max.String()),
		zap.String("mean", mean.String()),
		zap.Time("last_ts", m.last.TimeStamp))
}
