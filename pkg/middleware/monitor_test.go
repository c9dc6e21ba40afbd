package middleware

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/rewindlabs/rewindq/pkg/common"
	"github.com/rewindlabs/rewindq/pkg/utility/fixed"
)

func TestMonitor_WithSample(t *testing.T) {
	m := NewMonitor(zap.NewNop(), 0)

	var handled int
	h := m.WithSample(func(sample common.Sample) error {
		handled++
		return nil
	})

	for _, v := range []float64{2, -1, 5, 3} {
		if err := h(common.Sample{Value: fixed.FromFloat64(v)}); err != nil {
			t.Fatalf("handler failed: %v", err)
		}
	}

	if handled != 4 {
		t.Errorf("handled: got %d, want 4", handled)
	}
	if m.seen != 4 {
		t.Errorf("seen: got %d, want 4", m.seen)
	}
	if !m.min.Eq(fixed.FromFloat64(-1)) {
		t.Errorf("min: got %s, want -1", m.min)
	}
	if !m.max.Eq(fixed.FromFloat64(5)) {
		t.Errorf("max: got %s, want 5", m.max)
	}
	if !m.sum.Eq(fixed.FromFloat64(9)) {
		t.Errorf("sum: got %s, want 9", m.sum)
	}
}

func TestMonitor_PropagatesHandlerError(t *testing.T) {
	m := NewMonitor(zap.NewNop(), 0)

	h := m.WithSample(func(sample common.Sample) error {
		return errors.New("boom")
	})

	if err := h(common.Sample{Value: fixed.One}); err == nil {
		t.Error("expected handler error to propagate")
	}
	// Observation still counts the sample.
	if m.seen != 1 {
		t.Errorf("seen: got %d, want 1", m.seen)
	}
}
