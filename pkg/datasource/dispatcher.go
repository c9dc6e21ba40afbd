package datasource

import (
	"context"

	"github.com/rewindlabs/rewindq/pkg/bus"
	"github.com/rewindlabs/rewindq/pkg/common"
)

type SampleSource interface {
	GetNext() (common.Sample, error)
}

// CreateSampleDispatcher returns an executor loop that pumps one sample per
// call from the source into the router. The returned function reports the
// source's end-of-stream error, which stops the router's exec loop.
func CreateSampleDispatcher(r *bus.Router, ds SampleSource) func(context.Context) error {
	return func(ctx context.Context) error {
		sample, err := ds.GetNext()
		if err != nil {
			return err
		}
		return r.Post(bus.SampleEvent, sample)
	}
}
