package historical

import (
	"time"

	"github.com/rewindlabs/rewindq/pkg/common"
	"github.com/rewindlabs/rewindq/pkg/utility/fixed"
)

// BinarySample is the fixed-size on-disk record. Files are plain arrays of
// these, written and read on the same architecture.
type BinarySample struct {
	TimeStamp int64 // UnixNano
	Value     float64
	Volume    float64
}

func (b *BinarySample) ToSample(out *common.Sample) {
	out.TimeStamp = time.Unix(0, b.TimeStamp).UTC()
	out.Value = fixed.FromFloat64(b.Value)
	out.Volume = fixed.FromFloat64(b.Volume)
}

func FromSample(sample common.Sample) (BinarySample, error) {
	value, ok := sample.Value.Float64()
	if !ok {
		return BinarySample{}, errValueRange
	}
	volume, ok := sample.Volume.Float64()
	if !ok {
		return BinarySample{}, errValueRange
	}
	return BinarySample{
		TimeStamp: sample.TimeStamp.UnixNano(),
		Value:     value,
		Volume:    volume,
	}, nil
}
