package historical

import (
	"fmt"
	"time"

	"github.com/rewindlabs/rewindq/pkg/common"
	"github.com/rewindlabs/rewindq/pkg/utility"
)

const (
	invalidIndex              = -1
	sampleReaderComponentName = "datasource.historical.reader"
)

// SampleReader streams the records of one symbol's file that fall inside a
// time range. The start index is found by binary search on the first read.
type SampleReader struct {
	source *Source[BinarySample]

	symbol string
	from   int64
	to     int64
	idx    int64
}

func NewSampleReader(source *Source[BinarySample], symbol string, from, to time.Time) *SampleReader {
	return &SampleReader{
		source: source,
		symbol: symbol,
		from:   from.UnixNano(),
		to:     to.UnixNano(),
		idx:    invalidIndex,
	}
}

func (r *SampleReader) GetNext() (common.Sample, error) {

	var sample common.Sample
	var binSample BinarySample

	if r.idx == invalidIndex {
		if err := r.lookupStartIndex(); err != nil {
			return sample, err
		}
	}

	if err := r.source.Read(r.idx, &binSample); err != nil {
		if err == ErrEof {
			return sample, ErrEof
		}
		return sample, fmt.Errorf("error reading entry at index %d: %w", r.idx, err)
	}
	r.idx++

	if binSample.TimeStamp < r.from {
		return sample, fmt.Errorf("timestamp is not from the proposed range")
	}
	if binSample.TimeStamp > r.to {
		return sample, ErrEof
	}

	binSample.ToSample(&sample)

	sample.Source = sampleReaderComponentName
	sample.Symbol = r.symbol
	sample.ExecutionId = utility.GetExecutionID()
	sample.TraceID = utility.CreateTraceID()

	return sample, nil
}

// lookupStartIndex binary-searches for the first record at or after the
// range start. Records are assumed timestamp-sorted, which Writer enforces.
func (r *SampleReader) lookupStartIndex() error {
	entryCount := r.source.EntryCount()
	if entryCount == 0 {
		return ErrEof
	}

	var entry BinarySample

	low := int64(0)
	high := entryCount - 1

	for low <= high {
		mid := (low + high) / 2

		if err := r.source.Read(mid, &entry); err != nil {
			return fmt.Errorf("error reading entry at index %d: %w", mid, err)
		}

		if entry.TimeStamp < r.from {
			low = mid + 1
		} else {
			high = mid - 1
		}
	}

	if low >= entryCount {
		return ErrEof
	}

	r.idx = low
	return nil
}
