package historical

import (
	"bufio"
	"fmt"
	"os"
	"unsafe"

	"github.com/rewindlabs/rewindq/pkg/common"
)

// Writer appends fixed-size records to a sample file in timestamp order, the
// layout Source expects.
type Writer struct {
	file *os.File
	buf  *bufio.Writer

	lastTimeStamp int64
	count         int64
}

func CreateWriter(dataSourceName string) (*Writer, error) {
	file, err := os.Create(dataSourceName) // #nosec G304
	if err != nil {
		return nil, fmt.Errorf("unable to create data source %q: %w", dataSourceName, err)
	}
	return &Writer{
		file: file,
		buf:  bufio.NewWriter(file),
	}, nil
}

func (w *Writer) Append(sample common.Sample) error {
	binSample, err := FromSample(sample)
	if err != nil {
		return err
	}
	if w.count > 0 && binSample.TimeStamp < w.lastTimeStamp {
		return fmt.Errorf("sample at %d is older than the previous record", binSample.TimeStamp)
	}

	raw := unsafe.Slice((*byte)(unsafe.Pointer(&binSample)), unsafe.Sizeof(binSample)) // #nosec G103
	if _, err := w.buf.Write(raw); err != nil {
		return fmt.Errorf("unable to write entry %d: %w", w.count, err)
	}

	w.lastTimeStamp = binSample.TimeStamp
	w.count++
	return nil
}

func (w *Writer) Count() int64 {
	return w.count
}

func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		_ = w.file.Close()
		return fmt.Errorf("unable to flush data source: %w", err)
	}
	return w.file.Close()
}
