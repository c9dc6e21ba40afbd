package historical

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"unsafe"

	"golang.org/x/exp/mmap"
)

var (
	ErrEof        = errors.New("EOF")
	errValueRange = errors.New("value not representable as float64")
)

// Source is a memory-mapped array of fixed-size T records. Entries are read
// by index; the record layout is whatever the Go compiler gives T on this
// architecture, matching what Writer produced.
type Source[T any] struct {
	dataSourceName string
	entrySize      int64

	reader     *mmap.ReaderAt
	bufferPool *sync.Pool
}

func NewSource[T any](dataSourceName string) *Source[T] {
	entrySize := int64(unsafe.Sizeof(*new(T)))
	return &Source[T]{
		dataSourceName: dataSourceName,
		entrySize:      entrySize,
		bufferPool: &sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, entrySize)
				return &buffer
			},
		},
	}
}

func (s *Source[T]) Open() error {
	var err error
	s.reader, err = mmap.Open(s.dataSourceName)
	if err != nil {
		return fmt.Errorf("unable to open data source %q: %w", s.dataSourceName, err)
	}
	if int64(s.reader.Len())%s.entrySize != 0 {
		_ = s.reader.Close()
		s.reader = nil
		return fmt.Errorf("data source %q size is not a multiple of the entry size", s.dataSourceName)
	}
	return nil
}

func (s *Source[T]) Close() error {
	if s.reader == nil {
		return nil
	}
	err := s.reader.Close()
	s.reader = nil
	return err
}

func (s *Source[T]) Read(index int64, data *T) error {
	buffer := s.bufferPool.Get().(*[]byte)
	defer s.bufferPool.Put(buffer)

	n, err := s.reader.ReadAt(*buffer, index*s.entrySize)
	if err != nil && err != io.EOF {
		return fmt.Errorf("unable to read entry %d: %w", index, err)
	}
	if int64(n) < s.entrySize {
		return ErrEof
	}

	*data = *(*T)(unsafe.Pointer(&(*buffer)[0])) // #nosec G103
	return nil
}

func (s *Source[T]) EntryCount() int64 {
	if s.reader == nil {
		return 0
	}
	return int64(s.reader.Len()) / s.entrySize
}
