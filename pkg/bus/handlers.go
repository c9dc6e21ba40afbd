package bus

import (
	"github.com/rewindlabs/rewindq/pkg/common"
)

type SampleEventHandler func(common.Sample) error
type EndEventHandler func() error

func MergeSampleHandlers(handlers ...SampleEventHandler) SampleEventHandler {
	return func(sample common.Sample) error {
		for _, handler := range handlers {
			if err := handler(sample); err != nil {
				return err
			}
		}
		return nil
	}
}
