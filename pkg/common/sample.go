package common

import (
	"time"

	"github.com/rewindlabs/rewindq/pkg/utility"
	"github.com/rewindlabs/rewindq/pkg/utility/fixed"
)

// Sample is one timestamped observation of a series. It is the element type
// every pipeline component buffers, replays and dispatches.
type Sample struct {
	Value  fixed.Point `json:"value"`
	Volume fixed.Point `json:"volume,omitempty"`

	Source      string              `json:"src,omitempty"`
	Symbol      string              `json:"symbol,omitempty"`
	ExecutionId utility.ExecutionID `json:"eid,omitempty"`
	TraceID     utility.TraceID     `json:"tid,omitempty"`
	TimeStamp   time.Time           `json:"ts"`
}
