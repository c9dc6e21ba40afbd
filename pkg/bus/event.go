package bus

type EventId uint8

const (
	SampleEvent EventId = iota
	EndEvent
)
