package common

// EventOpened is emitted by a Session when its USB interface has been claimed
type EventOpened struct{}

// EventClosed is emitted by a Session when it releases the device
type EventClosed struct{}

// EventStepSent is emitted by a Session after each animation step reaches the
// device
type EventStepSent struct {
	Mode uint8
	Step uint8
}
