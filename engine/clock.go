package engine

// ClockSystem counts whole seconds of active play.
type ClockSystem struct{}

func (ClockSystem) Execute(frame *Frame) {
	frame.Session.Elapsed++
}
