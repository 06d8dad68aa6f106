package engine

// System is one periodic behavior of an active session. Systems may keep
// state in their own fields between ticks. Structural changes to the registry
// go through frame.Commands so iteration is never disturbed.
type System interface {
	Execute(frame *Frame)
}

// Frame is the context handed to a system for a single tick.
type Frame struct {
	Session  *Session
	Config   *Config
	Commands *Commands
}

func newFrame(session *Session, cfg *Config) *Frame {
	return &Frame{
		Session:  session,
		Config:   cfg,
		Commands: newCommands(),
	}
}
