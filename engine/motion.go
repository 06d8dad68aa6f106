package engine

// MotionSystem advances every live item by its speed and rotation step and
// evicts items that fell past the bottom of the playfield. The step is fixed
// per tick and does not scale with elapsed wall time.
type MotionSystem struct{}

func (MotionSystem) Execute(frame *Frame) {
	session, cfg := frame.Session, frame.Config
	floor := session.Playfield.Height

	for item := range session.Registry.All() {
		item.Y += item.Speed
		item.Rotation += cfg.RotationStep

		if floor > 0 && item.Y > floor+item.Height+cfg.EvictMargin {
			frame.Commands.Evict(item.ID)
		}
	}
}
