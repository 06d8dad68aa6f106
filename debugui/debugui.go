// Package debugui draws Dear ImGui panels over a running engine: session
// controls, a live item browser and scheduler timing.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/wordfall/engine"
)

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Hosts should not forward clicks to the playfield while WantCaptureMouse is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// Overlay owns the panels for one engine.
type Overlay struct {
	engine  *engine.Engine
	session SessionPanel
	items   ItemBrowser
	perf    PerformanceStats
	timer   *FrameTimer
	input   InputState

	// Visible toggles every panel at once.
	Visible bool
}

// NewOverlay creates the panels. historyFrames sizes the frame time graph.
func NewOverlay(e *engine.Engine, historyFrames int) *Overlay {
	return &Overlay{
		engine:  e,
		session: NewSessionPanel(),
		items:   NewItemBrowser(25),
		perf:    NewPerformanceStats(historyFrames),
		timer:   NewFrameTimer(),
		Visible: true,
	}
}

// Render draws every panel from one snapshot. Call it between the backend's
// BeginFrame and EndFrame.
func (o *Overlay) Render() {
	dt := o.timer.GetDeltaTime()

	io := imgui.CurrentIO()
	o.input.WantCaptureMouse = io.WantCaptureMouse()
	o.input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	if !o.Visible {
		return
	}

	snap := o.engine.Snapshot()
	o.session.Render(o.engine, snap)
	o.items.Render(o.engine, snap)
	o.perf.Render(o.engine.Stats(), dt)
}

// Input returns the capture state seen by the last Render.
func (o *Overlay) Input() InputState {
	return o.input
}
