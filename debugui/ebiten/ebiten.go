// Package ebiten hosts the debug overlay on the Ebiten game engine.
package ebiten

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/wordfall/debugui"
)

// ImguiBackend wraps the Ebiten-specific Dear ImGui backend and the overlay
// it renders.
type ImguiBackend struct {
	*ebitenbackend.EbitenBackend
	Overlay *debugui.Overlay
}

// NewImguiBackend creates the backend and its window. imgui.ini is disabled.
func NewImguiBackend(title string, width, height int, overlay *debugui.Overlay) *ImguiBackend {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")

	return &ImguiBackend{
		EbitenBackend: backend,
		Overlay:       overlay,
	}
}

// Update runs one ImGui frame of the overlay. Call it from the game's Update.
func (b *ImguiBackend) Update() debugui.InputState {
	b.BeginFrame()
	b.Overlay.Render()
	b.EndFrame()
	return b.Overlay.Input()
}

// DrawOver paints the overlay on top of the already drawn screen.
func (b *ImguiBackend) DrawOver(screen *ebiten.Image) {
	b.Draw(screen)
}
