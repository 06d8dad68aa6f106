package main

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/wordfall/content"
	debugui_ebiten "github.com/plus3/wordfall/debugui/ebiten"
	"github.com/plus3/wordfall/engine"
	"github.com/plus3/wordfall/registry"
)

// The ebitenutil debug font is a fixed 6x16 grid.
const (
	debugGlyphWidth  = 6
	debugGlyphHeight = 16
	itemPadding      = 8
)

var (
	background = color.RGBA{24, 26, 33, 255}
	itemFill   = color.RGBA{70, 110, 180, 255}
	sentinelBg = color.RGBA{90, 90, 90, 255}
	hudFill    = color.RGBA{0, 0, 0, 160}
)

// Game is the desktop host. It reads engine snapshots to draw and turns
// keyboard and mouse input into engine commands.
type Game struct {
	engine *engine.Engine
	imgui  *debugui_ebiten.ImguiBackend
	pixel  *ebiten.Image
	status string
}

func NewGame(e *engine.Engine) *Game {
	pixel := ebiten.NewImage(1, 1)
	pixel.Fill(color.White)
	return &Game{engine: e, pixel: pixel}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var input struct{ mouse, keyboard bool }
	if g.imgui != nil {
		state := g.imgui.Update()
		input.mouse, input.keyboard = state.WantCaptureMouse, state.WantCaptureKeyboard
	}

	if !input.keyboard {
		g.handleKeys()
	}
	if !input.mouse && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.engine.HitAt(float64(x), float64(y))
	}
	return nil
}

func (g *Game) handleKeys() {
	snap := g.engine.Snapshot()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		if snap.State == engine.StateActive {
			g.report(g.engine.Pause())
		} else {
			g.report(g.engine.Start())
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		g.report(g.engine.Reset())
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.report(g.engine.SetCategory(1 - snap.Category))
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		mode := content.ModeCommon
		if snap.Mode == content.ModeCommon {
			mode = content.ModeCategory
		}
		g.report(g.engine.SetMode(mode))
	}

	lists := g.engine.Catalog().Lists()
	for i := range min(len(lists), 9) {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			g.report(g.engine.SelectList(lists[i].ID, snap.Category))
		}
	}
}

func (g *Game) report(err error) {
	if err != nil {
		g.status = err.Error()
		return
	}
	g.status = ""
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	snap := g.engine.Snapshot()
	for _, item := range snap.Items {
		g.drawItem(screen, item)
	}
	g.drawHUD(screen, snap)

	if g.imgui != nil {
		g.imgui.DrawOver(screen)
	}
}

func (g *Game) drawItem(screen *ebiten.Image, item registry.FallingItem) {
	fill := itemFill
	if item.Sentinel {
		fill = sentinelBg
	}

	cx, cy := item.X+item.Width/2, item.Y+item.Height/2

	opts := &ebiten.DrawImageOptions{}
	opts.GeoM.Scale(item.Width, item.Height)
	opts.GeoM.Translate(-item.Width/2, -item.Height/2)
	opts.GeoM.Rotate(item.Rotation * math.Pi / 180)
	opts.GeoM.Translate(cx, cy)
	opts.ColorScale.ScaleWithColor(fill)
	screen.DrawImage(g.pixel, opts)

	label := item.Text
	if maxRunes := int(item.Width-itemPadding) / debugGlyphWidth; len([]rune(label)) > maxRunes && maxRunes > 1 {
		label = string([]rune(label)[:maxRunes-1]) + "~"
	}
	tx := int(cx) - len([]rune(label))*debugGlyphWidth/2
	ty := int(cy) - debugGlyphHeight/2
	ebitenutil.DebugPrintAt(screen, label, tx, ty)
}

func (g *Game) drawHUD(screen *ebiten.Image, snap engine.Snapshot) {
	lines := []string{
		fmt.Sprintf("%s  score %d  best %d  time %ds", snap.State, snap.Score, snap.HighScore, snap.Elapsed),
	}
	if snap.SelectedList != "" {
		lines = append(lines, fmt.Sprintf("list %s  find: %s  (%d/%d found)",
			snap.SelectedList, snap.CategoryName, snap.Progress.Found, snap.Progress.Total))
	}
	if snap.PoolDegenerate {
		lines = append(lines, "nothing to score in this category")
	}
	if g.status != "" {
		lines = append(lines, g.status)
	}
	lines = append(lines, "space start/pause  r reset  tab category  m common words  1-9 list  esc quit")

	vector.DrawFilledRect(screen, 0, 0, float32(screen.Bounds().Dx()), float32(len(lines)*debugGlyphHeight+8), hudFill, false)
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 8, 4)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	g.engine.SetPlayfield(float64(outsideWidth), float64(outsideHeight))
	return outsideWidth, outsideHeight
}
