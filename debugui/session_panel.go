package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/wordfall/content"
	"github.com/plus3/wordfall/engine"
)

// SessionPanel shows score and state and drives the lifecycle commands.
type SessionPanel struct {
	lastErr string
}

func NewSessionPanel() SessionPanel {
	return SessionPanel{}
}

func (sp *SessionPanel) Render(e *engine.Engine, snap engine.Snapshot) {
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.Text(fmt.Sprintf("State: %s", snap.State))
	imgui.Text(fmt.Sprintf("Session: %s", snap.SessionID))
	imgui.Text(fmt.Sprintf("Score: %d  High: %d  Time: %ds", snap.Score, snap.HighScore, snap.Elapsed))
	imgui.Text(fmt.Sprintf("Found: %d / %d (%.0f%%)", snap.Progress.Found, snap.Progress.Total, snap.Progress.Percent()))
	imgui.Text(fmt.Sprintf("Playfield: %.0f x %.0f", snap.Playfield.Width, snap.Playfield.Height))
	if snap.PoolDegenerate {
		imgui.Text("Pool: sentinel only")
	}
	if snap.MeasurementUnavailable {
		imgui.Text("Text measurement unavailable, using default width")
	}

	imgui.Separator()
	if imgui.Button("Start") {
		sp.record(e.Start())
	}
	imgui.SameLine()
	if imgui.Button("Pause") {
		sp.record(e.Pause())
	}
	imgui.SameLine()
	if imgui.Button("Reset") {
		sp.record(e.Reset())
	}

	if snap.SelectedList != "" {
		common := snap.Mode == content.ModeCommon
		if imgui.Checkbox("Common words", &common) {
			mode := content.ModeCategory
			if common {
				mode = content.ModeCommon
			}
			sp.record(e.SetMode(mode))
		}
	}

	if imgui.TreeNodeStr("Word Lists") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("ListTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("List")
			imgui.TableSetupColumn("Category 0")
			imgui.TableSetupColumn("Category 1")
			imgui.TableHeadersRow()

			for _, list := range e.Catalog().Lists() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(list.ID)

				for category, name := range list.CategoryNames {
					imgui.TableNextColumn()
					selected := snap.SelectedList == list.ID && snap.Category == category
					label := fmt.Sprintf("%s (%d)##%s-%d", name, len(list.CategoryWords[category]), list.ID, category)
					if imgui.SelectableBoolV(label, selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
						sp.record(e.SelectList(list.ID, category))
					}
				}
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if sp.lastErr != "" {
		imgui.Separator()
		imgui.Text(sp.lastErr)
	}

	imgui.End()
}

func (sp *SessionPanel) record(err error) {
	if err != nil {
		sp.lastErr = err.Error()
		return
	}
	sp.lastErr = ""
}
