package server

import (
	"github.com/plus3/wordfall/content"
	"github.com/plus3/wordfall/engine"
	"github.com/plus3/wordfall/registry"
	"github.com/samber/lo"
)

type itemView struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Sentinel bool    `json:"sentinel,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Rotation float64 `json:"rotation"`
}

type progressView struct {
	Found     int     `json:"found"`
	Total     int     `json:"total"`
	Remaining int     `json:"remaining"`
	Percent   float64 `json:"percent"`
}

type stateView struct {
	SessionID              string       `json:"sessionId"`
	State                  string       `json:"state"`
	Score                  uint         `json:"score"`
	HighScore              uint         `json:"highScore"`
	Elapsed                uint         `json:"elapsed"`
	List                   string       `json:"list,omitempty"`
	Category               int          `json:"category"`
	CategoryName           string       `json:"categoryName,omitempty"`
	Mode                   string       `json:"mode"`
	Width                  float64      `json:"width"`
	Height                 float64      `json:"height"`
	Items                  []itemView   `json:"items"`
	Progress               progressView `json:"progress"`
	PoolDegenerate         bool         `json:"poolDegenerate,omitempty"`
	MeasurementUnavailable bool         `json:"measurementUnavailable,omitempty"`
}

type listView struct {
	ID         string    `json:"id"`
	Topic      string    `json:"topic,omitempty"`
	Chapter    string    `json:"chapter,omitempty"`
	Categories [2]string `json:"categories"`
	Common     int       `json:"commonWords"`
}

type hitView struct {
	ID      string `json:"id,omitempty"`
	Outcome string `json:"outcome"`
	Score   uint   `json:"score"`
}

// Items never expose IsCorrect; the client has to know the answer.
func newItemView(item registry.FallingItem) itemView {
	return itemView{
		ID:       item.ID.String(),
		Text:     item.Text,
		Sentinel: item.Sentinel,
		X:        item.X,
		Y:        item.Y,
		Width:    item.Width,
		Height:   item.Height,
		Rotation: item.Rotation,
	}
}

func newStateView(snap engine.Snapshot) stateView {
	return stateView{
		SessionID:    snap.SessionID.String(),
		State:        snap.State.String(),
		Score:        snap.Score,
		HighScore:    snap.HighScore,
		Elapsed:      snap.Elapsed,
		List:         snap.SelectedList,
		Category:     snap.Category,
		CategoryName: snap.CategoryName,
		Mode:         modeName(snap.Mode),
		Width:        snap.Playfield.Width,
		Height:       snap.Playfield.Height,
		Items:        lo.Map(snap.Items, func(item registry.FallingItem, _ int) itemView { return newItemView(item) }),
		Progress: progressView{
			Found:     snap.Progress.Found,
			Total:     snap.Progress.Total,
			Remaining: snap.Progress.Remaining(),
			Percent:   snap.Progress.Percent(),
		},
		PoolDegenerate:         snap.PoolDegenerate,
		MeasurementUnavailable: snap.MeasurementUnavailable,
	}
}

func newListView(list content.WordList) listView {
	return listView{
		ID:         list.ID,
		Topic:      list.Topic,
		Chapter:    list.Chapter,
		Categories: list.CategoryNames,
		Common:     len(list.CommonWords),
	}
}

func modeName(m content.Mode) string {
	if m == content.ModeCommon {
		return "common"
	}
	return "category"
}
