package debugui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/wordfall/engine"
	"github.com/plus3/wordfall/registry"
)

// ItemBrowser lists the live items with sorting, filtering and an inspector
// for the selected one.
type ItemBrowser struct {
	selected      registry.ItemId
	filterText    string
	sortColumn    int
	sortAscending bool
	maxRows       int
}

func NewItemBrowser(maxRows int) ItemBrowser {
	return ItemBrowser{
		sortAscending: true,
		maxRows:       maxRows,
	}
}

func (ib *ItemBrowser) Render(e *engine.Engine, snap engine.Snapshot) {
	if !imgui.BeginV("Items", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	imgui.InputTextWithHint("##search", "Search...", &ib.filterText, imgui.InputTextFlagsNone, nil)
	imgui.SameLine()
	if imgui.Button("Clear Filter") {
		ib.filterText = ""
	}

	items := filterItems(snap.Items, ib.filterText)

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsScrollY
	if imgui.BeginTableV("ItemTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("ID")
		imgui.TableSetupColumn("Text")
		imgui.TableSetupColumn("Kind")
		imgui.TableSetupColumn("Y")
		imgui.TableSetupColumn("Speed")
		imgui.TableHeadersRow()

		sortSpecs := imgui.TableGetSortSpecs()
		if sortSpecs.SpecsDirty() && sortSpecs.SpecsCount() > 0 {
			spec := sortSpecs.Specs()
			ib.sortColumn = int(spec.ColumnIndex())
			ib.sortAscending = spec.SortDirection() == imgui.SortDirectionAscending
			sortSpecs.SetSpecsDirty(false)
		}
		sortItems(items, ib.sortColumn, ib.sortAscending)

		for _, item := range items[:min(len(items), ib.maxRows)] {
			imgui.TableNextRow()

			imgui.TableNextColumn()
			if imgui.SelectableBoolV(item.ID.String(), ib.selected == item.ID, imgui.SelectableFlagsSpanAllColumns, imgui.NewVec2(0, 0)) {
				ib.selected = item.ID
			}

			imgui.TableNextColumn()
			imgui.Text(item.Text)
			imgui.TableNextColumn()
			imgui.Text(itemKind(item))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.1f", item.Y))
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%.2f", item.Speed))
		}

		imgui.EndTable()
	}
	imgui.Text(fmt.Sprintf("Total: %d / %d items", len(items), len(snap.Items)))

	ib.renderInspector(e, snap.Items)
	imgui.End()
}

func (ib *ItemBrowser) renderInspector(e *engine.Engine, items []registry.FallingItem) {
	if ib.selected == 0 {
		return
	}

	idx := sort.Search(len(items), func(i int) bool { return items[i].ID.Seq() >= ib.selected.Seq() })
	if idx == len(items) || items[idx].ID != ib.selected {
		imgui.Separator()
		imgui.Text(fmt.Sprintf("Item %s is gone", ib.selected))
		return
	}
	item := items[idx]

	imgui.Separator()
	if imgui.TreeNodeStr("Inspector") {
		imgui.Text(fmt.Sprintf("ID: %s (seq %d)", item.ID, item.ID.Seq()))
		imgui.Text(fmt.Sprintf("Text: %s", item.Text))
		imgui.Text(fmt.Sprintf("Category: %s", item.Category))
		imgui.Text(fmt.Sprintf("Position: %.1f, %.1f", item.X, item.Y))
		imgui.Text(fmt.Sprintf("Size: %.0f x %.0f", item.Width, item.Height))
		imgui.Text(fmt.Sprintf("Rotation: %.0f", item.Rotation))
		if imgui.Button("Hit") {
			e.HandleHit(item.ID)
		}
		imgui.TreePop()
	}
}

func itemKind(item registry.FallingItem) string {
	switch {
	case item.Sentinel:
		return "sentinel"
	case item.IsCorrect:
		return "correct"
	default:
		return "incorrect"
	}
}

func sortItems(items []registry.FallingItem, column int, ascending bool) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		var less bool

		switch column {
		case 1:
			less = a.Text < b.Text
		case 2:
			less = itemKind(a) < itemKind(b)
		case 3:
			less = a.Y < b.Y
		case 4:
			less = a.Speed < b.Speed
		default:
			less = a.ID.Seq() < b.ID.Seq()
		}

		if !ascending {
			return !less
		}
		return less
	})
}

func filterItems(items []registry.FallingItem, filter string) []registry.FallingItem {
	filtered := make([]registry.FallingItem, 0, len(items))
	filterLower := strings.ToLower(strings.TrimSpace(filter))

	for _, item := range items {
		if filterLower != "" &&
			!strings.Contains(strings.ToLower(item.Text), filterLower) &&
			!strings.Contains(item.ID.String(), filterLower) &&
			itemKind(item) != filterLower {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}
