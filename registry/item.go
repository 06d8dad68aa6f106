package registry

// FallingItem is one spawned, positioned, scoreable text fragment.
type FallingItem struct {
	ID        ItemId
	Text      string
	IsCorrect bool
	Sentinel  bool
	Category  string

	X, Y          float64
	Width, Height float64
	Speed         float64
	Rotation      float64
}

// Contains reports whether the point lies inside the item's axis-aligned bounds.
// Rotation is cosmetic and ignored for hit testing.
func (f *FallingItem) Contains(x, y float64) bool {
	return x >= f.X && x <= f.X+f.Width && y >= f.Y && y <= f.Y+f.Height
}

// Scoreable reports whether a hit on this item may change the score.
func (f *FallingItem) Scoreable() bool {
	return !f.Sentinel
}
