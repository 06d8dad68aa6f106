package content

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/unicode/norm"
)

//go:generate go tool stringer -type=Mode -trimprefix=Mode

// Mode selects which texts of a list count as correct.
type Mode int

const (
	// ModeCategory scores the words of the active category.
	ModeCategory Mode = iota
	// ModeCommon scores the words both categories share.
	ModeCommon
)

// ParseMode maps a mode name ("category" or "common") to its Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "category", "":
		return ModeCategory, nil
	case "common":
		return ModeCommon, nil
	}
	return 0, fmt.Errorf("content: unknown mode %q", name)
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModeCategory || m == ModeCommon
}

const (
	// IncorrectCategory is the category carried by every incorrect spec.
	IncorrectCategory = "incorrect"
	// SentinelText is shown when no playable pool can be built.
	SentinelText = "select a category to begin"
)

// ErrDegenerateContentPool reports a list/category pair with nothing to score.
var ErrDegenerateContentPool = errors.New("content: list yields no scoreable items")

// Distractors are generic filler phrases mixed into every pool as incorrect items.
var Distractors = []string{
	"none of the above",
	"all of the above",
	"not applicable",
	"cannot be determined",
	"only in winter",
	"made of glass",
}

// ItemSpec describes one spawnable text fragment.
type ItemSpec struct {
	Text      string
	IsCorrect bool
	Category  string
	Sentinel  bool
}

// SentinelSpec returns the placeholder spec used when a pool is degenerate.
// It may be spawned but never changes the score.
func SentinelSpec() ItemSpec {
	return ItemSpec{Text: SentinelText, Sentinel: true}
}

// BuildPool derives the item pool for a list. It never fails: when the list is
// nil, the category is out of range, or no correct text remains, the pool is
// the single sentinel spec.
func BuildPool(list *WordList, category int, mode Mode) []ItemSpec {
	if list == nil || category < 0 || category > 1 {
		return []ItemSpec{SentinelSpec()}
	}

	var correct, incorrect []string
	var label string
	switch mode {
	case ModeCommon:
		correct = list.CommonWords
		incorrect = append(append([]string{}, list.CategoryWords[0]...), list.CategoryWords[1]...)
		label = "common"
	default:
		correct = list.CategoryWords[category]
		incorrect = list.CommonWords
		label = list.CategoryNames[category]
	}

	correct = normalize(correct)
	if len(correct) == 0 {
		return []ItemSpec{SentinelSpec()}
	}

	incorrect = normalize(append(append([]string{}, incorrect...), Distractors...))
	incorrect = lo.Without(incorrect, correct...)

	pool := make([]ItemSpec, 0, len(correct)+len(incorrect))
	pool = append(pool, lo.Map(correct, func(text string, _ int) ItemSpec {
		return ItemSpec{Text: text, IsCorrect: true, Category: label}
	})...)
	pool = append(pool, lo.Map(incorrect, func(text string, _ int) ItemSpec {
		return ItemSpec{Text: text, Category: IncorrectCategory}
	})...)
	return pool
}

// CheckPool returns ErrDegenerateContentPool when the pool is sentinel-only.
func CheckPool(pool []ItemSpec) error {
	if len(CorrectTexts(pool)) == 0 {
		return ErrDegenerateContentPool
	}
	return nil
}

// CorrectTexts returns the distinct texts a player must find to clear the pool.
func CorrectTexts(pool []ItemSpec) []string {
	return lo.Uniq(lo.FilterMap(pool, func(spec ItemSpec, _ int) (string, bool) {
		return spec.Text, spec.IsCorrect && !spec.Sentinel
	}))
}

// normalize trims and NFC-composes texts so that visually equal words compare
// equal, then drops blanks and duplicates.
func normalize(texts []string) []string {
	return lo.Uniq(lo.Compact(lo.Map(texts, func(text string, _ int) string {
		return norm.NFC.String(strings.TrimSpace(text))
	})))
}
