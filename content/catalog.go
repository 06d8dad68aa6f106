// Package content turns the static word-list catalog into gameplay item pools.
package content

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/samber/lo"
)

//go:embed catalog.json
var defaultCatalog []byte

// ErrInvalidCatalog wraps every catalog validation failure.
var ErrInvalidCatalog = errors.New("content: invalid catalog")

// WordList is one selectable categorization dataset: two categories plus the
// words both share.
type WordList struct {
	ID            string
	Topic         string
	Chapter       string
	CategoryNames [2]string
	CategoryWords [2][]string
	CommonWords   []string
}

type wordListJSON struct {
	ID            string     `json:"id"`
	Topic         string     `json:"topic"`
	Chapter       string     `json:"chapter"`
	CategoryNames []string   `json:"categoryNames"`
	CategoryWords [][]string `json:"categoryWords"`
	CommonWords   []string   `json:"commonWords"`
}

type catalogJSON struct {
	Lists []wordListJSON `json:"lists"`
}

// Catalog is an ordered, read-only set of word lists.
type Catalog struct {
	lists []WordList
	byID  map[string]int
}

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic("embedded catalog: " + err.Error())
	}
	return c
}

// LoadCatalog reads a JSON catalog from disk.
func LoadCatalog(path string) (*Catalog, error) {
	log.Printf("Loading catalog from %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a JSON catalog. Blank words are dropped.
func ParseCatalog(data []byte) (*Catalog, error) {
	var raw catalogJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	lists := make([]WordList, 0, len(raw.Lists))
	for i, l := range raw.Lists {
		if len(l.CategoryNames) != 2 || len(l.CategoryWords) != 2 {
			return nil, fmt.Errorf("%w: list %d (%q) needs exactly two categories", ErrInvalidCatalog, i, l.ID)
		}
		lists = append(lists, l.toWordList())
	}
	return NewCatalog(lists...)
}

// NewCatalog validates the lists and builds a catalog from them.
func NewCatalog(lists ...WordList) (*Catalog, error) {
	c := &Catalog{
		lists: make([]WordList, 0, len(lists)),
		byID:  make(map[string]int, len(lists)),
	}
	for i, list := range lists {
		if err := list.validate(); err != nil {
			return nil, fmt.Errorf("%w: list %d: %v", ErrInvalidCatalog, i, err)
		}
		if _, dup := c.byID[list.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate list id %q", ErrInvalidCatalog, list.ID)
		}
		list.CategoryWords[0] = dropBlank(list.ID, list.CategoryWords[0])
		list.CategoryWords[1] = dropBlank(list.ID, list.CategoryWords[1])
		list.CommonWords = dropBlank(list.ID, list.CommonWords)

		c.byID[list.ID] = len(c.lists)
		c.lists = append(c.lists, list)
	}
	return c, nil
}

// Lookup returns the list with the given id.
func (c *Catalog) Lookup(id string) (*WordList, bool) {
	idx, ok := c.byID[id]
	if !ok {
		return nil, false
	}
	return &c.lists[idx], true
}

// Lists returns the lists in catalog order.
func (c *Catalog) Lists() []WordList {
	return c.lists
}

// Len returns the number of lists.
func (c *Catalog) Len() int {
	return len(c.lists)
}

func (l wordListJSON) toWordList() WordList {
	wl := WordList{
		ID:          l.ID,
		Topic:       l.Topic,
		Chapter:     l.Chapter,
		CommonWords: l.CommonWords,
	}
	copy(wl.CategoryNames[:], l.CategoryNames)
	copy(wl.CategoryWords[:], l.CategoryWords)
	return wl
}

func (l WordList) validate() error {
	if strings.TrimSpace(l.ID) == "" {
		return errors.New("missing id")
	}
	if strings.TrimSpace(l.CategoryNames[0]) == "" || strings.TrimSpace(l.CategoryNames[1]) == "" {
		return fmt.Errorf("list %q has a blank category name", l.ID)
	}
	return nil
}

func dropBlank(listID string, words []string) []string {
	return lo.Filter(words, func(w string, _ int) bool {
		if strings.TrimSpace(w) == "" {
			log.Printf("Skipping blank word in list %q", listID)
			return false
		}
		return true
	})
}
