package registry_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/plus3/wordfall/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(limit int) *registry.Registry {
	return registry.New(limit, rand.New(rand.NewPCG(1, 2)))
}

func TestItemIdEncoding(t *testing.T) {
	tests := []struct {
		seq    uint32
		suffix uint32
	}{
		{0, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{1, 0},
		{0, 1},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("seq=%d,suffix=%d", tt.seq, tt.suffix), func(t *testing.T) {
			id := registry.NewItemId(tt.seq, tt.suffix)
			assert.Equal(t, tt.seq, id.Seq())
			assert.Equal(t, tt.suffix, id.Suffix())
		})
	}
}

func TestItemIdString(t *testing.T) {
	id := registry.NewItemId(7, 0xBEEF)
	assert.Equal(t, "000000070000beef", id.String())

	parsed, err := registry.ParseItemId(id.String())
	require.NoError(t, err)
	assert.Equal(t, id, parsed)

	_, err = registry.ParseItemId("not-hex")
	assert.Error(t, err)
}

func TestInsertAssignsIncreasingIds(t *testing.T) {
	reg := newTestRegistry(10)

	a, err := reg.Insert(registry.FallingItem{Text: "fish"})
	require.NoError(t, err)
	b, err := reg.Insert(registry.FallingItem{Text: "cat"})
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Less(t, a.Seq(), b.Seq())
	assert.Equal(t, 2, reg.Len())

	item := reg.Get(a)
	require.NotNil(t, item)
	assert.Equal(t, "fish", item.Text)
	assert.Equal(t, a, item.ID)
}

func TestInsertRejectsDuplicateId(t *testing.T) {
	reg := newTestRegistry(10)

	id, err := reg.Insert(registry.FallingItem{Text: "fish"})
	require.NoError(t, err)

	_, err = reg.Insert(registry.FallingItem{ID: id, Text: "again"})
	assert.ErrorIs(t, err, registry.ErrDuplicate)
	assert.Equal(t, 1, reg.Len())
}

func TestConcurrencyCap(t *testing.T) {
	reg := newTestRegistry(10)

	for i := range 10 {
		_, err := reg.Insert(registry.FallingItem{Text: fmt.Sprint(i)})
		require.NoError(t, err)
	}
	assert.True(t, reg.Full())

	_, err := reg.Insert(registry.FallingItem{Text: "overflow"})
	assert.ErrorIs(t, err, registry.ErrFull)
	assert.Equal(t, 10, reg.Len())
}

func TestRemoveIsIdempotent(t *testing.T) {
	reg := newTestRegistry(4)

	id, err := reg.Insert(registry.FallingItem{Text: "fish", IsCorrect: true})
	require.NoError(t, err)

	removed, ok := reg.Remove(id)
	assert.True(t, ok)
	assert.Equal(t, "fish", removed.Text)
	assert.True(t, removed.IsCorrect)

	_, ok = reg.Remove(id)
	assert.False(t, ok, "second removal must not observe the item")
	assert.Nil(t, reg.Get(id))
	assert.False(t, reg.Has(id))
	assert.Equal(t, 0, reg.Len())
}

func TestRemovedSlotIsReused(t *testing.T) {
	reg := newTestRegistry(2)

	a, _ := reg.Insert(registry.FallingItem{Text: "a"})
	_, _ = reg.Insert(registry.FallingItem{Text: "b"})
	reg.Remove(a)

	c, err := reg.Insert(registry.FallingItem{Text: "c"})
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
	assert.False(t, reg.Has(a))

	texts := []string{}
	for _, item := range reg.Snapshot() {
		texts = append(texts, item.Text)
	}
	assert.Equal(t, []string{"b", "c"}, texts)
}

func TestRemoveFunc(t *testing.T) {
	reg := newTestRegistry(10)
	for i := range 6 {
		_, err := reg.Insert(registry.FallingItem{Text: fmt.Sprint(i), Y: float64(i * 100)})
		require.NoError(t, err)
	}

	removed := reg.RemoveFunc(func(item *registry.FallingItem) bool {
		return item.Y > 250
	})

	assert.Len(t, removed, 3)
	assert.Equal(t, 3, reg.Len())
	for _, item := range removed {
		assert.False(t, reg.Has(item.ID))
	}
}

func TestAllAllowsInPlaceMutation(t *testing.T) {
	reg := newTestRegistry(4)
	id, _ := reg.Insert(registry.FallingItem{Text: "fish", Speed: 3})

	for item := range reg.All() {
		item.Y += item.Speed
	}

	assert.Equal(t, 3.0, reg.Get(id).Y)
}

func TestAtPrefersMostRecentSpawn(t *testing.T) {
	reg := newTestRegistry(4)

	older, _ := reg.Insert(registry.FallingItem{Text: "under", X: 0, Y: 0, Width: 100, Height: 40})
	newer, _ := reg.Insert(registry.FallingItem{Text: "over", X: 50, Y: 10, Width: 100, Height: 40})

	id, ok := reg.At(60, 20)
	assert.True(t, ok)
	assert.Equal(t, newer, id)

	id, ok = reg.At(10, 5)
	assert.True(t, ok)
	assert.Equal(t, older, id)

	_, ok = reg.At(500, 500)
	assert.False(t, ok)
}

func TestClearKeepsSequence(t *testing.T) {
	reg := newTestRegistry(4)

	before, _ := reg.Insert(registry.FallingItem{Text: "a"})
	reg.Clear()
	assert.Equal(t, 0, reg.Len())
	assert.False(t, reg.Has(before))

	after, _ := reg.Insert(registry.FallingItem{Text: "b"})
	assert.Greater(t, after.Seq(), before.Seq())
}

func TestCompactPreservesLookup(t *testing.T) {
	reg := newTestRegistry(200)

	ids := make([]registry.ItemId, 0, 150)
	for i := range 150 {
		id, err := reg.Insert(registry.FallingItem{Text: fmt.Sprint(i)})
		require.NoError(t, err)
		ids = append(ids, id)
	}
	for i, id := range ids {
		if i%3 != 0 {
			reg.Remove(id)
		}
	}

	reg.Compact()

	assert.Equal(t, 50, reg.Len())
	for i, id := range ids {
		if i%3 == 0 {
			item := reg.Get(id)
			require.NotNil(t, item, "item %d lost after compact", i)
			assert.Equal(t, fmt.Sprint(i), item.Text)
		} else {
			assert.False(t, reg.Has(id))
		}
	}
}

func TestFallingItemContains(t *testing.T) {
	item := registry.FallingItem{X: 10, Y: 20, Width: 100, Height: 40}

	assert.True(t, item.Contains(10, 20))
	assert.True(t, item.Contains(110, 60))
	assert.False(t, item.Contains(9, 30))
	assert.False(t, item.Contains(50, 61))
}
