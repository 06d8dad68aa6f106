package content_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/plus3/wordfall/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog := content.DefaultCatalog()
	require.Greater(t, catalog.Len(), 0)

	for _, list := range catalog.Lists() {
		t.Run(list.ID, func(t *testing.T) {
			assert.NotEmpty(t, list.CategoryNames[0])
			assert.NotEmpty(t, list.CategoryNames[1])
			for category := range 2 {
				pool := content.BuildPool(&list, category, content.ModeCategory)
				assert.NoError(t, content.CheckPool(pool))
			}
		})
	}

	list, ok := catalog.Lookup("algae-fungi")
	require.True(t, ok)
	assert.Len(t, list.CategoryWords[0], 10)
	assert.Len(t, list.CategoryWords[1], 15)
	assert.Len(t, list.CommonWords, 8)
}

func TestParseCatalogRejectsMalformedLists(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{"lists": [`},
		{"one category", `{"lists":[{"id":"x","categoryNames":["A"],"categoryWords":[["a"]]}]}`},
		{"three categories", `{"lists":[{"id":"x","categoryNames":["A","B","C"],"categoryWords":[["a"],["b"],["c"]]}]}`},
		{"missing id", `{"lists":[{"categoryNames":["A","B"],"categoryWords":[["a"],["b"]]}]}`},
		{"blank name", `{"lists":[{"id":"x","categoryNames":["A"," "],"categoryWords":[["a"],["b"]]}]}`},
		{"duplicate id", `{"lists":[
			{"id":"x","categoryNames":["A","B"],"categoryWords":[["a"],["b"]]},
			{"id":"x","categoryNames":["C","D"],"categoryWords":[["c"],["d"]]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := content.ParseCatalog([]byte(tt.data))
			assert.ErrorIs(t, err, content.ErrInvalidCatalog)
		})
	}
}

func TestParseCatalogDropsBlankWords(t *testing.T) {
	catalog, err := content.ParseCatalog([]byte(`{"lists":[{
		"id":"pets","topic":"t","chapter":"c",
		"categoryNames":["A","B"],
		"categoryWords":[["fish","  "],["cat",""]],
		"commonWords":[""]}]}`))
	require.NoError(t, err)

	list, ok := catalog.Lookup("pets")
	require.True(t, ok)
	assert.Equal(t, []string{"fish"}, list.CategoryWords[0])
	assert.Equal(t, []string{"cat"}, list.CategoryWords[1])
	assert.Empty(t, list.CommonWords)

	_, ok = catalog.Lookup("missing")
	assert.False(t, ok)
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"lists":[{"id":"pets","categoryNames":["A","B"],"categoryWords":[["fish"],["cat"]]}]}`), 0o644))

	catalog, err := content.LoadCatalog(path)
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())

	_, err = content.LoadCatalog(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
