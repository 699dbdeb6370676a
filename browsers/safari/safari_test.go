package safari

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"howett.net/plist"

	"github.com/matthewpickle/bmsync"
)

func leaf(title, url string) map[string]any {
	return map[string]any{
		keyType:    typeLeaf,
		keyURL:     url,
		keyURIDict: map[string]any{"title": title},
	}
}

func writePlist(t *testing.T, root map[string]any) string {
	t.Helper()

	data, err := plist.Marshal(root, plist.XMLFormat)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "Bookmarks.plist")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func testTree() map[string]any {
	return map[string]any{
		keyType: typeList,
		keyChildren: []any{
			map[string]any{
				keyTitle: "BookmarksBar",
				keyType:  typeList,
				keyChildren: []any{
					leaf("Example", "http://example.com"),
					map[string]any{
						keyTitle: "Nested",
						keyType:  typeList,
						keyChildren: []any{
							leaf("Deep", "http://deep.example.com"),
						},
					},
				},
			},
			leaf("Root level", "http://root.example.com"),
		},
	}
}

func TestSafariRead(t *testing.T) {
	sf := &Safari{&SafariConfig{BookmarkFile: writePlist(t, testTree())}}

	marks, err := sf.Read()
	require.NoError(t, err)

	want := []bmsync.Bookmark{
		{Title: "Example", URL: "http://example.com", Origin: bmsync.OriginSafari},
		{Title: "Deep", URL: "http://deep.example.com", Origin: bmsync.OriginSafari},
		{Title: "Root level", URL: "http://root.example.com", Origin: bmsync.OriginSafari},
	}
	assert.Equal(t, want, marks)
}

func TestSafariReadEdgeCases(t *testing.T) {
	t.Run("title falls back to url", func(t *testing.T) {
		tree := map[string]any{
			keyType: typeList,
			keyChildren: []any{
				map[string]any{keyType: typeLeaf, keyURL: "http://untitled.com"},
			},
		}
		sf := &Safari{&SafariConfig{BookmarkFile: writePlist(t, tree)}}

		marks, err := sf.Read()
		require.NoError(t, err)
		require.Len(t, marks, 1)
		assert.Equal(t, "http://untitled.com", marks[0].Title)
	})

	t.Run("leaves without url are dropped", func(t *testing.T) {
		tree := map[string]any{
			keyType: typeList,
			keyChildren: []any{
				map[string]any{keyType: typeLeaf, keyURIDict: map[string]any{"title": "ghost"}},
				leaf("Real", "http://real.com"),
			},
		}
		sf := &Safari{&SafariConfig{BookmarkFile: writePlist(t, tree)}}

		marks, err := sf.Read()
		require.NoError(t, err)
		require.Len(t, marks, 1)
		assert.Equal(t, "http://real.com", marks[0].URL)
	})

	t.Run("missing file", func(t *testing.T) {
		sf := &Safari{&SafariConfig{
			BookmarkFile: filepath.Join(t.TempDir(), "nope", "Bookmarks.plist"),
		}}
		_, err := sf.Read()
		assert.Error(t, err)
	})
}

func TestSafariAppendFolder(t *testing.T) {
	path := writePlist(t, testTree())
	sf := &Safari{&SafariConfig{BookmarkFile: path}}

	merged := []bmsync.Bookmark{
		{Title: "Example", URL: "http://example.com"},
		{Title: "From chrome", URL: "http://chrome-only.com"},
	}

	require.NoError(t, sf.AppendFolder("Synced", merged))

	// pre-existing content survives and the new folder's leaves show up
	marks, err := sf.Read()
	require.NoError(t, err)
	var urls []string
	for _, m := range marks {
		urls = append(urls, m.URL)
	}
	assert.Contains(t, urls, "http://deep.example.com")
	assert.Contains(t, urls, "http://chrome-only.com")

	t.Run("second append replaces the folder", func(t *testing.T) {
		require.NoError(t, sf.AppendFolder("Synced", merged))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		root := make(map[string]any)
		_, err = plist.Unmarshal(data, &root)
		require.NoError(t, err)

		count := 0
		for _, child := range root[keyChildren].([]any) {
			if node, ok := child.(map[string]any); ok && node[keyTitle] == "Synced" {
				count++
			}
		}
		assert.Equal(t, 1, count)
	})
}
