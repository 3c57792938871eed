package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/reelkeeper/reelkeeper/pkg/errors"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
)

func TestNewCreatesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	store, err := New(path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(raw))

	c, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, c)
}

func TestNewRejectsCorruptFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", "{not json"},
		{"array root", `["Titanic"]`},
		{"scalar root", `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "movies.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := New(path)
			require.Error(t, err)

			var parseErr *pkgerrors.ParseError
			assert.ErrorAs(t, err, &parseErr)
		})
	}
}

func TestListToleratesMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	content := `{
  "Old Entry": {"year": "1997", "rating": 8.5},
  "Bare Entry": {}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store, err := New(path)
	require.NoError(t, err)
	c, err := store.List()
	require.NoError(t, err)
	require.Len(t, c, 2)

	// Records predating the poster/notes/imdb_id fields load with those absent.
	old := c["Old Entry"]
	assert.Equal(t, "1997", old.Year)
	require.True(t, old.Rated())
	assert.Equal(t, 8.5, *old.Rating)
	assert.Empty(t, old.Poster)

	bare := c["Bare Entry"]
	assert.False(t, bare.Rated())
	assert.Empty(t, bare.Year)
}

func TestFileKeepsNullRating(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.json")
	store, err := New(path)
	require.NoError(t, err)

	require.NoError(t, store.Add(movies.Movie{Title: "Backlog"}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rating": null`)
}
