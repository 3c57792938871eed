package csvfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelkeeper/reelkeeper/pkg/movies"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movies.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWriteAllSurfacesErrors(t *testing.T) {
	// A directory as the backing path makes the rewrite fail at open time.
	s := &Store{path: t.TempDir()}

	err := s.writeAll([]movies.Movie{{Title: "Titanic"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), s.path)
}

func TestWriteAllFlushesBeforeReturning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.Add(movies.Movie{Title: "Titanic", Year: "1997"}))

	// An independent handle must see the row as soon as Add returns.
	fresh, err := New(path)
	require.NoError(t, err)
	m, err := fresh.Get("Titanic")
	require.NoError(t, err)
	assert.Equal(t, "1997", m.Year)
}

func TestNewWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	_, err := New(path)
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title,rating,year,poster,notes,imdb_id", strings.TrimSpace(string(raw)))
}

func TestReadLegacyHeader(t *testing.T) {
	// Files written before the notes and imdb_id columns existed.
	path := writeFile(t, "title,rating,year,poster\nTitanic,8.5,1997,\nBacklog,,N/A,\n")

	store, err := New(path)
	require.NoError(t, err)
	c, err := store.List()
	require.NoError(t, err)
	require.Len(t, c, 2)

	titanic := c["Titanic"]
	require.True(t, titanic.Rated())
	assert.Equal(t, 8.5, *titanic.Rating)
	assert.Empty(t, titanic.Notes)

	assert.False(t, c["Backlog"].Rated())
	assert.Equal(t, "N/A", c["Backlog"].Year)
}

func TestBlankAndMalformedCells(t *testing.T) {
	path := writeFile(t, strings.Join([]string{
		"title,rating,year,poster,notes,imdb_id",
		"Good,7.9,1999,,,",
		"NoRating,N/A,2001,,,",
		"BadRating,noise,2002,,,",
		",9.9,2003,,,", // titleless row is skipped
	}, "\n")+"\n")

	store, err := New(path)
	require.NoError(t, err)
	c, err := store.List()
	require.NoError(t, err)
	require.Len(t, c, 3)

	assert.True(t, c["Good"].Rated())
	assert.False(t, c["NoRating"].Rated(), "N/A degrades to absent rating")
	assert.False(t, c["BadRating"].Rated(), "unparseable rating degrades to absent")
}

func TestMigrate(t *testing.T) {
	t.Run("legacy file is rewritten", func(t *testing.T) {
		path := writeFile(t, "title,rating,year,poster\nTitanic,8.5,1997,\n")
		store, err := New(path)
		require.NoError(t, err)

		changed, err := store.Migrate()
		require.NoError(t, err)
		assert.True(t, changed)

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
		assert.Equal(t, "title,rating,year,poster,notes,imdb_id", lines[0])
		require.Len(t, lines, 2)
		assert.True(t, strings.HasPrefix(lines[1], "Titanic,8.5,1997"))
	})

	t.Run("current file untouched", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "movies.csv")
		store, err := New(path)
		require.NoError(t, err)
		require.NoError(t, store.Add(movies.Movie{Title: "Titanic", Year: "1997"}))

		changed, err := store.Migrate()
		require.NoError(t, err)
		assert.False(t, changed)
	})
}

func TestRatingFormatting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	store, err := New(path)
	require.NoError(t, err)

	rating := 9.0
	require.NoError(t, store.Add(movies.Movie{Title: "Inception", Year: "2010", Rating: &rating}))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	// No trailing zeros noise; 9.0 stores as "9".
	assert.Contains(t, string(raw), "Inception,9,2010")
}

func TestFieldsWithCommasRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movies.csv")
	store, err := New(path)
	require.NoError(t, err)

	m := movies.Movie{Title: "Me, Myself & Irene", Year: "2000", Notes: "silly, but fun"}
	require.NoError(t, store.Add(m))

	reopened, err := New(path)
	require.NoError(t, err)
	got, err := reopened.Get("Me, Myself & Irene")
	require.NoError(t, err)
	assert.Equal(t, m, got)
}
