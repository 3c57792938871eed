package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelkeeper/reelkeeper/internal/cmdutil"
	"github.com/reelkeeper/reelkeeper/internal/omdb"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
	"github.com/reelkeeper/reelkeeper/pkg/storage"
)

// mockApp implements AppContext against a real store in a temp directory.
type mockApp struct {
	store  storage.Storage
	lookup *omdb.Client
	format cmdutil.Format
	title  string
}

func (m *mockApp) Store() (storage.Storage, error) { return m.store, nil }
func (m *mockApp) Lookup() *omdb.Client            { return m.lookup }
func (m *mockApp) Logger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}
func (m *mockApp) Format() cmdutil.Format { return m.format }
func (m *mockApp) NoColor() bool          { return true }
func (m *mockApp) SiteTitle() string      { return m.title }

func newMockApp(t *testing.T, seed ...movies.Movie) *mockApp {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "movies.json"))
	require.NoError(t, err)
	for _, m := range seed {
		require.NoError(t, store.Add(m))
	}
	return &mockApp{
		store:  store,
		lookup: omdb.New(""),
		format: cmdutil.FormatTable,
	}
}

func seedMovies() []movies.Movie {
	return []movies.Movie{
		movies.Movie{Title: "Titanic", Year: "1997"}.Rate(9.0),
		movies.Movie{Title: "The Room", Year: "2003"}.Rate(3.6),
		movies.Movie{Title: "Inception", Year: "2010"}.Rate(8.8),
		{Title: "Backlog Pick"},
	}
}

// run executes a command with stdin and args, returning combined output.
func run(t *testing.T, c *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c.SetIn(strings.NewReader(stdin))
	c.SetOut(&out)
	c.SetErr(&out)
	c.SetArgs(args)
	err := c.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewListCommand(app), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Titanic")
	assert.Contains(t, out, "Backlog Pick")
}

func TestListCommand_Empty(t *testing.T) {
	app := newMockApp(t)

	out, err := run(t, NewListCommand(app), "")
	require.NoError(t, err)
	assert.Contains(t, out, "No movies in database.")
}

func TestAddCommand_Offline(t *testing.T) {
	app := newMockApp(t)

	out, err := run(t, NewAddCommand(app), "",
		"Home Video", "--offline", "--year", "2024", "--rating", "7.5")
	require.NoError(t, err)
	assert.Contains(t, out, "Added: Home Video (2024): 7.5")

	m, err := app.store.Get("Home Video")
	require.NoError(t, err)
	assert.Equal(t, "2024", m.Year)
	require.NotNil(t, m.Rating)
	assert.InDelta(t, 7.5, *m.Rating, 1e-9)
}

func TestAddCommand_OfflineDuplicate(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	_, err := run(t, NewAddCommand(app), "", "Titanic", "--offline")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestAddCommand_Online(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "The Matrix", r.URL.Query().Get("t"))
		w.Write([]byte(`{"Response":"True","Title":"The Matrix","Year":"1999","imdbRating":"8.7","imdbID":"tt0133093","Poster":"N/A"}`))
	}))
	defer server.Close()

	app := newMockApp(t)
	app.lookup = omdb.New("key", omdb.WithBaseURL(server.URL))

	out, err := run(t, NewAddCommand(app), "", "The Matrix")
	require.NoError(t, err)
	assert.Contains(t, out, "Added: The Matrix (1999): 8.7")

	m, err := app.store.Get("The Matrix")
	require.NoError(t, err)
	assert.Equal(t, "tt0133093", m.IMDbID)
	assert.Empty(t, m.Poster)
}

func TestAddCommand_OnlineWithoutKey(t *testing.T) {
	app := newMockApp(t)

	_, err := run(t, NewAddCommand(app), "", "The Matrix")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")
}

func TestDeleteCommand_ExactWithConfirmation(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewDeleteCommand(app), "y\n", "Titanic")
	require.NoError(t, err)
	assert.Contains(t, out, `"Titanic" successfully deleted.`)

	_, err = app.store.Get("Titanic")
	require.Error(t, err)
}

func TestDeleteCommand_Declined(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewDeleteCommand(app), "n\n", "Titanic")
	require.NoError(t, err)
	assert.Contains(t, out, "Deletion cancelled.")

	_, err = app.store.Get("Titanic")
	require.NoError(t, err)
}

func TestDeleteCommand_AmbiguousPickThenConfirm(t *testing.T) {
	app := newMockApp(t,
		movies.Movie{Title: "Alien: Covenant", Year: "2017"},
		movies.Movie{Title: "Alien: Resurrection", Year: "1997"},
	)

	// The pick and the confirmation must read from the same buffered input;
	// the "y" directly follows the chosen index on stdin.
	out, err := run(t, NewDeleteCommand(app), "1\ny\n", "alien")
	require.NoError(t, err)
	assert.Contains(t, out, "Multiple matches:")
	assert.Contains(t, out, "Delete? (y/N): ")
	assert.Contains(t, out, `"Alien: Covenant" successfully deleted.`)

	_, err = app.store.Get("Alien: Covenant")
	require.Error(t, err)
	_, err = app.store.Get("Alien: Resurrection")
	require.NoError(t, err)
}

func TestDeleteCommand_FuzzyPick(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	// Misspelled title falls through to fuzzy matching; pick the first.
	out, err := run(t, NewDeleteCommand(app), "1\n", "titanik", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Fuzzy matches:")
	assert.Contains(t, out, `"Titanic" successfully deleted.`)
}

func TestDeleteCommand_NoMatch(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewDeleteCommand(app), "", "zzzzzz", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching titles found.")
}

func TestUpdateCommand_Rating(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewUpdateCommand(app), "", "Titanic", "--rating", "9.5")
	require.NoError(t, err)
	assert.Contains(t, out, `Rating of "Titanic" set to 9.5.`)

	m, err := app.store.Get("Titanic")
	require.NoError(t, err)
	require.NotNil(t, m.Rating)
	assert.InDelta(t, 9.5, *m.Rating, 1e-9)
}

func TestUpdateCommand_ClearRating(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	_, err := run(t, NewUpdateCommand(app), "", "Titanic", "--clear-rating")
	require.NoError(t, err)

	m, err := app.store.Get("Titanic")
	require.NoError(t, err)
	assert.Nil(t, m.Rating)
}

func TestUpdateCommand_NothingToUpdate(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	_, err := run(t, NewUpdateCommand(app), "", "Titanic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nothing to update")
}

func TestUpdateCommand_ConflictingRatingFlags(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	_, err := run(t, NewUpdateCommand(app), "", "Titanic", "--rating", "5", "--clear-rating")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestStatsCommand(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewStatsCommand(app), "")
	require.NoError(t, err)
	assert.Contains(t, out, "7.1") // average of 9.0, 3.6, 8.8
	assert.Contains(t, out, "Titanic (1997): 9.0")
	assert.Contains(t, out, "The Room (2003): 3.6")
}

func TestStatsCommand_NoRatedMovies(t *testing.T) {
	app := newMockApp(t, movies.Movie{Title: "Backlog Pick"})

	out, err := run(t, NewStatsCommand(app), "")
	require.NoError(t, err)
	assert.Contains(t, out, "No rated movies in database.")
}

func TestRandomCommand(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewRandomCommand(app), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Your movie for tonight: ")
}

func TestSearchCommand(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewSearchCommand(app), "", "titanik")
	require.NoError(t, err)
	assert.Contains(t, out, "Titanic")
}

func TestSearchCommand_NoMatch(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewSearchCommand(app), "", "zzzzzz")
	require.NoError(t, err)
	assert.Contains(t, out, "No matching titles found.")
}

func TestSortCommand_Rating(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewSortCommand(app), "", "rating")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Titanic"), strings.Index(out, "The Room"))
}

func TestSortCommand_YearLatestFirst(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewSortCommand(app), "", "year", "--latest-first")
	require.NoError(t, err)
	assert.Less(t, strings.Index(out, "Inception"), strings.Index(out, "Titanic"))
}

func TestFilterCommand(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewFilterCommand(app), "", "--min-rating", "8", "--from-year", "2000")
	require.NoError(t, err)
	assert.Contains(t, out, "Inception")
	assert.NotContains(t, out, "Titanic")
	assert.NotContains(t, out, "The Room")
}

func TestFilterCommand_NoMatches(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewFilterCommand(app), "", "--min-rating", "9.9")
	require.NoError(t, err)
	assert.Contains(t, out, "No movies match the given criteria.")
}

func TestHistogramCommand(t *testing.T) {
	app := newMockApp(t, seedMovies()...)
	path := filepath.Join(t.TempDir(), "ratings.png")

	out, err := run(t, NewHistogramCommand(app), "", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Histogram saved to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")))
}

func TestWebsiteCommand(t *testing.T) {
	app := newMockApp(t, seedMovies()...)
	app.title = "Film Shelf"
	path := filepath.Join(t.TempDir(), "index.html")

	out, err := run(t, NewWebsiteCommand(app), "", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Website saved to "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Film Shelf")
	assert.Contains(t, string(data), "Titanic")
}

func TestMigrateCommand_CSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movies.csv")
	legacy := "title,rating,year\nTitanic,9.0,1997\n"
	require.NoError(t, os.WriteFile(path, []byte(legacy), 0o644))

	store, err := storage.Open(path)
	require.NoError(t, err)
	app := &mockApp{store: store, lookup: omdb.New(""), format: cmdutil.FormatTable}

	out, err := run(t, NewMigrateCommand(app), "")
	require.NoError(t, err)
	assert.Contains(t, out, "Migrated "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "title,rating,year,poster,notes,imdb_id"))
}

func TestMigrateCommand_JSONIsCurrent(t *testing.T) {
	app := newMockApp(t, seedMovies()...)

	out, err := run(t, NewMigrateCommand(app), "")
	require.NoError(t, err)
	assert.Contains(t, out, "already in the current format")
}

func TestRunMenu_ExitImmediately(t *testing.T) {
	app := newMockApp(t, seedMovies()...)
	var out bytes.Buffer

	err := RunMenu(context.Background(), app, strings.NewReader("0\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Menu:")
	assert.Contains(t, out.String(), "Bye!")
}

func TestRunMenu_ListThenExit(t *testing.T) {
	app := newMockApp(t, seedMovies()...)
	var out bytes.Buffer

	err := RunMenu(context.Background(), app, strings.NewReader("1\n\n0\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "4 movies in total")
	assert.Contains(t, out.String(), "Titanic (1997): 9.0")
}

func TestRunMenu_StatsThenExit(t *testing.T) {
	app := newMockApp(t, seedMovies()...)
	var out bytes.Buffer

	err := RunMenu(context.Background(), app, strings.NewReader("5\n\n0\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Average rating: 7.1")
	assert.Contains(t, out.String(), "Median rating: 8.8")
}

func TestRunMenu_InvalidChoice(t *testing.T) {
	app := newMockApp(t, seedMovies()...)
	var out bytes.Buffer

	err := RunMenu(context.Background(), app, strings.NewReader("42\n\n0\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Invalid choice")
}

func TestRunMenu_EOFExitsCleanly(t *testing.T) {
	app := newMockApp(t, seedMovies()...)
	var out bytes.Buffer

	err := RunMenu(context.Background(), app, strings.NewReader(""), &out)
	require.NoError(t, err)
}
