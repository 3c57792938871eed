// Package storage defines the persistence capability set for a movie
// collection and selects a concrete backend from the storage file extension.
// Two interchangeable backends exist: a JSON keyed-object file and a headered
// CSV file. Both hold the same logical collection and round-trip it without
// loss.
package storage

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/reelkeeper/reelkeeper/pkg/errors"
	"github.com/reelkeeper/reelkeeper/pkg/movies"
	"github.com/reelkeeper/reelkeeper/pkg/storage/csvfile"
	"github.com/reelkeeper/reelkeeper/pkg/storage/jsonfile"
)

// Storage is the capability set every backend provides. Title arguments are
// matched case-insensitively against stored canonical titles. Every mutation
// is a full read-modify-write of the backing file; single-process use is
// assumed.
type Storage interface {
	// List returns a snapshot of the whole collection.
	List() (movies.Collection, error)

	// Get returns the movie stored under the given title.
	Get(title string) (movies.Movie, error)

	// Add persists a new movie. Adding a title that already exists fails
	// with ErrAlreadyExists; it never overwrites.
	Add(m movies.Movie) error

	// Delete removes a movie. Fails with ErrNotFound for unknown titles.
	Delete(title string) error

	// UpdateRating replaces the rating of an existing movie. A nil rating
	// clears it. Fails with ErrNotFound for unknown titles.
	UpdateRating(title string, rating *float64) error

	// UpdateNotes replaces the notes of an existing movie. Empty notes
	// clear them. Fails with ErrNotFound for unknown titles.
	UpdateNotes(title, notes string) error

	// Path returns the backing file path.
	Path() string
}

// Migrator is implemented by backends whose file layout can drift behind the
// current schema. Migrate rewrites the file to the current layout and
// reports whether anything changed.
type Migrator interface {
	Migrate() (bool, error)
}

// Open selects a backend by file extension (.json or .csv), creates the
// parent directory if needed, and initializes the backing file when missing.
func Open(path string) (Storage, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errors.WrapIO("create directory for", path, err)
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return jsonfile.New(path)
	case ".csv":
		return csvfile.New(path)
	default:
		return nil, &errors.ConfigError{
			Component: "storage",
			Message:   "unsupported storage file extension (use .json or .csv): " + path,
		}
	}
}
