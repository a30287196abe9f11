package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lk16/minithello/internal/solver"
)

// FileStore keeps a table as a flat JSON document mapping keys to values.
// Run metadata is not stored, a loaded Run only has Values.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the JSON document.
func (s *FileStore) Path() string {
	return s.path
}

// Save replaces the document. It is written to a temporary file first, so readers never see a partial table.
func (s *FileStore) Save(_ context.Context, run Run) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("error creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint: errcheck

	if err = json.NewEncoder(tmp).Encode(run.Values); err != nil {
		tmp.Close() //nolint: errcheck
		return fmt.Errorf("error encoding value table: %w", err)
	}

	if err = tmp.Close(); err != nil {
		return fmt.Errorf("error closing temporary file: %w", err)
	}

	if err = os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("error moving value table into place: %w", err)
	}

	return nil
}

// Load reads the document. A missing file is reported as ErrNoRun.
func (s *FileStore) Load(_ context.Context) (Run, error) {
	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Run{}, fmt.Errorf("%w: %s does not exist", ErrNoRun, s.path)
		}
		return Run{}, fmt.Errorf("error opening value table: %w", err)
	}
	defer file.Close()

	values := make(solver.ValueTable)
	if err = json.NewDecoder(file).Decode(&values); err != nil {
		return Run{}, fmt.Errorf("error decoding value table: %w", err)
	}

	return Run{Values: values}, nil
}
