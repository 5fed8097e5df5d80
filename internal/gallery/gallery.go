package gallery

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a named asset does not exist in the store.
var ErrNotFound = errors.New("file not found")

// Store keeps uploaded gallery images in a single directory. The directory
// listing is the only index; filenames are generated server-side so
// client-supplied names are never trusted.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// List returns the stored filenames in directory order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("reading upload directory: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Save streams r to disk under a generated collision-free name and returns
// that name. ext is the extension of the original upload, dot included.
func (s *Store) Save(ext string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], strings.ToLower(ext))

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("creating asset file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("writing asset file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing asset file: %w", err)
	}
	return name, nil
}

// Delete removes the named asset. Any directory component in name is
// discarded before resolving, so a traversal path like "../x" can only ever
// refer to a file inside the store.
func (s *Store) Delete(name string) error {
	path := filepath.Join(s.dir, filepath.Base(name))
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrNotFound
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting asset file: %w", err)
	}
	return nil
}

// Dir returns the directory the store serves from.
func (s *Store) Dir() string {
	return s.dir
}
