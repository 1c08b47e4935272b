package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Entry describes one exercise found under the source root.
type Entry struct {
	Name       string
	HasSource  bool
	HasShaders bool // both vertex and fragment files present
}

// List returns the exercises under the layout's source root, sorted by name.
// A missing source root yields an empty list.
func List(layout Layout) ([]Entry, error) {
	root := layout.SourceRoot()
	dirEntries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}

	// os.ReadDir returns entries sorted by filename.
	var entries []Entry
	for _, de := range dirEntries {
		if !de.IsDir() {
			continue
		}
		name := de.Name()
		dir := filepath.Join(root, name)
		entries = append(entries, Entry{
			Name:      name,
			HasSource: fileExists(filepath.Join(dir, name+"."+layout.SourceExt)),
			HasShaders: fileExists(filepath.Join(dir, name+"."+layout.VertexExt)) &&
				fileExists(filepath.Join(dir, name+"."+layout.FragmentExt)),
		})
	}
	return entries, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
