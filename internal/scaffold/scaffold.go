package scaffold

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

var (
	// ErrExists is returned when the exercise directory is already present.
	ErrExists = errors.New("exercise already exists")
	// ErrEmptyName is returned when no exercise name was given.
	ErrEmptyName = errors.New("exercise name is empty")
)

// Layout describes where exercises live and how their files are named.
type Layout struct {
	Root        string // project root, e.g. "."
	SourceDir   string // relative to Root, e.g. "src"
	SourceExt   string // e.g. "cpp"
	VertexExt   string // e.g. "vs"
	FragmentExt string // e.g. "fs"
}

// DefaultLayout returns the layout used by the LearnOpenGL-style projects.
func DefaultLayout(root string) Layout {
	return Layout{
		Root:        root,
		SourceDir:   "src",
		SourceExt:   "cpp",
		VertexExt:   "vs",
		FragmentExt: "fs",
	}
}

// SourceRoot returns <Root>/<SourceDir>.
func (l Layout) SourceRoot() string {
	return filepath.Join(l.Root, l.SourceDir)
}

// Dir returns the directory of the named exercise.
func (l Layout) Dir(name string) string {
	return filepath.Join(l.SourceRoot(), name)
}

// Files returns the file names for an exercise in creation order: source,
// then vertex and fragment shaders when withShaders is set.
func (l Layout) Files(name string, withShaders bool) []string {
	files := []string{name + "." + l.SourceExt}
	if withShaders {
		files = append(files, name+"."+l.VertexExt, name+"."+l.FragmentExt)
	}
	return files
}

// Result holds the outcome of a scaffold run.
type Result struct {
	Name  string
	Dir   string
	Files []string // full paths, in creation order
}

// Scaffolder creates exercise skeletons for a Layout.
type Scaffolder struct {
	Layout Layout
	Logger *slog.Logger
}

// New returns a Scaffolder for layout. A nil logger discards.
func New(layout Layout, logger *slog.Logger) *Scaffolder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scaffolder{Layout: layout, Logger: logger}
}

// Create makes the exercise directory and its empty files. It refuses to
// touch anything when the directory already exists. A failure after the
// directory was made leaves it in place.
func (s *Scaffolder) Create(name string, withShaders bool) (*Result, error) {
	if name == "" {
		return nil, ErrEmptyName
	}

	dir := s.Layout.Dir(name)
	if _, err := os.Lstat(dir); err == nil {
		return nil, fmt.Errorf("%s: %w", dir, ErrExists)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("checking %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating exercise directory: %w", err)
	}
	s.Logger.Debug("created exercise directory", "dir", dir)

	result := &Result{Name: name, Dir: dir}
	for _, file := range s.Layout.Files(name, withShaders) {
		path := filepath.Join(dir, file)
		if err := touch(path); err != nil {
			return result, err
		}
		s.Logger.Debug("created file", "path", path)
		result.Files = append(result.Files, path)
	}

	return result, nil
}

// touch creates an empty file, failing if it already exists.
func touch(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
