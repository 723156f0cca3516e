// Package store persists the editor state between sessions.
package store

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/cv"
	"github.com/alnah/go-md2cv/internal/fileutil"
	"github.com/alnah/go-md2cv/internal/templates"
	"github.com/alnah/go-md2cv/internal/yamlutil"
)

// Version is the snapshot format written by this package.
const Version = 1

// Sentinel errors for state persistence.
var (
	ErrStateRead        = errors.New("failed to read state")
	ErrStateWrite       = errors.New("failed to write state")
	ErrStateParse       = errors.New("failed to parse state")
	ErrUnsupportedState = errors.New("unsupported state version")
)

// Snapshot is the persisted part of an editing session.
type Snapshot struct {
	Version        int       `yaml:"version" json:"version"`
	Markdown       string    `yaml:"markdown" json:"markdown"`
	Layout         cv.Layout `yaml:"layout" json:"layout"`
	TemplateID     string    `yaml:"template" json:"template"`
	DarkMode       bool      `yaml:"darkMode" json:"darkMode"`
	EditorVisible  bool      `yaml:"editorVisible" json:"editorVisible"`
	PreviewVisible bool      `yaml:"previewVisible" json:"previewVisible"`
}

// Default is the state of a first session.
func Default() Snapshot {
	return Snapshot{
		Version:        Version,
		Markdown:       assets.MustLoadSample(assets.SampleDefault),
		Layout:         cv.DefaultLayout,
		TemplateID:     templates.DefaultID,
		EditorVisible:  true,
		PreviewVisible: true,
	}
}

// WithMarkdown returns s with the markdown replaced.
func (s Snapshot) WithMarkdown(markdown string) Snapshot {
	s.Markdown = markdown
	return s
}

// WithLayout returns s with the layout replaced.
func (s Snapshot) WithLayout(layout cv.Layout) Snapshot {
	s.Layout = layout
	return s
}

// WithTemplate returns s with the template id replaced.
func (s Snapshot) WithTemplate(id string) Snapshot {
	s.TemplateID = id
	return s
}

// WithDarkMode returns s with dark mode set.
func (s Snapshot) WithDarkMode(on bool) Snapshot {
	s.DarkMode = on
	return s
}

// normalize repairs fields a hand-edited file may have broken.
func (s Snapshot) normalize() Snapshot {
	if !s.Layout.Valid() {
		s.Layout = cv.DefaultLayout
	}
	if !templates.Builtin().Has(s.TemplateID) {
		s.TemplateID = templates.DefaultID
	}
	s.Version = Version
	return s
}

// Store reads and writes one snapshot file. Methods are safe for
// concurrent use.
type Store struct {
	path string
	mu   sync.Mutex
}

// New returns a store backed by path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (st *Store) Path() string {
	return st.path
}

// Load returns the saved snapshot, or Default when nothing was saved.
func (st *Store) Load() (Snapshot, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := os.ReadFile(st.path) // #nosec G304 -- state path comes from config
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Snapshot{}, fmt.Errorf("%w: %v", ErrStateRead, err)
	}

	var s Snapshot
	if err := yamlutil.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrStateParse, err)
	}
	if s.Version > Version {
		return Snapshot{}, fmt.Errorf("%w: %d (newest known is %d)", ErrUnsupportedState, s.Version, Version)
	}
	return s.normalize(), nil
}

// Save replaces the saved snapshot atomically.
func (st *Store) Save(s Snapshot) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := yamlutil.Marshal(s.normalize())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStateWrite, err)
	}
	if err := fileutil.WriteFileAtomic(st.path, data, 0o600); err != nil {
		return fmt.Errorf("%w: %v", ErrStateWrite, err)
	}
	return nil
}
