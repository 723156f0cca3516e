package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/config"
)

const (
	mockPreviewHTML = "<!DOCTYPE html><html><body>preview</body></html>"
	mockPDF         = "%PDF-1.4 mock"
	testMarkdown    = "# Jane Smith\n## Senior Product Designer\n\n## Experience\nDesigned things.\n"
)

// mockConverter records calls and returns canned output.
type mockConverter struct {
	mu         sync.Mutex
	exports    []md2cv.Input
	previews   []md2cv.PreviewInput
	exportErr  error
	previewErr error
	closed     bool
}

func (m *mockConverter) Export(_ context.Context, in md2cv.Input) (*md2cv.ExportResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.exports = append(m.exports, in)
	if m.exportErr != nil {
		return nil, m.exportErr
	}
	return &md2cv.ExportResult{
		PDF:       []byte(mockPDF),
		Size:      len(mockPDF),
		PageCount: 1,
		Filename:  "cv-standard.pdf",
	}, nil
}

func (m *mockConverter) Preview(_ context.Context, in md2cv.PreviewInput) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.previews = append(m.previews, in)
	if m.previewErr != nil {
		return "", m.previewErr
	}
	return mockPreviewHTML, nil
}

func (m *mockConverter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *mockConverter) lastExport(t *testing.T) md2cv.Input {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.exports) == 0 {
		t.Fatal("Export was not called")
	}
	return m.exports[len(m.exports)-1]
}

func (m *mockConverter) lastPreview(t *testing.T) md2cv.PreviewInput {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.previews) == 0 {
		t.Fatal("Preview was not called")
	}
	return m.previews[len(m.previews)-1]
}

// testEnv bundles an Environment with its captured output.
type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	conv   *mockConverter
}

func newTestEnv(conv *mockConverter) *testEnv {
	if conv == nil {
		conv = &mockConverter{}
	}
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &testEnv{
		Environment: &Environment{
			Now:         func() time.Time { return time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC) },
			Stdout:      stdout,
			Stderr:      stderr,
			AssetLoader: assets.NewEmbeddedLoader(),
			Config:      config.DefaultConfig(),
			NewConverter: func(...md2cv.Option) (Converter, error) {
				return conv, nil
			},
		},
		stdout: stdout,
		stderr: stderr,
		conv:   conv,
	}
}

// run executes md2cv with args and returns the exit code.
func (e *testEnv) run(args ...string) int {
	return runMain(append([]string{"md2cv"}, args...), e.Environment)
}

// writeFile creates name under dir with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
