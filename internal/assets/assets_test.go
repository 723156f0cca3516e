package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEmbeddedLoader_AllBuiltins(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	tests := []struct {
		name string
		load func(string) (string, error)
		ids  []string
	}{
		{
			name: "styles",
			load: loader.LoadStyle,
			ids:  []string{StyleBase, StyleSingleColumn, StyleTwoColumn, StylePrint, StyleATS, StylePreview},
		},
		{
			name: "templates",
			load: loader.LoadTemplate,
			ids:  []string{TemplateCV, TemplatePreview, TemplateExport},
		},
		{
			name: "samples",
			load: loader.LoadSample,
			ids:  []string{SampleDefault, SampleJaneSmith, SampleMinimal, SampleLong},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for _, id := range tt.ids {
				content, err := tt.load(id)
				if err != nil {
					t.Errorf("load(%q): %v", id, err)
					continue
				}
				if strings.TrimSpace(content) == "" {
					t.Errorf("load(%q) returned empty content", id)
				}
			}
		})
	}
}

func TestEmbeddedLoader_NotFound(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	if _, err := loader.LoadStyle("nonexistent"); !errors.Is(err, ErrStyleNotFound) {
		t.Errorf("LoadStyle error = %v, want ErrStyleNotFound", err)
	}
	if _, err := loader.LoadTemplate("nonexistent"); !errors.Is(err, ErrTemplateNotFound) {
		t.Errorf("LoadTemplate error = %v, want ErrTemplateNotFound", err)
	}
	if _, err := loader.LoadSample("nonexistent"); !errors.Is(err, ErrSampleNotFound) {
		t.Errorf("LoadSample error = %v, want ErrSampleNotFound", err)
	}
	if _, err := loader.LoadStyle("../styles/base"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("traversal error = %v, want ErrInvalidAssetName", err)
	}
}

func TestSamples_FollowSourceConvention(t *testing.T) {
	t.Parallel()

	for _, name := range []string{SampleDefault, SampleJaneSmith, SampleMinimal, SampleLong} {
		md := MustLoadSample(name)
		lines := strings.Split(md, "\n")
		if !strings.HasPrefix(lines[0], "# ") {
			t.Errorf("%s: first line %q is not a name heading", name, lines[0])
		}
		if !strings.HasPrefix(lines[1], "**") {
			t.Errorf("%s: second line %q is not a bold title", name, lines[1])
		}
	}
}

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "two-column"},
		{name: "my_style2"},
		{name: "", wantErr: true},
		{name: "a.b", wantErr: true},
		{name: "../base", wantErr: true},
		{name: "dir/base", wantErr: true},
		{name: `dir\base`, wantErr: true},
		{name: "base\x00", wantErr: true},
		{name: strings.Repeat("a", MaxAssetNameLength+1), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateAssetName(tt.name)
			if tt.wantErr != (err != nil) {
				t.Fatalf("ValidateAssetName(%q) = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidAssetName) {
				t.Errorf("error %v is not ErrInvalidAssetName", err)
			}
		})
	}
}

func TestNewFilesystemLoader_Errors(t *testing.T) {
	t.Parallel()

	if _, err := NewFilesystemLoader(""); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("empty path error = %v", err)
	}
	if _, err := NewFilesystemLoader(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("missing dir error = %v", err)
	}

	file := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFilesystemLoader(file); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("file path error = %v", err)
	}
}

func TestAssetResolver_CustomOverridesWithFallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeAsset(t, dir, "styles", "two-column.css", ".two-column-cv { color: red; }")
	writeAsset(t, dir, "samples", "mine.md", "# Me\n**Tester**\n")

	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver: %v", err)
	}
	if !r.HasCustomLoader() {
		t.Fatal("HasCustomLoader() = false")
	}

	got, err := r.LoadStyle(StyleTwoColumn)
	if err != nil || !strings.Contains(got, "color: red") {
		t.Errorf("custom style not used: %q, %v", got, err)
	}

	base, err := r.LoadStyle(StyleBase)
	if err != nil || !strings.Contains(base, ".cv-section-title") {
		t.Errorf("embedded fallback not used: %v", err)
	}

	sample, err := r.LoadSample("mine")
	if err != nil || !strings.HasPrefix(sample, "# Me") {
		t.Errorf("custom sample = %q, %v", sample, err)
	}

	if _, err := r.LoadTemplate("../cv"); !errors.Is(err, ErrInvalidAssetName) {
		t.Errorf("validation error should not fall back, got %v", err)
	}
}

func TestAssetResolver_EmbeddedOnly(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	if err != nil {
		t.Fatal(err)
	}
	if r.HasCustomLoader() {
		t.Error("HasCustomLoader() = true without a path")
	}
	if _, err := r.LoadTemplate(TemplateCV); err != nil {
		t.Errorf("LoadTemplate: %v", err)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	secret := filepath.Join(outside, "secret.css")
	if err := os.WriteFile(secret, []byte("secret"), 0o600); err != nil {
		t.Fatal(err)
	}

	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "styles"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(secret, filepath.Join(base, "styles", "leak.css")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	loader, err := NewFilesystemLoader(base)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := loader.LoadStyle("leak"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("error = %v, want ErrPathTraversal", err)
	}
}

func writeAsset(t *testing.T, base, dir, name, content string) {
	t.Helper()

	full := filepath.Join(base, dir)
	if err := os.MkdirAll(full, 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(full, name), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
