//go:build integration

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-md2cv/internal/assets"
)

// integrationEnv is DefaultEnv with captured output.
func integrationEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	env := DefaultEnv()
	var stdout, stderr bytes.Buffer
	env.Stdout = &stdout
	env.Stderr = &stderr
	return env, &stdout, &stderr
}

func TestIntegration_VerifySample(t *testing.T) {
	env, stdout, stderr := integrationEnv()

	code := runMain([]string{"md2cv", "verify", "--sample", assets.SampleJaneSmith}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d\nstdout:\n%s\nstderr:\n%s", code, stdout, stderr)
	}
	if !strings.Contains(stdout.String(), "Jane Smith: sample "+assets.SampleJaneSmith) {
		t.Errorf("header should name the CV:\n%s", stdout)
	}
	if !strings.Contains(stdout.String(), "CV Content Comparison Report") {
		t.Errorf("report missing:\n%s", stdout)
	}
}

func TestIntegration_InitRenderExport(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "cv.md")

	env, _, stderr := integrationEnv()
	if code := runMain([]string{"md2cv", "init", "-o", input}, env); code != ExitSuccess {
		t.Fatalf("init: exit code = %d (%s)", code, stderr)
	}
	if code := runMain([]string{"md2cv", "render", input, "-q"}, env); code != ExitSuccess {
		t.Fatalf("render: exit code = %d (%s)", code, stderr)
	}
	if code := runMain([]string{"md2cv", "export", input, "-q"}, env); code != ExitSuccess {
		t.Fatalf("export markdown: exit code = %d (%s)", code, stderr)
	}

	htmlPDF := filepath.Join(dir, "from-html.pdf")
	if code := runMain([]string{"md2cv", "export", filepath.Join(dir, "cv.html"), "-o", htmlPDF, "-q"}, env); code != ExitSuccess {
		t.Fatalf("export html: exit code = %d (%s)", code, stderr)
	}

	for _, path := range []string{filepath.Join(dir, "cv.pdf"), htmlPDF} {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-")) {
			t.Errorf("%s is not a PDF", path)
		}
	}
}
