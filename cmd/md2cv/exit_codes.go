package main

import (
	"errors"
	"os"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/config"
	"github.com/alnah/go-md2cv/internal/store"
)

// Exit codes for the md2cv CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command succeeded
	ExitGeneral = 1 // General error, or a CV that failed verification
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, md2cv.ErrBrowserConnect) ||
		errors.Is(err, md2cv.ErrPageCreate) ||
		errors.Is(err, md2cv.ErrPageLoad) ||
		errors.Is(err, md2cv.ErrPDFGeneration) ||
		errors.Is(err, md2cv.ErrStyleCapture) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, store.ErrStateRead) ||
		errors.Is(err, store.ErrStateWrite) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2cv.ErrEmptyInput) ||
		errors.Is(err, md2cv.ErrInvalidPageFormat) ||
		errors.Is(err, md2cv.ErrInvalidQuality) ||
		errors.Is(err, md2cv.ErrInvalidLayout) ||
		errors.Is(err, md2cv.ErrInvalidAssetPath) ||
		errors.Is(err, assets.ErrSampleNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, store.ErrUnsupportedState) {
		return ExitUsage
	}

	return ExitGeneral
}
