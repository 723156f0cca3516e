package md2cv

import (
	"errors"

	"github.com/alnah/go-md2cv/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrEmptyInput     = errors.New("HTML content is required")
	ErrRender         = errors.New("CV rendering failed")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrStyleCapture   = errors.New("failed to inline computed styles")
	ErrPoolClosed     = errors.New("converter pool is closed")

	// ErrPreviewNotFound is returned when captured HTML has no CV element.
	ErrPreviewNotFound = pipeline.ErrRootNotFound

	// Input validation errors.
	ErrInvalidPageFormat = errors.New("invalid page format")
	ErrInvalidQuality    = errors.New("invalid quality profile")
	ErrInvalidLayout     = errors.New("invalid layout")

	// Asset loading errors.
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
