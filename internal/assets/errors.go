package assets

import "errors"

var (
	// ErrStyleNotFound is returned when no stylesheet exists for a name.
	ErrStyleNotFound = errors.New("style not found")
	// ErrTemplateNotFound is returned when no HTML shell exists for a name.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrSampleNotFound is returned for an unknown sample CV.
	ErrSampleNotFound = errors.New("sample not found")
	// ErrInvalidAssetName rejects names with separators or "..".
	ErrInvalidAssetName = errors.New("invalid asset name")
	// ErrInvalidBasePath means the asset directory is missing or a file.
	ErrInvalidBasePath = errors.New("invalid base path")
	ErrAssetRead       = errors.New("failed to read asset")
	// ErrPathTraversal means a resolved path escaped the asset directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
