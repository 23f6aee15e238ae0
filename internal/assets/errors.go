package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrPartNotFound indicates the requested package part does not exist.
	ErrPartNotFound = errors.New("document part not found")

	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrInvalidAssetName indicates the asset name contains invalid characters
	// such as path separators or traversal sequences.
	ErrInvalidAssetName = errors.New("invalid asset name")
)
