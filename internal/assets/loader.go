package assets

// AssetLoader defines the contract for loading document parts and templates.
type AssetLoader interface {
	// LoadPart loads an OOXML part by name (without .xml extension).
	// Returns ErrPartNotFound if the part doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadPart(name string) ([]byte, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}
