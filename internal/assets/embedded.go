package assets

import (
	"embed"
	"fmt"
)

//go:embed parts/*
var parts embed.FS

//go:embed templates/*
var templates embed.FS

// PartStyles is word/styles.xml, laid over the base package's styles.
const PartStyles = "styles"

// TemplateDocument is the HTML page used for PDF output.
const TemplateDocument = "document"

// EmbeddedLoader loads assets from the embedded filesystem.
type EmbeddedLoader struct{}

// NewEmbeddedLoader creates an EmbeddedLoader.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

// LoadPart loads an OOXML part by name.
func (e *EmbeddedLoader) LoadPart(name string) ([]byte, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}

	content, err := parts.ReadFile("parts/" + name + ".xml")
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrPartNotFound, name)
	}

	return content, nil
}

// LoadTemplate loads an HTML template by name.
func (e *EmbeddedLoader) LoadTemplate(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := templates.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrTemplateNotFound, name)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ AssetLoader = (*EmbeddedLoader)(nil)
