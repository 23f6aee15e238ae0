package assets

var defaultLoader = NewEmbeddedLoader()

// LoadPart loads an OOXML part using the default embedded loader.
func LoadPart(name string) ([]byte, error) {
	return defaultLoader.LoadPart(name)
}

// LoadTemplate loads an HTML template using the default embedded loader.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}
