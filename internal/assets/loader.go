package assets

// AssetLoader defines the contract for loading styles, templates and samples.
type AssetLoader interface {
	// LoadStyle loads a CSS sheet by name (without .css extension).
	// Returns ErrStyleNotFound if the sheet doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadStyle(name string) (string, error)

	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	LoadTemplate(name string) (string, error)

	// LoadSample loads a markdown CV by name (without .md extension).
	// Returns ErrSampleNotFound if the sample doesn't exist.
	LoadSample(name string) (string, error)
}

// kind describes one asset family: its directory, extension and the error
// reported when a name is missing.
type kind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = kind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = kind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
	sampleKind   = kind{dir: "samples", ext: ".md", notFound: ErrSampleNotFound}
)
