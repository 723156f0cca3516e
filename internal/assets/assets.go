package assets

// Built-in asset names.
const (
	StyleBase         = "base"
	StyleSingleColumn = "single-column"
	StyleTwoColumn    = "two-column"
	StylePrint        = "print"
	StyleATS          = "ats"
	StylePreview      = "preview"

	TemplateCV      = "cv"
	TemplatePreview = "preview"
	TemplateExport  = "export"

	SampleDefault   = "default"
	SampleJaneSmith = "jane-smith"
	SampleMinimal   = "minimal"
	SampleLong      = "long"
)

// defaultLoader serves the package-level helpers.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in CSS sheet by name.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads a built-in HTML template by name.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

// LoadSample loads a built-in sample CV by name.
func LoadSample(name string) (string, error) {
	return defaultLoader.LoadSample(name)
}

// MustLoadSample is LoadSample for names known to be embedded.
func MustLoadSample(name string) string {
	s, err := LoadSample(name)
	if err != nil {
		panic(err)
	}
	return s
}
