// Package assets provides the CSS sheets, HTML layout templates and sample
// CVs used to render and export CVs.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in assets compiled in with go:embed
//	    ├── FilesystemLoader  - user overrides from a directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// The resolver lets a user restyle one sheet (say two-column.css) while
// every other asset keeps its built-in version.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/{name}.css      base, single-column, two-column, print, ats, preview
//	├── templates/{name}.html  cv, preview, export
//	└── samples/{name}.md      default, jane-smith, minimal, long
//
// # Security
//
// Asset names are validated before they touch a path. FilesystemLoader
// resolves symlinks and verifies every path stays within basePath.
package assets
