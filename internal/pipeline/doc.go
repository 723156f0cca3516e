// Package pipeline renders an extracted CV into styled HTML.
//
// The stages are:
//   - Markdown to HTML via Goldmark, with an AST pass that assigns the CV
//     element roles, drops inline images and suppresses duplicate names
//   - Layout rendering of the header block and the single- or two-column
//     body through an HTML template
//   - CSS bundling of base, layout and template variables, either as custom
//     properties for the preview or resolved to literal values for export
//   - Page shells: the interactive preview page and the print document
//
// PDF generation is handled separately by the root md2cv package using
// headless Chrome (go-rod). Both the preview and the export consume the
// same Fragment, so the two paths cannot drift apart.
package pipeline
