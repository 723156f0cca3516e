// Package md2cv turns markdown CVs into styled HTML previews and PDFs
// using headless Chrome.
//
// # Quick Start
//
// Create a converter, export a CV, and close when done:
//
//	conv, err := md2cv.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Export(ctx, md2cv.Input{
//	    Markdown:   content,
//	    PageFormat: md2cv.PageFormatA4,
//	    Quality:    md2cv.QualityStandard,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(result.Filename, result.PDF, 0o644)
//
// # Markdown Conventions
//
// The first "# " heading is the name and the first bold span near the top
// is the professional title. The first image is the headshot; an alt text
// of "circular" makes it round. A "Contact Information" section feeds the
// header contact line. Every "## " heading starts a section; in the
// two-column layout Skills, Education, Certifications and Languages go to
// the sidebar.
//
// # Export Pipeline
//
// An export moves through these stages, reported to WithStageObserver:
//
//  1. capturing: markdown is rendered, or client HTML is sanitized and its
//     CV element selected
//  2. rendering: the print document is loaded in headless Chrome (go-rod)
//     and printed to PDF
//  3. streaming: the page count is read back and the result returned
//
// Any failure ends in the failed stage with a nil result.
//
// # Quality Profiles
//
// QualityStandard keeps the template design with 0.5in margins.
// QualityATS forces a single column, drops backgrounds and uses 0.25in
// margins so applicant tracking systems read the text cleanly.
//
// # Parallel Processing
//
// A Converter owns one browser. For concurrent exports, use ConverterPool:
//
//	pool := md2cv.NewConverterPool(md2cv.ResolvePoolSize(0))
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//	result, err := conv.Export(ctx, input)
//
// # Custom Assets
//
// Override built-in styles, page templates and samples with a directory
// laid out like the embedded one:
//
//	conv, err := md2cv.NewConverter(md2cv.WithAssetPath("/path/to/assets"))
//
//	assets/
//	├── styles/
//	│   └── base.css
//	└── templates/
//	    └── cv.html
//
// Missing files fall back to the embedded versions.
package md2cv
