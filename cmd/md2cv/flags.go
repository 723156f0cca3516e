package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// cvFlags select how the CV looks.
type cvFlags struct {
	template   string
	layout     string
	pageFormat string
	quality    string
}

// renderFlags holds flags for the render command.
type renderFlags struct {
	common commonFlags
	cv     cvFlags
	output string
	zoom   float64
}

// exportFlags holds flags for the export command.
type exportFlags struct {
	common       commonFlags
	cv           cvFlags
	output       string
	timeout      string
	assetPath    string
	inlineStyles bool
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common    commonFlags
	addr      string
	origin    string
	statePath string
	timeout   string
	workers   int
}

// watchFlags holds flags for the watch command.
type watchFlags struct {
	common   commonFlags
	cv       cvFlags
	output   string
	debounce string
	pdf      bool
}

// templatesFlags holds flags for the templates command.
type templatesFlags struct {
	layout string
}

// verifyFlags holds flags for the verify command.
type verifyFlags struct {
	common commonFlags
	cv     cvFlags
	sample string
}

// initFlags holds flags for the init command.
type initFlags struct {
	output string
	sample string
	force  bool
}

// addCommonFlags adds config/quiet/verbose to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed output")
}

// addCVFlags adds look-and-feel flags to a FlagSet.
func addCVFlags(fs *flag.FlagSet, f *cvFlags, withQuality bool) {
	fs.StringVar(&f.template, "template", "", "template id")
	fs.StringVarP(&f.layout, "layout", "l", "", "layout: single-column, two-column")
	fs.StringVarP(&f.pageFormat, "format", "f", "", "page format: A4, \"US Letter\"")
	if withQuality {
		fs.StringVar(&f.quality, "quality", "", "export quality: standard, ats")
	}
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { usage(stderr) }
	return fs
}

func parseRenderFlags(args []string, stderr io.Writer) (*renderFlags, []string, error) {
	fs := newFlagSet("render", stderr, printRenderUsage)
	f := &renderFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output HTML file")
	fs.Float64Var(&f.zoom, "zoom", 1, "preview zoom factor")
	addCommonFlags(fs, &f.common)
	addCVFlags(fs, &f.cv, false)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseExportFlags(args []string, stderr io.Writer) (*exportFlags, []string, error) {
	fs := newFlagSet("export", stderr, printExportUsage)
	f := &exportFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output PDF file or directory")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.inlineStyles, "inline-styles", false, "inline computed styles of HTML input before export")
	addCommonFlags(fs, &f.common)
	addCVFlags(fs, &f.cv, true)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseServeFlags(args []string, stderr io.Writer) (*serveFlags, []string, error) {
	fs := newFlagSet("serve", stderr, printServeUsage)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default 127.0.0.1:8080)")
	fs.StringVar(&f.origin, "origin", "", "allowed CORS origin (default *)")
	fs.StringVar(&f.statePath, "state", "", "editor state file")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "browser pool size (0 = auto)")
	addCommonFlags(fs, &f.common)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseWatchFlags(args []string, stderr io.Writer) (*watchFlags, []string, error) {
	fs := newFlagSet("watch", stderr, printWatchUsage)
	f := &watchFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output HTML file")
	fs.StringVar(&f.debounce, "debounce", "", "quiet period before rebuilding (e.g., 300ms)")
	fs.BoolVar(&f.pdf, "pdf", false, "also export a PDF on every rebuild")
	addCommonFlags(fs, &f.common)
	addCVFlags(fs, &f.cv, true)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseTemplatesFlags(args []string, stderr io.Writer) (*templatesFlags, []string, error) {
	fs := newFlagSet("templates", stderr, printTemplatesUsage)
	f := &templatesFlags{}

	fs.StringVarP(&f.layout, "layout", "l", "", "only list templates for this layout")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseVerifyFlags(args []string, stderr io.Writer) (*verifyFlags, []string, error) {
	fs := newFlagSet("verify", stderr, printVerifyUsage)
	f := &verifyFlags{}

	fs.StringVar(&f.sample, "sample", "", "verify a built-in sample instead of a file")
	addCommonFlags(fs, &f.common)
	addCVFlags(fs, &f.cv, true)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

func parseInitFlags(args []string, stderr io.Writer) (*initFlags, []string, error) {
	fs := newFlagSet("init", stderr, printInitUsage)
	f := &initFlags{}

	fs.StringVarP(&f.output, "output", "o", "cv.md", "output markdown file")
	fs.StringVar(&f.sample, "sample", "default", "sample: default, jane-smith, minimal, long")
	fs.BoolVar(&f.force, "force", false, "overwrite an existing file")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
