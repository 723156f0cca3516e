package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  init       Write a starter CV")
	fmt.Fprintln(w, "  render     Render a CV to a preview HTML page")
	fmt.Fprintln(w, "  export     Export a CV to PDF")
	fmt.Fprintln(w, "  watch      Rebuild the preview on every save")
	fmt.Fprintln(w, "  serve      Run the HTTP API")
	fmt.Fprintln(w, "  templates  List available templates")
	fmt.Fprintln(w, "  verify     Check that the PDF carries the preview's content")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2cv help <command>' for details on a specific command.")
}

// printCommonUsage prints flags shared by most commands.
func printCommonUsage(w io.Writer) {
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed output")
}

// printCVUsage prints the look-and-feel flags.
func printCVUsage(w io.Writer, withQuality bool) {
	fmt.Fprintln(w, "CV:")
	fmt.Fprintln(w, "      --template <id>       Template id (see 'md2cv templates')")
	fmt.Fprintln(w, "  -l, --layout <s>          Layout: single-column, two-column")
	fmt.Fprintln(w, "  -f, --format <s>          Page format: A4, \"US Letter\"")
	if withQuality {
		fmt.Fprintln(w, "      --quality <s>         Quality: standard, ats (ats forces single-column)")
	}
}

func printInitUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv init [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write a sample CV to start from.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default cv.md)")
	fmt.Fprintln(w, "      --sample <name>       default, jane-smith, minimal, long")
	fmt.Fprintln(w, "      --force               Overwrite an existing file")
}

func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv render <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render a CV to a standalone preview page.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file (default: input with .html)")
	fmt.Fprintln(w, "      --zoom <f>            Preview zoom factor (default 1)")
	fmt.Fprintln(w)
	printCVUsage(w, false)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printExportUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv export <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export a CV to PDF. Input is markdown (.md, .markdown) or a")
	fmt.Fprintln(w, "previously rendered preview page (.html, .htm).")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom asset directory")
	fmt.Fprintln(w, "      --inline-styles       Inline computed styles of HTML input")
	fmt.Fprintln(w)
	printCVUsage(w, true)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printWatchUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv watch <input.md> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rebuild the preview page whenever the input changes.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <path>       Output HTML file (default: input with .html)")
	fmt.Fprintln(w, "      --debounce <d>        Quiet period before rebuilding (default 300ms)")
	fmt.Fprintln(w, "      --pdf                 Also export a PDF on every rebuild")
	fmt.Fprintln(w)
	printCVUsage(w, true)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the export, preview, template and state API.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default 127.0.0.1:8080)")
	fmt.Fprintln(w, "      --origin <url>        Allowed CORS origin (default *)")
	fmt.Fprintln(w, "      --state <path>        Editor state file")
	fmt.Fprintln(w, "  -t, --timeout <d>         PDF generation timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w, "  -w, --workers <n>         Browser pool size (0 = auto)")
	fmt.Fprintln(w)
	printCommonUsage(w)
}

func printTemplatesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv templates [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List available templates.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -l, --layout <s>          Only list templates for this layout")
}

func printVerifyUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2cv verify [input.md] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Export the CV, then compare the PDF text with the preview.")
	fmt.Fprintln(w, "Exits 1 when the PDF is not an acceptable match.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --sample <name>       Verify a built-in sample instead of a file")
	fmt.Fprintln(w)
	printCVUsage(w, true)
	fmt.Fprintln(w)
	printCommonUsage(w)
}

// printCommandUsage prints usage for cmd, reporting whether it exists.
func printCommandUsage(w io.Writer, cmd string) bool {
	usage, ok := commandUsage[cmd]
	if !ok {
		return false
	}
	usage(w)
	return true
}

var commandUsage = map[string]func(io.Writer){
	"init":      printInitUsage,
	"render":    printRenderUsage,
	"export":    printExportUsage,
	"watch":     printWatchUsage,
	"serve":     printServeUsage,
	"templates": printTemplatesUsage,
	"verify":    printVerifyUsage,
}
