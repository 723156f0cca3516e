package main

import (
	"context"
	"slices"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/config"
)

// runExport writes the PDF for one markdown CV or rendered preview page.
func runExport(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseExportFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}

	input, err := singleInput(positional)
	if err != nil {
		return err
	}
	if err := checkExtension(input, slices.Concat(markdownExtensions, htmlExtensions)...); err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common, env)
	if err != nil {
		return err
	}
	if err := parseTimeout(flags.timeout, cfg); err != nil {
		return err
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	if err := flags.cv.merge(cfg); err != nil {
		return err
	}

	content, err := readInput(input)
	if err != nil {
		return err
	}

	conv, err := env.NewConverter(converterOptions(cfg, newLogger(env.Stderr, flags.common.verbose))...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	output := resolveOutputPath(input, flags.output, ".pdf")
	res, err := exportTo(ctx, conv, cfg, input, content, output, flags.inlineStyles)
	if err != nil {
		return err
	}
	printf(env.Stdout, flags.common.quiet, "%s -> %s (%d page(s), %d bytes)\n",
		input, output, res.PageCount, res.Size)
	return nil
}

// exportTo exports content read from input and writes the PDF to output.
// HTML input is captured; anything else is treated as markdown.
func exportTo(ctx context.Context, conv Converter, cfg *config.Config, input, content, output string, inlineStyles bool) (*md2cv.ExportResult, error) {
	in := exportInput(cfg)
	if isHTMLFile(input) {
		in.HTML = content
		in.InlineStyles = inlineStyles
	} else {
		in.Markdown = content
	}

	res, err := conv.Export(ctx, in)
	if err != nil {
		return nil, err
	}
	if err := writeOutput(output, res.PDF); err != nil {
		return nil, err
	}
	return res, nil
}
