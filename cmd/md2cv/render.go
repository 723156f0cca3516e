package main

import (
	"context"
	"fmt"
)

// Preview zoom bounds, matching the server's validation.
const (
	minZoom = 0
	maxZoom = 4
)

// runRender writes the preview page for one markdown CV.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if flags.zoom <= minZoom || flags.zoom > maxZoom {
		return fmt.Errorf("%w: zoom must be in (%d, %d], got %g", ErrUsage, minZoom, maxZoom, flags.zoom)
	}

	input, err := singleInput(positional)
	if err != nil {
		return err
	}
	if err := checkExtension(input, markdownExtensions...); err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common, env)
	if err != nil {
		return err
	}
	if err := flags.cv.merge(cfg); err != nil {
		return err
	}

	markdown, err := readInput(input)
	if err != nil {
		return err
	}

	conv, err := env.NewConverter(converterOptions(cfg, newLogger(env.Stderr, flags.common.verbose))...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	page, err := conv.Preview(ctx, previewInput(cfg, markdown, flags.zoom))
	if err != nil {
		return err
	}

	output := resolveOutputPath(input, flags.output, ".html")
	if err := writeOutput(output, []byte(page)); err != nil {
		return err
	}
	printf(env.Stdout, flags.common.quiet, "%s -> %s\n", input, output)
	return nil
}
