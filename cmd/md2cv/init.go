package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2cv/internal/fileutil"
)

// runInit writes a built-in sample CV to start editing from.
func runInit(_ context.Context, args []string, env *Environment) error {
	flags, positional, err := parseInitFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: init takes no arguments", ErrUsage)
	}
	if err := checkExtension(flags.output, markdownExtensions...); err != nil {
		return err
	}
	if !flags.force && fileutil.FileExists(flags.output) {
		return fmt.Errorf("%w: %s already exists (use --force to overwrite)", ErrUsage, flags.output)
	}

	sample, err := env.AssetLoader.LoadSample(flags.sample)
	if err != nil {
		return fmt.Errorf("loading sample %q: %w", flags.sample, err)
	}
	if err := writeOutput(flags.output, []byte(sample)); err != nil {
		return err
	}
	fmt.Fprintf(env.Stdout, "wrote %s\n", flags.output)
	return nil
}
