package main

import (
	"context"
	"fmt"

	"github.com/alnah/go-md2cv/internal/cv"
	"github.com/alnah/go-md2cv/internal/fidelity"
)

// runVerify exports a CV and checks the PDF text against the preview.
func runVerify(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseVerifyFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}

	markdown, source, err := verifySource(flags, positional, env)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(flags.common, env)
	if err != nil {
		return err
	}
	if err := flags.cv.merge(cfg); err != nil {
		return err
	}

	conv, err := env.NewConverter(converterOptions(cfg, newLogger(env.Stderr, flags.common.verbose))...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	page, err := conv.Preview(ctx, previewInput(cfg, markdown, 1))
	if err != nil {
		return err
	}
	in := exportInput(cfg)
	in.Markdown = markdown
	res, err := conv.Export(ctx, in)
	if err != nil {
		return err
	}

	want, err := fidelity.ExtractFromPreview(page)
	if err != nil {
		return err
	}
	got, err := fidelity.ExtractFromPDF(res.PDF)
	if err != nil {
		return err
	}

	result := fidelity.Compare(want, got)
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%s: %s (%s, %d page(s))\n\n", cv.ExtractName(markdown), source, cfg.CV.Quality, res.PageCount)
		fmt.Fprint(env.Stdout, fidelity.Report(result))
	}
	if !result.Acceptable {
		return fmt.Errorf("%w: %s (similarity %.1f%%)", ErrNotAcceptable, source, result.Similarity*100)
	}
	return nil
}

// verifySource returns the markdown to verify and a label for it.
func verifySource(flags *verifyFlags, positional []string, env *Environment) (markdown, source string, err error) {
	if flags.sample != "" {
		if len(positional) > 0 {
			return "", "", fmt.Errorf("%w: --sample and an input file are exclusive", ErrUsage)
		}
		markdown, err = env.AssetLoader.LoadSample(flags.sample)
		if err != nil {
			return "", "", fmt.Errorf("loading sample %q: %w", flags.sample, err)
		}
		return markdown, "sample " + flags.sample, nil
	}

	input, err := singleInput(positional)
	if err != nil {
		return "", "", err
	}
	if err := checkExtension(input, markdownExtensions...); err != nil {
		return "", "", err
	}
	markdown, err = readInput(input)
	if err != nil {
		return "", "", err
	}
	return markdown, input, nil
}
