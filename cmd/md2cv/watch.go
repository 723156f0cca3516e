package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/alnah/go-md2cv/internal/config"
	"github.com/alnah/go-md2cv/internal/debounce"
)

// runWatch rebuilds the preview page (and optionally the PDF) each time
// the markdown file changes, until interrupted.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseWatchFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
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
	if flags.debounce != "" {
		cfg.Watch.Debounce = flags.debounce
	}
	if err := flags.cv.merge(cfg); err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.verbose)
	conv, err := env.NewConverter(converterOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	defer func() { _ = conv.Close() }()

	htmlOut := resolveOutputPath(input, flags.output, ".html")
	b := &watchBuilder{
		conv:    conv,
		cfg:     cfg,
		input:   input,
		htmlOut: htmlOut,
		stdout:  env.Stdout,
		stderr:  env.Stderr,
		quiet:   flags.common.quiet,
	}
	if flags.pdf {
		b.pdfOut = strings.TrimSuffix(htmlOut, filepath.Ext(htmlOut)) + ".pdf"
	}

	// A failing first build aborts the watch.
	if err := b.build(ctx); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory: saves may replace the file by rename.
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("watching %s: %w", input, err)
	}

	d := debounce.New(cfg.WatchDebounce())
	defer d.Stop()

	printf(env.Stdout, flags.common.quiet, "watching %s (Ctrl+C to stop)\n", input)
	logger.Debug("watch started", slog.String("input", input), slog.Duration("debounce", cfg.WatchDebounce()))

	return watchLoop(ctx, watcher.Events, watcher.Errors, input, d, func() { b.rebuild(ctx) }, func(err error) {
		fmt.Fprintf(env.Stderr, "warning: watcher: %v\n", err)
	})
}

// watchLoop debounces write and create events on target into rebuild
// calls. It returns when ctx is done or the event channel closes; a
// closed channel first runs any rebuild still waiting out the delay.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, target string, d *debounce.Debouncer, rebuild func(), onError func(error)) error {
	target = filepath.Clean(target)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				d.Flush()
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				d.Trigger(rebuild)
			}
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			onError(err)
		}
	}
}

// watchBuilder regenerates outputs for one input. Builds are serialized.
type watchBuilder struct {
	conv    Converter
	cfg     *config.Config
	input   string
	htmlOut string
	pdfOut  string // empty = preview only
	stdout  io.Writer
	stderr  io.Writer
	quiet   bool

	mu sync.Mutex
}

// build writes the preview page, then the PDF when enabled.
func (b *watchBuilder) build(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	start := time.Now()
	markdown, err := readInput(b.input)
	if err != nil {
		return err
	}

	page, err := b.conv.Preview(ctx, previewInput(b.cfg, markdown, 1))
	if err != nil {
		return err
	}
	if err := writeOutput(b.htmlOut, []byte(page)); err != nil {
		return err
	}

	if b.pdfOut != "" {
		if _, err := exportTo(ctx, b.conv, b.cfg, b.input, markdown, b.pdfOut, false); err != nil {
			return err
		}
	}

	printf(b.stdout, b.quiet, "rebuilt %s in %s\n", b.input, time.Since(start).Round(time.Millisecond))
	return nil
}

// rebuild is build for the watch loop: failures are reported, not fatal.
func (b *watchBuilder) rebuild(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	if err := b.build(ctx); err != nil {
		fmt.Fprintf(b.stderr, "error: %v\n", err)
	}
}
