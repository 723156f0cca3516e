package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gin-gonic/gin"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/config"
	"github.com/alnah/go-md2cv/internal/server"
	"github.com/alnah/go-md2cv/internal/store"
)

// runServe runs the HTTP API until interrupted.
func runServe(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return usageError(err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: serve takes no arguments", ErrUsage)
	}

	cfg, err := resolveConfig(flags.common, env)
	if err != nil {
		return err
	}
	if err := mergeServeFlags(flags, cfg); err != nil {
		return err
	}

	statePath := cfg.State.Path
	if statePath == "" {
		statePath, err = config.DefaultStatePath()
		if err != nil {
			return fmt.Errorf("locating state file: %w", err)
		}
	}

	logger := newServerLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	if !flags.common.verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	poolSize := md2cv.ResolvePoolSize(cfg.Export.Workers)
	opts := append(converterOptions(cfg, logger), md2cv.WithStageObserver(server.ObserveStage))
	pool := md2cv.NewConverterPool(poolSize, opts...)
	defer func() { _ = pool.Close() }()

	srv := server.New(server.Config{
		AllowedOrigin: cfg.Server.AllowedOrigin,
		ExportTimeout: cfg.ExportTimeout(),
	}, server.NewPooledConverter(pool), store.New(statePath), nil, logger)

	printf(env.Stdout, flags.common.quiet, "serving on http://%s (pool size %d, state %s)\n",
		cfg.Server.Addr, poolSize, statePath)
	return srv.Run(ctx, cfg.Server.Addr)
}

// mergeServeFlags applies non-empty serve flags over cfg and validates it.
func mergeServeFlags(flags *serveFlags, cfg *config.Config) error {
	if flags.addr != "" {
		cfg.Server.Addr = flags.addr
	}
	if flags.origin != "" {
		cfg.Server.AllowedOrigin = flags.origin
	}
	if flags.statePath != "" {
		cfg.State.Path = flags.statePath
	}
	if flags.workers != 0 {
		cfg.Export.Workers = flags.workers
	}
	if err := parseTimeout(flags.timeout, cfg); err != nil {
		return err
	}
	return cfg.Validate()
}

// newServerLogger logs at Info by default, Debug when verbose, and
// nothing when quiet.
func newServerLogger(w io.Writer, quiet, verbose bool) *slog.Logger {
	switch {
	case quiet:
		return slog.New(slog.DiscardHandler)
	case verbose:
		return newLogger(w, true)
	default:
		return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
}
