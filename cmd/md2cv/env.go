package main

import (
	"context"
	"io"
	"os"
	"time"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/assets"
	"github.com/alnah/go-md2cv/internal/config"
)

// Converter is what commands need from the export pipeline.
type Converter interface {
	Export(ctx context.Context, in md2cv.Input) (*md2cv.ExportResult, error)
	Preview(ctx context.Context, in md2cv.PreviewInput) (string, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*md2cv.Converter)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, asset loading and the converter factory.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	AssetLoader  assets.AssetLoader
	Config       *config.Config // Used when no config file is given
	NewConverter func(opts ...md2cv.Option) (Converter, error)
}

// DefaultEnv returns production environment with embedded assets.
func DefaultEnv() *Environment {
	return &Environment{
		Now:          time.Now,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
		AssetLoader:  assets.NewEmbeddedLoader(),
		Config:       config.DefaultConfig(),
		NewConverter: newRodConverter,
	}
}

func newRodConverter(opts ...md2cv.Option) (Converter, error) {
	c, err := md2cv.NewConverter(opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}
