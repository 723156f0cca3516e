// Package server exposes the CV builder over HTTP: PDF export, preview
// rendering, the template catalogue and the persisted editor state.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/store"
	"github.com/alnah/go-md2cv/internal/templates"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

// Converter is what the handlers need from the export pipeline.
type Converter interface {
	Export(ctx context.Context, in md2cv.Input) (*md2cv.ExportResult, error)
	Preview(ctx context.Context, in md2cv.PreviewInput) (string, error)
}

// Compile-time interface check.
var _ Converter = (*PooledConverter)(nil)

// PooledConverter runs each call on a converter borrowed from a pool.
type PooledConverter struct {
	pool *md2cv.ConverterPool
}

// NewPooledConverter wraps pool.
func NewPooledConverter(pool *md2cv.ConverterPool) *PooledConverter {
	return &PooledConverter{pool: pool}
}

// Export borrows a converter for one export.
func (p *PooledConverter) Export(ctx context.Context, in md2cv.Input) (*md2cv.ExportResult, error) {
	c, err := p.pool.Acquire()
	if err != nil {
		return nil, err
	}
	defer p.pool.Release(c)
	return c.Export(ctx, in)
}

// Preview borrows a converter for one preview.
func (p *PooledConverter) Preview(ctx context.Context, in md2cv.PreviewInput) (string, error) {
	c, err := p.pool.Acquire()
	if err != nil {
		return "", err
	}
	defer p.pool.Release(c)
	return c.Preview(ctx, in)
}

// Config holds server settings.
type Config struct {
	// AllowedOrigin is sent as Access-Control-Allow-Origin; empty means "*".
	AllowedOrigin string
	// ExportTimeout bounds one export request; zero means no extra bound.
	ExportTimeout time.Duration
}

// Server wires handlers to their dependencies.
type Server struct {
	cfg       Config
	converter Converter
	state     *store.Store
	templates *templates.Registry
	logger    *slog.Logger
}

// New creates a Server. A nil logger discards logs and a nil registry
// means the built-in templates.
func New(cfg Config, converter Converter, state *store.Store, registry *templates.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if registry == nil {
		registry = templates.Builtin()
	}
	return &Server{
		cfg:       cfg,
		converter: converter,
		state:     state,
		templates: registry,
		logger:    logger,
	}
}

// Handler builds the gin engine.
func (s *Server) Handler() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), CorrelationID(), RequestLogger(s.logger), Metrics())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		pdf := api.Group("/generate-pdf", CORS(s.cfg.AllowedOrigin))
		pdf.POST("", s.generatePDF)
		pdf.OPTIONS("", func(c *gin.Context) { c.Status(http.StatusNoContent) })

		api.POST("/preview", s.preview)
		api.GET("/templates", s.listTemplates)
		api.GET("/state", s.getState)
		api.PUT("/state", s.putState)
	}

	return router
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", slog.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("server shutting down")
	return srv.Shutdown(shutdownCtx)
}

// validationDetails flattens validator errors into "field: rule" strings.
func validationDetails(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}
	details := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		detail := fe.Field() + ": " + fe.Tag()
		if fe.Param() != "" {
			detail += "=" + fe.Param()
		}
		details = append(details, detail)
	}
	return details
}
