package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	md2cv "github.com/alnah/go-md2cv"
	"github.com/alnah/go-md2cv/internal/cv"
	"github.com/alnah/go-md2cv/internal/store"
	"github.com/alnah/go-md2cv/internal/templates"
)

// Error messages returned in the "error" field.
const (
	msgInputRequired   = "HTML content is required"
	msgInvalidRequest  = "invalid request"
	msgPreviewNotFound = "CV preview element not found"
	msgGenerateFailed  = "PDF generation failed"
	msgPreviewFailed   = "preview rendering failed"
	msgStateFailed     = "state unavailable"
)

type exportOptions struct {
	PageFormat   string `json:"pageFormat" binding:"omitempty,oneof=A4 'US Letter' letter"`
	Quality      string `json:"quality" binding:"omitempty,oneof=standard ats"`
	Template     string `json:"template" binding:"omitempty,max=64"`
	Layout       string `json:"layout" binding:"omitempty,oneof=single-column two-column"`
	InlineStyles bool   `json:"inlineStyles"`
}

type generateRequest struct {
	HTML     string        `json:"html"`
	Markdown string        `json:"markdown"`
	Options  exportOptions `json:"options"`
}

type previewRequest struct {
	Markdown   string  `json:"markdown" binding:"required"`
	Template   string  `json:"template" binding:"omitempty,max=64"`
	Layout     string  `json:"layout" binding:"omitempty,oneof=single-column two-column"`
	PageFormat string  `json:"pageFormat" binding:"omitempty,oneof=A4 'US Letter' letter"`
	Zoom       float64 `json:"zoom" binding:"omitempty,gt=0,lte=4"`
}

type templateResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Layout      cv.Layout         `json:"layout"`
	Variables   map[string]string `json:"variables"`
}

func errorJSON(c *gin.Context, status int, msg string, details ...string) {
	body := gin.H{"error": msg}
	if len(details) == 1 {
		body["details"] = details[0]
	} else if len(details) > 1 {
		body["details"] = details
	}
	c.AbortWithStatusJSON(status, body)
}

// POST /api/generate-pdf
func (s *Server) generatePDF(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, msgInvalidRequest, validationDetails(err)...)
		return
	}
	if strings.TrimSpace(req.HTML) == "" && strings.TrimSpace(req.Markdown) == "" {
		errorJSON(c, http.StatusBadRequest, msgInputRequired)
		return
	}

	ctx := c.Request.Context()
	if s.cfg.ExportTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ExportTimeout)
		defer cancel()
	}

	start := time.Now()
	res, err := s.converter.Export(ctx, md2cv.Input{
		Markdown:     req.Markdown,
		HTML:         req.HTML,
		PageFormat:   md2cv.PageFormat(req.Options.PageFormat),
		Quality:      md2cv.Quality(req.Options.Quality),
		Template:     req.Options.Template,
		Layout:       md2cv.Layout(req.Options.Layout),
		InlineStyles: req.Options.InlineStyles,
	})
	quality := req.Options.Quality
	if quality == "" {
		quality = string(md2cv.QualityStandard)
	}
	pages := 0
	if res != nil {
		pages = res.PageCount
	}
	observeExport(quality, start, pages, err)

	logger := LoggerFromContext(c)
	if err != nil {
		logger.Error("export failed", slog.Any("error", err))
		switch {
		case errors.Is(err, md2cv.ErrPreviewNotFound):
			errorJSON(c, http.StatusUnprocessableEntity, msgPreviewNotFound)
		case errors.Is(err, md2cv.ErrEmptyInput):
			errorJSON(c, http.StatusBadRequest, msgInputRequired)
		case errors.Is(err, md2cv.ErrInvalidPageFormat),
			errors.Is(err, md2cv.ErrInvalidQuality),
			errors.Is(err, md2cv.ErrInvalidLayout):
			errorJSON(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		default:
			errorJSON(c, http.StatusInternalServerError, msgGenerateFailed, err.Error())
		}
		return
	}

	logger.Info("export succeeded",
		slog.Int("bytes", res.Size),
		slog.Int("pages", res.PageCount),
	)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.Filename))
	c.Header("Content-Length", strconv.Itoa(res.Size))
	c.Header("X-PDF-Page-Count", strconv.Itoa(res.PageCount))
	c.Data(http.StatusOK, "application/pdf", res.PDF)
}

// POST /api/preview
func (s *Server) preview(c *gin.Context) {
	var req previewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorJSON(c, http.StatusBadRequest, msgInvalidRequest, validationDetails(err)...)
		return
	}

	page, err := s.converter.Preview(c.Request.Context(), md2cv.PreviewInput{
		Markdown:   req.Markdown,
		Template:   req.Template,
		Layout:     md2cv.Layout(req.Layout),
		PageFormat: md2cv.PageFormat(req.PageFormat),
		Zoom:       req.Zoom,
	})
	if err != nil {
		LoggerFromContext(c).Error("preview failed", slog.Any("error", err))
		errorJSON(c, http.StatusInternalServerError, msgPreviewFailed, err.Error())
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// GET /api/templates?layout=
func (s *Server) listTemplates(c *gin.Context) {
	list := s.templates.List()
	if raw := c.Query("layout"); raw != "" {
		layout, ok := cv.ParseLayout(raw)
		if !ok {
			errorJSON(c, http.StatusBadRequest, msgInvalidRequest, "layout: oneof=single-column two-column")
			return
		}
		list = s.templates.ListByLayout(layout)
	}

	out := make([]templateResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTemplateResponse(t))
	}
	c.JSON(http.StatusOK, out)
}

func toTemplateResponse(t templates.Template) templateResponse {
	return templateResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		Layout:      t.Layout,
		Variables:   t.VarMap(),
	}
}

// GET /api/state
func (s *Server) getState(c *gin.Context) {
	snap, err := s.state.Load()
	if err != nil {
		LoggerFromContext(c).Error("state load failed", slog.Any("error", err))
		errorJSON(c, http.StatusInternalServerError, msgStateFailed, err.Error())
		return
	}
	c.JSON(http.StatusOK, snap)
}

// PUT /api/state
func (s *Server) putState(c *gin.Context) {
	var snap store.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		errorJSON(c, http.StatusBadRequest, msgInvalidRequest, validationDetails(err)...)
		return
	}
	if snap.Version > store.Version {
		errorJSON(c, http.StatusBadRequest, msgInvalidRequest, store.ErrUnsupportedState.Error())
		return
	}

	if err := s.state.Save(snap); err != nil {
		LoggerFromContext(c).Error("state save failed", slog.Any("error", err))
		errorJSON(c, http.StatusInternalServerError, msgStateFailed, err.Error())
		return
	}
	saved, err := s.state.Load()
	if err != nil {
		errorJSON(c, http.StatusInternalServerError, msgStateFailed, err.Error())
		return
	}
	c.JSON(http.StatusOK, saved)
}
