package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-clubs/internal/models"
	"github.com/noah-isme/sma-clubs/pkg/export"
	appErrors "github.com/noah-isme/sma-clubs/pkg/errors"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
}

// ExportResult captures where a rendered result was written.
type ExportResult struct {
	Path   string
	Format string
	Rows   int
}

// ExportService renders result sets to files.
type ExportService struct {
	storage   fileStorage
	renderers map[string]export.Renderer
	logger    *zap.Logger
	now       func() time.Time
}

// NewExportService constructs an ExportService. Without renderers it offers
// CSV, PDF and XLSX.
func NewExportService(storage fileStorage, logger *zap.Logger, renderers ...export.Renderer) *ExportService {
	if len(renderers) == 0 {
		renderers = []export.Renderer{export.NewCSVExporter(), export.NewPDFExporter(), export.NewXLSXExporter()}
	}
	byExt := make(map[string]export.Renderer, len(renderers))
	for _, r := range renderers {
		byExt[r.Extension()] = r
	}
	return &ExportService{storage: storage, renderers: byExt, logger: newLogger(logger), now: time.Now}
}

// Formats lists the supported file formats.
func (s *ExportService) Formats() []string {
	formats := make([]string, 0, len(s.renderers))
	for ext := range s.renderers {
		formats = append(formats, ext)
	}
	sort.Strings(formats)
	return formats
}

// Export renders result in format and stores it under a name derived from title.
func (s *ExportService) Export(ctx context.Context, title string, result *models.ResultSet, format string) (*ExportResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if result == nil || len(result.Columns) == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "there is no result to export")
	}
	format = strings.ToLower(strings.TrimSpace(format))
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	payload, err := renderer.Render(export.Dataset{Title: title, Headers: result.Columns, Rows: result.Rows})
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", format, err)
	}
	filename := fmt.Sprintf("%s_%s.%s", sanitizeFilename(title), s.now().UTC().Format("20060102_150405"), renderer.Extension())
	path, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, err
	}
	s.logger.Info("result exported", zap.String("path", path), zap.String("format", format), zap.Int("rows", result.Len()))
	return &ExportResult{Path: path, Format: format, Rows: result.Len()}, nil
}

// maxFilenameStem bounds the title part of an export file name in bytes.
const maxFilenameStem = 100

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "result"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := strings.TrimLeft(strings.ToLower(replacer.Replace(raw)), ".")
	if result == "" {
		return "result"
	}
	if len(result) <= maxFilenameStem {
		return result
	}
	cut := maxFilenameStem
	for cut > 0 && !utf8.RuneStart(result[cut]) {
		cut--
	}
	return result[:cut]
}
