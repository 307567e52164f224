package handler

import (
	"context"

	"github.com/noah-isme/sma-clubs/internal/service"
)

// ReportMenu shows query statistics and exports the last printed result.
type ReportMenu struct {
	prompt  *Prompt
	metrics *service.MetricsService
	export  *service.ExportService
}

// NewReportMenu constructs ReportMenu.
func NewReportMenu(prompt *Prompt, metrics *service.MetricsService, export *service.ExportService) *ReportMenu {
	return &ReportMenu{prompt: prompt, metrics: metrics, export: export}
}

// Statistics prints per-table query counts and latencies.
func (m *ReportMenu) Statistics() {
	result, err := m.metrics.Snapshot()
	m.prompt.Show("Query statistics", result, err)
}

// Export writes the last printed result in a chosen format.
func (m *ReportMenu) Export(ctx context.Context) error {
	result, title := m.prompt.Last()
	if result == nil {
		m.prompt.Say("nothing to export yet")
		return nil
	}
	formats := m.export.Formats()
	options := make([]option, 0, len(formats)+1)
	for i, f := range formats {
		options = append(options, option{i + 1, f})
	}
	options = append(options, option{0, "cancel"})
	choice, err := m.prompt.Choose("Export "+title, options...)
	if err != nil || choice == 0 {
		return err
	}
	out, err := m.export.Export(ctx, title, result, formats[choice-1])
	if err != nil {
		m.prompt.Done(err, "")
		return nil
	}
	m.prompt.Say("%d row(s) written to %s", out.Rows, out.Path)
	return nil
}
