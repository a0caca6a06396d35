package queries

import (
	"context"
	"fmt"

	"github.com/dejobratic/orderdesk/internal/orders/collection"
	"github.com/dejobratic/orderdesk/internal/report"
)

// GenerateReportQuery selects the document format of the export.
type GenerateReportQuery struct {
	Format report.Format
}

// GenerateReportQueryHandler exports exactly the rows currently displayed.
type GenerateReportQueryHandler struct {
	orders     *collection.Collection
	generators map[report.Format]report.Generator
}

// NewGenerateReportQueryHandler constructs a GenerateReportQueryHandler.
func NewGenerateReportQueryHandler(orders *collection.Collection, generators map[report.Format]report.Generator) *GenerateReportQueryHandler {
	return &GenerateReportQueryHandler{orders: orders, generators: generators}
}

// Handle renders the displayed view with the generator for the query format.
func (h *GenerateReportQueryHandler) Handle(_ context.Context, query GenerateReportQuery) (report.Artifact, error) {
	generator, ok := h.generators[query.Format]
	if !ok {
		return report.Artifact{}, fmt.Errorf("%w: %q", report.ErrUnknownFormat, query.Format)
	}

	artifact, err := generator.Generate(h.orders.Displayed())
	if err != nil {
		return report.Artifact{}, fmt.Errorf("generate %s report: %w", query.Format, err)
	}

	return artifact, nil
}
