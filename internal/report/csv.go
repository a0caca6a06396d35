package report

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

// CSVGenerator writes RFC 4180 comma separated reports.
type CSVGenerator struct{}

func (g *CSVGenerator) Generate(orders []domain.Order) (Artifact, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(Rows(orders)); err != nil {
		return Artifact{}, fmt.Errorf("write csv report: %w", err)
	}

	return Artifact{
		Format:      FormatCSV,
		Filename:    "orders.csv",
		ContentType: "text/csv; charset=utf-8",
		Body:        buf.Bytes(),
	}, nil
}
