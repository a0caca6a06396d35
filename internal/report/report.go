// Package report renders order rows into downloadable tabular documents.
// Generators are pure: they return bytes and never touch the filesystem.
package report

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dejobratic/orderdesk/internal/orders/domain"
)

// ErrUnknownFormat is returned for report formats without a generator.
var ErrUnknownFormat = errors.New("unknown report format")

// Header is the fixed first row of every report.
var Header = []string{"ID", "Name", "Email", "Total Price", "Status"}

const defaultTitle = "Order List"

// Format identifies the document encoding of a report.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// ParseFormat maps a user supplied name onto a Format.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
}

// Artifact is a generated document ready to be served as a download.
type Artifact struct {
	Format      Format
	Filename    string
	ContentType string
	Body        []byte
}

// Generator turns rows into an artifact, preserving input order.
type Generator interface {
	Generate(orders []domain.Order) (Artifact, error)
}

type options struct {
	title      string
	compressed bool
	font       []byte
}

// Option configures a generator.
type Option func(*options)

// WithTitle sets the heading printed above the table where the format has one.
func WithTitle(title string) Option {
	return func(o *options) {
		if title != "" {
			o.title = title
		}
	}
}

// WithCompression toggles stream compression for formats that support it.
func WithCompression(enabled bool) Option {
	return func(o *options) {
		o.compressed = enabled
	}
}

// WithUTF8Font embeds a TrueType font so text outside cp1252 survives in
// PDF reports. Formats without fonts ignore it.
func WithUTF8Font(ttf []byte) Option {
	return func(o *options) {
		o.font = ttf
	}
}

// New returns the generator for format.
func New(format Format, opts ...Option) (Generator, error) {
	o := options{title: defaultTitle, compressed: true}
	for _, opt := range opts {
		opt(&o)
	}

	switch format {
	case FormatCSV:
		return &CSVGenerator{}, nil
	case FormatPDF:
		return &PDFGenerator{title: o.title, compressed: o.compressed, font: o.font}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Rows renders the header followed by one record per order.
func Rows(orders []domain.Order) [][]string {
	rows := make([][]string, 0, len(orders)+1)
	rows = append(rows, append([]string(nil), Header...))
	for _, order := range orders {
		rows = append(rows, []string{
			order.ID,
			order.CustomerName,
			order.CustomerEmail,
			order.TotalPrice.StringFixed(2),
			string(order.Status),
		})
	}
	return rows
}
