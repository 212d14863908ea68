package pdfexport

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-pdf/fpdf"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-trip-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-trip-itinerary/internal/types"
)

// Filename is the suggested download name for exported itineraries.
const Filename = "itinerary.pdf"

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service serializes an itinerary document into a paginated PDF. The
// transformation is pure: no network or cache interaction.
type Service interface {
	Export(ctx context.Context, doc *types.ItineraryDocument) ([]byte, error)
}

type ServiceImpl struct {
	logger *slog.Logger
}

func NewService(logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{logger: logger}
}

// Export renders the title block, trip metadata, day-by-day plan and the
// cost table, and returns the PDF bytes.
func (s *ServiceImpl) Export(ctx context.Context, doc *types.ItineraryDocument) ([]byte, error) {
	ctx, span := otel.Tracer("PDFExportService").Start(ctx, "Export", trace.WithAttributes(
		attribute.String("pdf.destination", doc.Destination),
		attribute.Int("pdf.plan_days", len(doc.Plan)),
	))
	defer span.End()

	pdf := fpdf.New("P", "mm", "Letter", "")
	// Pin the embedded timestamps so identical documents export to
	// identical bytes.
	pdf.SetCreationDate(time.Unix(0, 0))
	pdf.SetModificationDate(time.Unix(0, 0))
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Title
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(0, 12, "Personalized Trip Itinerary", "", 1, "C", false, 0, "")
	pdf.Ln(6)

	// Trip details
	pdf.SetFont("Helvetica", "", 11)
	details := []string{
		fmt.Sprintf("Destination: %s", doc.Destination),
		fmt.Sprintf("Days: %d", doc.Days),
		fmt.Sprintf("Budget: $%s", formatAmount(doc.Budget)),
		fmt.Sprintf("Interests: %s", strings.Join(doc.Interests, ", ")),
	}
	for _, line := range details {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Daily plan, in plan order
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Daily Itinerary", "", 1, "L", false, 0, "")
	for _, day := range doc.Plan {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 7, fmt.Sprintf("Day %d", day.Day), "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		for _, activity := range day.Activities {
			pdf.CellFormat(0, 6, fmt.Sprintf("- %s", activity), "", 1, "L", false, 0, "")
		}
		pdf.Ln(2)
	}
	pdf.Ln(4)

	if len(doc.CostBreakdown) > 0 {
		writeCostTable(pdf, doc.CostBreakdown)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "PDF rendering failed")
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}

	metrics.Get().PDFExportsTotal.Add(ctx, 1)
	s.logger.InfoContext(ctx, "Itinerary exported to PDF",
		slog.String("destination", doc.Destination), slog.Int("bytes", buf.Len()))
	span.SetStatus(codes.Ok, "PDF exported")
	return buf.Bytes(), nil
}

func writeCostTable(pdf *fpdf.Fpdf, breakdown types.CostBreakdown) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 8, "Detailed Cost Breakdown", "", 1, "L", false, 0, "")

	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right
	colCategory := usable * 0.30
	colItem := usable * 0.50
	colCost := usable * 0.20

	// Header row
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetFillColor(173, 216, 230)
	pdf.CellFormat(colCategory, 8, "Category", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colItem, 8, "Item", "1", 0, "C", true, 0, "")
	pdf.CellFormat(colCost, 8, "Cost ($)", "1", 1, "C", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	for _, row := range CostRows(breakdown) {
		pdf.CellFormat(colCategory, 7, row.Category, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colItem, 7, row.Item, "1", 0, "C", false, 0, "")
		pdf.CellFormat(colCost, 7, row.Amount, "1", 1, "C", false, 0, "")
	}
}

// CostRow is one flattened line of the cost table.
type CostRow struct {
	Category string
	Item     string
	Amount   string
}

// CostRows flattens the breakdown into table rows: item-valued categories
// expand to one row per item, flat categories produce a single "Total" row.
// Order is deterministic (sorted categories, sorted items).
func CostRows(breakdown types.CostBreakdown) []CostRow {
	var rows []CostRow
	for _, category := range breakdown.SortedCategories() {
		detail := breakdown[category]
		if detail.Flat {
			rows = append(rows, CostRow{
				Category: titleCase(category),
				Item:     "Total",
				Amount:   "$" + formatAmount(detail.Total),
			})
			continue
		}
		for _, item := range detail.SortedItems() {
			rows = append(rows, CostRow{
				Category: titleCase(category),
				Item:     titleCase(item),
				Amount:   "$" + formatAmount(detail.Items[item]),
			})
		}
	}
	return rows
}

// titleCase capitalizes the first letter of every word, where a word starts
// after any non-letter (so "local_transport" becomes "Local_Transport").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		isLetter := unicode.IsLetter(r)
		if isLetter && !prevLetter {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
		prevLetter = isLetter
	}
	return b.String()
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
