// README: PDF itinerary document built with fpdf.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"zotra/internal/modules/trip"
)

// Totals carries the aggregate figures printed in the summary block.
type Totals struct {
	DestinationCount int
	DistanceKm       int
	DurationMinutes  int
}

// BuildPDF renders the itinerary as a shareable A4 document: title, export
// date, summary block, then one row per leg.
func BuildPDF(title string, legs []trip.Leg, totals Totals) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252 only; the translator keeps accented French
	// labels intact.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(0, 122, 255)
	pdf.CellFormat(0, 12, tr(title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 8, tr(fmt.Sprintf("Exporté le %s", time.Now().Format("02/01/2006"))), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	summary := fmt.Sprintf("%d destinations — distance totale %d km — durée totale %d min",
		totals.DestinationCount, totals.DistanceKm, totals.DurationMinutes)
	pdf.CellFormat(0, 8, tr(summary), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for i, leg := range legs {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("%d. %s -> %s", i+1, leg.From, leg.To)), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(102, 102, 102)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Durée : %s min    Distance : %s km", leg.Duration, leg.Distance)), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return buf.Bytes(), nil
}
