// Package export renders the saved quotes for the outside world, either
// as a JSON backup of the whole collection or as a printable PDF of a
// single quote.
package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/noah-isme/motiondevis/internal/catalog"
	"github.com/noah-isme/motiondevis/internal/devis"
)

// PDFGenerator renders a quote into an A4 PDF document.
type PDFGenerator struct{}

// Generate builds the document. Core fonts only, so accented French text
// goes through the cp1252 translator.
func (PDFGenerator) Generate(q devis.Quote, settings catalog.Settings) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(tr("Devis motion design"), false)
	pdf.AddPage()

	money := func(amount float64) string {
		return tr(fmt.Sprintf("%.2f %s", amount, settings.Currency))
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "DEVIS")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 10)
	if q.ID != "" {
		pdf.Cell(0, 5, tr(fmt.Sprintf("Référence : %s", q.ID)))
		pdf.Ln(5)
	}
	if !q.CreatedAt.IsZero() {
		pdf.Cell(0, 5, tr(fmt.Sprintf("Date : %s", q.CreatedAt.Format("02/01/2006"))))
		pdf.Ln(5)
	}
	if q.Status != "" {
		pdf.Cell(0, 5, tr(fmt.Sprintf("Statut : %s", q.Status)))
		pdf.Ln(5)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, tr("Client"))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	if q.Client.Name != "" {
		pdf.Cell(0, 5, tr(q.Client.Name))
		pdf.Ln(5)
	}
	if q.Client.Company != "" {
		pdf.Cell(0, 5, tr(q.Client.Company))
		pdf.Ln(5)
	}
	if q.Client.Email != "" {
		pdf.Cell(0, 5, tr(q.Client.Email))
		pdf.Ln(5)
	}
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(0, 6, tr("Projet"))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 10)
	if q.Project.Title != "" {
		pdf.Cell(0, 5, tr(q.Project.Title))
		pdf.Ln(5)
	}
	pdf.Cell(0, 5, tr(fmt.Sprintf("Type : %s, durée : %.0fs", q.Project.VideoType, q.Video.Duration)))
	pdf.Ln(5)
	if q.Project.Deadline != "" {
		pdf.Cell(0, 5, tr(fmt.Sprintf("Échéance : %s", q.Project.Deadline)))
		pdf.Ln(5)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(95, 7, tr("Prestation"))
	pdf.Cell(25, 7, tr("Quantité"))
	pdf.Cell(35, 7, tr("Prix unitaire"))
	pdf.Cell(35, 7, tr("Total"))
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range q.Lines {
		pdf.Cell(95, 6, tr(clip(line.Title, 52)))
		pdf.Cell(25, 6, fmt.Sprintf("%g", line.Quantity))
		pdf.Cell(35, 6, money(line.UnitPrice))
		pdf.Cell(35, 6, money(line.Quantity*line.UnitPrice))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.Cell(120, 6, "")
	pdf.Cell(35, 6, tr("Sous-total"))
	pdf.Cell(35, 6, money(q.Totals.Subtotal))
	pdf.Ln(6)
	for _, adj := range q.Totals.Adjustments {
		pdf.Cell(120, 6, "")
		pdf.Cell(35, 6, tr(clip(adj.Label, 22)))
		pdf.Cell(35, 6, money(adj.Amount))
		pdf.Ln(6)
	}
	if q.Totals.UrgencyAmount != 0 {
		pdf.Cell(120, 6, "")
		pdf.Cell(35, 6, tr("Urgence"))
		pdf.Cell(35, 6, money(q.Totals.UrgencyAmount))
		pdf.Ln(6)
	}
	if q.Totals.DiscountTotal != 0 {
		pdf.Cell(120, 6, "")
		pdf.Cell(35, 6, tr("Remise"))
		pdf.Cell(35, 6, money(-q.Totals.DiscountTotal))
		pdf.Ln(6)
	}
	pdf.Cell(120, 6, "")
	pdf.Cell(35, 6, tr("Total HT"))
	pdf.Cell(35, 6, money(q.Totals.HT))
	pdf.Ln(6)
	pdf.Cell(120, 6, "")
	pdf.Cell(35, 6, tr(fmt.Sprintf("TVA (%.0f%%)", q.VAT)))
	pdf.Cell(35, 6, money(q.Totals.VATAmount))
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(120, 7, "")
	pdf.Cell(35, 7, tr("Total TTC"))
	pdf.Cell(35, 7, money(q.Totals.TTC))
	pdf.Ln(10)

	if settings.DefaultNotes != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.MultiCell(0, 5, tr(settings.DefaultNotes), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func clip(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "..."
}
