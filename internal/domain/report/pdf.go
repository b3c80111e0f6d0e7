package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/phpdave11/gofpdf"
)

const pdfRowLimit = 20

// RenderPDF renders a report as a printable PDF document.
func RenderPDF(r *Report, generatedAt time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("FinTrack - Financial Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "FinTrack - Financial Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, "Generated on: "+generatedAt.Format("2006-01-02"))
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Summary")
	pdf.Ln(9)

	summaryRow(pdf, "Total Income", r.TotalIncome)
	summaryRow(pdf, "Total Expenses", r.TotalExpenses)
	summaryRow(pdf, "Net Balance", r.NetBalance)
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Top Categories")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.Cell(90, 7, "Category")
	pdf.Cell(50, 7, "Net Balance")
	pdf.Ln(7)

	pdf.SetFont("Helvetica", "", 11)
	if len(r.TopCategories) == 0 {
		pdf.Cell(90, 7, "No data available")
		pdf.Cell(50, 7, "EUR 0.00")
		pdf.Ln(7)
	}
	for _, c := range r.TopCategories {
		pdf.Cell(90, 7, c.Category)
		pdf.Cell(50, 7, fmt.Sprintf("EUR %.2f", c.NetBalance))
		pdf.Ln(7)
	}
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 8, "Recent Transactions")
	pdf.Ln(9)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(30, 6, "Date")
	pdf.Cell(75, 6, "Description")
	pdf.Cell(35, 6, "Amount")
	pdf.Cell(40, 6, "Category")
	pdf.Ln(6)

	pdf.SetFont("Helvetica", "", 10)
	if len(r.Transactions) == 0 {
		pdf.Cell(30, 6, "-")
		pdf.Cell(75, 6, "No transactions available")
		pdf.Cell(35, 6, "EUR 0.00")
		pdf.Cell(40, 6, "-")
		pdf.Ln(6)
	}
	rows := r.Transactions
	if len(rows) > pdfRowLimit {
		rows = rows[:pdfRowLimit]
	}
	for _, tx := range rows {
		desc := tx.Description
		if len(desc) > 30 {
			desc = desc[:30] + "..."
		}
		pdf.Cell(30, 6, tx.Date.Format("2006-01-02"))
		pdf.Cell(75, 6, desc)
		pdf.Cell(35, 6, fmt.Sprintf("EUR %.2f", tx.Amount))
		pdf.Cell(40, 6, tx.Category)
		pdf.Ln(6)
	}
	if extra := len(r.Transactions) - pdfRowLimit; extra > 0 {
		pdf.Cell(0, 6, fmt.Sprintf("... and %d more transactions", extra))
		pdf.Ln(6)
	}

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.Cell(0, 6, "FinTrack - Personal Finance Management Tool")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func summaryRow(pdf *gofpdf.Fpdf, label string, value float64) {
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(90, 7, label)
	pdf.Cell(50, 7, fmt.Sprintf("EUR %.2f", value))
	pdf.Ln(7)
}
