package calculator

import "github.com/mmynk/hotelbilling/internal/models"

// Totals is the tax-inclusive breakdown of a bill.
type Totals struct {
	Subtotal float64
	TaxTotal float64
	Total    float64
}

// ComputeTotals sums a bill's lines.
//
//	subtotal = Σ price × qty
//	taxTotal = Σ price × qty × gst
//	total    = subtotal + taxTotal
//
// The result does not depend on line order beyond float summation error.
func ComputeTotals(lines []models.BillLine) Totals {
	var t Totals
	for _, line := range lines {
		amount := LineAmount(line)
		t.Subtotal += amount
		t.TaxTotal += amount * line.GST
	}
	t.Total = t.Subtotal + t.TaxTotal
	return t
}

// LineAmount is the pre-tax amount of one line.
func LineAmount(line models.BillLine) float64 {
	return line.Price * float64(line.Qty)
}
