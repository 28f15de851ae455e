package calculator

import (
	"sort"

	"github.com/mmynk/hotelbilling/internal/models"
)

// SalesSummary aggregates paid bills.
type SalesSummary struct {
	BillCount int
	Totals    Totals
	ByWaiter  []GroupSales // sorted by Key
	ByTable   []GroupSales // sorted by Key
}

// GroupSales is the share of sales attributed to one waiter or table.
type GroupSales struct {
	Key       string
	BillCount int
	Totals    Totals
}

// SummarizeSales computes revenue across paid bills.
// Open bills are skipped: their lines can still change.
func SummarizeSales(bills []models.Bill) SalesSummary {
	var summary SalesSummary
	byWaiter := make(map[string]*GroupSales)
	byTable := make(map[string]*GroupSales)

	for _, bill := range bills {
		if !bill.Paid {
			continue
		}

		totals := ComputeTotals(bill.Items)
		summary.BillCount++
		summary.Totals = addTotals(summary.Totals, totals)

		accumulate(byWaiter, bill.WaiterName, totals)
		accumulate(byTable, bill.TableID, totals)
	}

	summary.ByWaiter = sortedGroups(byWaiter)
	summary.ByTable = sortedGroups(byTable)
	return summary
}

func accumulate(groups map[string]*GroupSales, key string, totals Totals) {
	g, exists := groups[key]
	if !exists {
		g = &GroupSales{Key: key}
		groups[key] = g
	}
	g.BillCount++
	g.Totals = addTotals(g.Totals, totals)
}

func addTotals(a, b Totals) Totals {
	return Totals{
		Subtotal: a.Subtotal + b.Subtotal,
		TaxTotal: a.TaxTotal + b.TaxTotal,
		Total:    a.Total + b.Total,
	}
}

func sortedGroups(groups map[string]*GroupSales) []GroupSales {
	out := make([]GroupSales, 0, len(groups))
	for _, g := range groups {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}
