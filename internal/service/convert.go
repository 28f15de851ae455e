package service

import (
	"github.com/mmynk/hotelbilling/internal/calculator"
	"github.com/mmynk/hotelbilling/internal/models"
	"github.com/mmynk/hotelbilling/pkg/api"
)

func toAPISession(s models.Session) api.Session {
	return api.Session{ID: s.ID, Name: s.Name, Role: string(s.Role)}
}

func toAPITable(t models.Table) api.Table {
	return api.Table{
		ID:            t.ID,
		Name:          t.Name,
		CurrentBillID: t.CurrentBillID,
		Occupied:      t.Occupied(),
	}
}

func toAPIMenuItem(item models.MenuItem) api.MenuItem {
	return api.MenuItem{ID: item.ID, Name: item.Name, Price: item.Price, GST: item.GST}
}

func toAPIWaiter(w models.Waiter) api.Waiter {
	return api.Waiter{ID: w.ID, Name: w.Name}
}

func toAPIUser(u models.User) api.User {
	return api.User{ID: u.ID, Name: u.Name, Role: string(u.Role)}
}

func toAPITotals(t calculator.Totals) api.Totals {
	return api.Totals{Subtotal: t.Subtotal, TaxTotal: t.TaxTotal, Total: t.Total}
}

func toAPIBill(b models.Bill) api.Bill {
	items := make([]api.BillLine, len(b.Items))
	for i, line := range b.Items {
		items[i] = api.BillLine{
			ID:     line.ID,
			Name:   line.Name,
			Price:  line.Price,
			GST:    line.GST,
			Qty:    line.Qty,
			Amount: calculator.LineAmount(line),
		}
	}
	return api.Bill{
		ID:          b.ID,
		TableID:     b.TableID,
		WaiterName:  b.WaiterName,
		Items:       items,
		CreatedAt:   b.CreatedAt,
		Paid:        b.Paid,
		FinalizedAt: b.FinalizedAt,
		Totals:      toAPITotals(calculator.ComputeTotals(b.Items)),
	}
}

func toAPIGroupSales(groups []calculator.GroupSales) []api.GroupSales {
	out := make([]api.GroupSales, len(groups))
	for i, g := range groups {
		out[i] = api.GroupSales{Key: g.Key, BillCount: g.BillCount, Totals: toAPITotals(g.Totals)}
	}
	return out
}
