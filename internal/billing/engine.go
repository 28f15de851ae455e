package billing

import (
	"fmt"
	"strings"

	"github.com/mmynk/hotelbilling/internal/calculator"
	"github.com/mmynk/hotelbilling/internal/models"
	"github.com/mmynk/hotelbilling/internal/storage"
)

// CreateBill opens a new bill on a free table and marks the table occupied.
//
// A table whose current bill is still open is rejected with ErrTableOccupied;
// the existing bill is never replaced.
func (s *State) CreateBill(tableID, waiterName string) (string, error) {
	waiterName = strings.TrimSpace(waiterName)
	if waiterName == "" {
		return "", ErrWaiterRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ti := s.tableIndex(tableID)
	if ti < 0 {
		return "", fmt.Errorf("%w: %s", ErrTableNotFound, tableID)
	}

	table := &s.tables[ti]
	if current := table.CurrentBillID; current != "" {
		if bi := s.billIndex(current); bi >= 0 && s.bills[bi].Open() {
			return "", fmt.Errorf("%w: %s has %s", ErrTableOccupied, tableID, current)
		}
		s.logger.Warn("Table referenced a closed or missing bill, releasing it",
			"table_id", tableID, "bill_id", current)
	}

	bill := models.Bill{
		ID:         s.nextBillIDLocked(),
		TableID:    tableID,
		WaiterName: waiterName,
		Items:      []models.BillLine{},
		CreatedAt:  s.now().UTC(),
	}
	s.bills = append([]models.Bill{bill}, s.bills...)
	table.CurrentBillID = bill.ID

	s.persistLocked(storage.KeyBills, storage.KeyTables)
	s.metrics.BillCreated()
	s.logger.Info("Bill created", "bill_id", bill.ID, "table_id", tableID, "waiter", waiterName)

	return bill.ID, nil
}

// AddLineItem adds qty units of item to an open bill. A bill holds one line
// per menu item: adding an item already on the bill increases its quantity
// and keeps the line's original price snapshot.
func (s *State) AddLineItem(billID string, item models.MenuItem, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}
	if item.ID == "" {
		return fmt.Errorf("%w: menu item has no id", ErrMenuItemNotFound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.addLineLocked(billID, item, qty)
}

// AddMenuItemToBill looks up a menu item by ID and adds it to an open bill.
func (s *State) AddMenuItemToBill(billID, menuItemID string, qty int) error {
	if qty < 1 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mi := s.menuIndex(menuItemID)
	if mi < 0 {
		return fmt.Errorf("%w: %s", ErrMenuItemNotFound, menuItemID)
	}
	return s.addLineLocked(billID, s.menu[mi], qty)
}

func (s *State) addLineLocked(billID string, item models.MenuItem, qty int) error {
	bill, err := s.openBillLocked(billID)
	if err != nil {
		return err
	}

	merged := false
	for i := range bill.Items {
		if bill.Items[i].ID == item.ID {
			bill.Items[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		bill.Items = append(bill.Items, models.LineFor(item, qty))
	}

	s.persistLocked(storage.KeyBills)
	s.metrics.LineItemAdded(qty)
	s.logger.Debug("Line item added", "bill_id", billID, "item_id", item.ID, "qty", qty, "merged", merged)
	return nil
}

// RemoveLineItem drops the line for lineID from an open bill.
// Removing a line the bill does not have is a no-op.
func (s *State) RemoveLineItem(billID, lineID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill, err := s.openBillLocked(billID)
	if err != nil {
		return err
	}

	kept := bill.Items[:0]
	removed := false
	for _, line := range bill.Items {
		if line.ID == lineID {
			removed = true
			continue
		}
		kept = append(kept, line)
	}
	if !removed {
		return nil
	}
	bill.Items = kept

	s.persistLocked(storage.KeyBills)
	s.logger.Debug("Line item removed", "bill_id", billID, "item_id", lineID)
	return nil
}

// FinalizeBill marks a bill paid and frees the table that holds it. Both
// changes happen under one lock, so no reader sees a paid bill on an occupied
// table or a free table with an open bill.
func (s *State) FinalizeBill(billID string) (models.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bill, err := s.openBillLocked(billID)
	if err != nil {
		return models.Bill{}, err
	}

	at := s.now().UTC()
	bill.Paid = true
	bill.FinalizedAt = &at

	for i := range s.tables {
		if s.tables[i].CurrentBillID == billID {
			s.tables[i].CurrentBillID = ""
		}
	}

	totals := calculator.ComputeTotals(bill.Items)
	s.persistLocked(storage.KeyBills, storage.KeyTables)
	s.metrics.BillFinalized(totals.Total)
	s.logger.Info("Bill finalized",
		"bill_id", billID,
		"table_id", bill.TableID,
		"lines", len(bill.Items),
		"total", totals.Total,
	)

	return bill.Clone(), nil
}

// BillTotals computes the totals of one bill.
func (s *State) BillTotals(billID string) (calculator.Totals, error) {
	bill, err := s.Bill(billID)
	if err != nil {
		return calculator.Totals{}, err
	}
	return calculator.ComputeTotals(bill.Items), nil
}

// SalesSummary aggregates every paid bill.
func (s *State) SalesSummary() calculator.SalesSummary {
	return calculator.SummarizeSales(s.Bills())
}

// openBillLocked resolves a bill that still accepts changes.
func (s *State) openBillLocked(billID string) (*models.Bill, error) {
	bi := s.billIndex(billID)
	if bi < 0 {
		return nil, fmt.Errorf("%w: %s", ErrBillNotFound, billID)
	}
	bill := &s.bills[bi]
	if bill.Paid {
		return nil, fmt.Errorf("%w: %s", ErrBillFinalized, billID)
	}
	return bill, nil
}
