package models

import "time"

// Bill is a single table's tab.
//
// A bill is created open, collects lines while open, and is finalized
// (Paid) exactly once. A paid bill never changes again.
type Bill struct {
	// ID is "B" followed by a decimal sequence number.
	ID string `json:"id"`

	// TableID references the table the bill was opened on.
	TableID string `json:"tableId"`

	// WaiterName is copied from the waiter at creation time.
	WaiterName string `json:"waiterName"`

	// Items are the bill lines in the order they were first added.
	Items []BillLine `json:"items"`

	// CreatedAt is when the bill was opened.
	CreatedAt time.Time `json:"createdAt"`

	// Paid is set by finalization.
	Paid bool `json:"paid"`

	// FinalizedAt is when the bill was paid; nil while open.
	FinalizedAt *time.Time `json:"finalizedAt,omitempty"`
}

// Open reports whether the bill still accepts changes.
func (b Bill) Open() bool {
	return !b.Paid
}

// Clone returns a deep copy of the bill.
func (b Bill) Clone() Bill {
	c := b
	if b.Items != nil {
		c.Items = make([]BillLine, len(b.Items))
		copy(c.Items, b.Items)
	}
	if b.FinalizedAt != nil {
		at := *b.FinalizedAt
		c.FinalizedAt = &at
	}
	return c
}

// BillLine is a quantity-bearing snapshot of a menu item on a bill.
type BillLine struct {
	// ID is the source menu item's ID. A bill holds at most one line per ID.
	ID string `json:"id"`

	// Name, Price and GST are copied from the menu item when the line is first added.
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	GST   float64 `json:"gst"`

	// Qty is the accumulated quantity. Always positive.
	Qty int `json:"qty"`
}

// LineFor snapshots a menu item into a new bill line.
func LineFor(item MenuItem, qty int) BillLine {
	return BillLine{
		ID:    item.ID,
		Name:  item.Name,
		Price: item.Price,
		GST:   item.GST,
		Qty:   qty,
	}
}
