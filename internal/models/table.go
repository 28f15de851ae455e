package models

// Table represents a dining table.
type Table struct {
	// ID is the unique identifier ("T1", "T2", ...).
	ID string `json:"id"`

	// Name is the display name (e.g. "Table 4", "Patio").
	Name string `json:"name"`

	// CurrentBillID references the table's open bill. Empty means the table is free.
	CurrentBillID string `json:"currentBillId"`
}

// Occupied reports whether the table has an open bill.
func (t Table) Occupied() bool {
	return t.CurrentBillID != ""
}

// Waiter is a staff member bills are attributed to.
// Bills store the waiter's name, not the ID.
type Waiter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
