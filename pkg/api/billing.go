package api

import "time"

type Table struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CurrentBillID string `json:"currentBillId,omitempty"`
	Occupied      bool   `json:"occupied"`
}

type MenuItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	GST   float64 `json:"gst"`
}

type Waiter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BillLine is one menu item on a bill. Amount is Price * Qty, before tax.
type BillLine struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Price  float64 `json:"price"`
	GST    float64 `json:"gst"`
	Qty    int     `json:"qty"`
	Amount float64 `json:"amount"`
}

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	TaxTotal float64 `json:"taxTotal"`
	Total    float64 `json:"total"`
}

// Bill is a bill with its totals computed at read time.
type Bill struct {
	ID          string     `json:"id"`
	TableID     string     `json:"tableId"`
	WaiterName  string     `json:"waiterName"`
	Items       []BillLine `json:"items"`
	CreatedAt   time.Time  `json:"createdAt"`
	Paid        bool       `json:"paid"`
	FinalizedAt *time.Time `json:"finalizedAt,omitempty"`
	Totals      Totals     `json:"totals"`
}

type ListTablesRequest struct{}

type ListTablesResponse struct {
	Tables []Table `json:"tables"`
}

type ListMenuRequest struct{}

type ListMenuResponse struct {
	Items []MenuItem `json:"items"`
}

type ListWaitersRequest struct{}

type ListWaitersResponse struct {
	Waiters []Waiter `json:"waiters"`
}

type CreateBillRequest struct {
	TableID    string `json:"tableId"`
	WaiterName string `json:"waiterName"`
}

type CreateBillResponse struct {
	Bill Bill `json:"bill"`
}

type AddLineItemRequest struct {
	BillID     string `json:"billId"`
	MenuItemID string `json:"menuItemId"`
	Qty        int    `json:"qty"`
}

type AddLineItemResponse struct {
	Bill Bill `json:"bill"`
}

type RemoveLineItemRequest struct {
	BillID string `json:"billId"`
	LineID string `json:"lineId"`
}

type RemoveLineItemResponse struct {
	Bill Bill `json:"bill"`
}

type FinalizeBillRequest struct {
	BillID string `json:"billId"`
}

type FinalizeBillResponse struct {
	Bill Bill `json:"bill"`
}

type GetBillRequest struct {
	BillID string `json:"billId"`
}

type GetBillResponse struct {
	Bill Bill `json:"bill"`
}

// ListBillsRequest lists bills newest first. OpenOnly drops paid bills.
type ListBillsRequest struct {
	OpenOnly bool `json:"openOnly,omitempty"`
}

type ListBillsResponse struct {
	Bills []Bill `json:"bills"`
}
