package api

// User is an account as listed to admins. Password hashes never leave the server.
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// AddMenuItemRequest adds a menu item. ID is optional and generated when empty.
type AddMenuItemRequest struct {
	ID    string  `json:"id,omitempty"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
	GST   float64 `json:"gst"`
}

type AddMenuItemResponse struct {
	Item MenuItem `json:"item"`
}

// UpdateMenuItemRequest changes only the fields that are set.
type UpdateMenuItemRequest struct {
	ID    string   `json:"id"`
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
	GST   *float64 `json:"gst,omitempty"`
}

type UpdateMenuItemResponse struct {
	Item MenuItem `json:"item"`
}

type DeleteMenuItemRequest struct {
	ID string `json:"id"`
}

type DeleteMenuItemResponse struct{}

type AddTableRequest struct {
	Name string `json:"name"`
}

type AddTableResponse struct {
	Table Table `json:"table"`
}

type AddWaiterRequest struct {
	Name string `json:"name"`
}

type AddWaiterResponse struct {
	Waiter Waiter `json:"waiter"`
}

type AddUserRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// AddUserResponse reports the outcome as a value; a taken id is OK=false,
// not an RPC error.
type AddUserResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

type ListUsersRequest struct{}

type ListUsersResponse struct {
	Users []User `json:"users"`
}

type GroupSales struct {
	Key       string `json:"key"`
	BillCount int    `json:"billCount"`
	Totals    Totals `json:"totals"`
}

type GetSalesReportRequest struct{}

type GetSalesReportResponse struct {
	BillCount int          `json:"billCount"`
	Totals    Totals       `json:"totals"`
	ByWaiter  []GroupSales `json:"byWaiter"`
	ByTable   []GroupSales `json:"byTable"`
}
