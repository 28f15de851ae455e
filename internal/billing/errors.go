package billing

import "errors"

// Reference errors. Nothing is mutated when one is returned.
var (
	ErrBillNotFound     = errors.New("bill not found")
	ErrTableNotFound    = errors.New("table not found")
	ErrMenuItemNotFound = errors.New("menu item not found")
)

// State-machine errors.
var (
	ErrBillFinalized = errors.New("bill is finalized")
	ErrTableOccupied = errors.New("table already has an open bill")
)

// Validation errors.
var (
	ErrWaiterRequired     = errors.New("waiter name is required")
	ErrInvalidQuantity    = errors.New("quantity must be a positive integer")
	ErrNameRequired       = errors.New("name is required")
	ErrInvalidPrice       = errors.New("price must not be negative")
	ErrInvalidGST         = errors.New("gst rate must be in [0, 1)")
	ErrDuplicateID        = errors.New("id already exists")
	ErrUserFieldsRequired = errors.New("user id, name and password are required")
	ErrInvalidRole        = errors.New("role must be admin or staff")
)

// ErrDuplicateUser is returned by AddUser when the login id is taken.
var ErrDuplicateUser = errors.New("user id already exists")
