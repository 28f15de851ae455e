package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/hotelbilling/internal/auth"
	"github.com/mmynk/hotelbilling/internal/billing"
)

// connectError maps a domain error onto the matching connect code.
// Unknown errors become CodeInternal.
func connectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}
	return connect.NewError(codeOf(err), err)
}

func codeOf(err error) connect.Code {
	switch {
	case errors.Is(err, billing.ErrBillNotFound),
		errors.Is(err, billing.ErrTableNotFound),
		errors.Is(err, billing.ErrMenuItemNotFound):
		return connect.CodeNotFound
	case errors.Is(err, billing.ErrBillFinalized),
		errors.Is(err, billing.ErrTableOccupied):
		return connect.CodeFailedPrecondition
	case errors.Is(err, billing.ErrDuplicateID),
		errors.Is(err, billing.ErrDuplicateUser):
		return connect.CodeAlreadyExists
	case errors.Is(err, billing.ErrWaiterRequired),
		errors.Is(err, billing.ErrInvalidQuantity),
		errors.Is(err, billing.ErrNameRequired),
		errors.Is(err, billing.ErrInvalidPrice),
		errors.Is(err, billing.ErrInvalidGST),
		errors.Is(err, billing.ErrUserFieldsRequired),
		errors.Is(err, billing.ErrInvalidRole):
		return connect.CodeInvalidArgument
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return connect.CodeUnauthenticated
	default:
		return connect.CodeInternal
	}
}
