package field

import "errors"

// Domain errors for field operations.
var (
	// ErrInsufficientCharges indicates an operation needs more charges than the set holds.
	ErrInsufficientCharges = errors.New("field: insufficient charges")

	// ErrInvalidCharge indicates a charge with a NaN or Inf position or value.
	ErrInvalidCharge = errors.New("field: invalid charge (NaN or Inf detected)")
)
