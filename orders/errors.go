package orders

import "errors"

// Contract errors of the order pipeline. Everything before the reservation is
// side-effect free; ErrCommitFailed means the reservation was compensated.
var (
	ErrInvalidInput         = errors.New("invalid order input")
	ErrProductNotFound      = errors.New("product not found")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrDuplicateOrderNumber = errors.New("duplicate order number")
	ErrCommitFailed         = errors.New("order commit failed")
)
