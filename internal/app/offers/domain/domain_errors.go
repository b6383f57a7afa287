package domain

import "errors"

// Domain errors as sentinel values
var (
	ErrItemNotFound    = errors.New("catalog item not found")
	ErrItemNoSaleEnd   = errors.New("catalog item has no sale end date")
	ErrMoneyOverflow   = errors.New("money value exceeds storage bounds")
	ErrInvalidPageSize = errors.New("page size must be positive")
	ErrUnknownTier     = errors.New("unknown offer tier")
)
