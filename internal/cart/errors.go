package cart

import "errors"

var (
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrLineNotFound      = errors.New("line_item_not_found")
	ErrEmptyCart         = errors.New("cart_empty")
	ErrNoPaymentMethod   = errors.New("payment_method_not_selected")
	ErrReferenceRequired = errors.New("payment_reference_required")
)
