package models

type OrderStatus string

const (
	OrderStatusNew             OrderStatus = "NEW"
	OrderStatusPartiallyFilled OrderStatus = "PARTIALLY_FILLED"
	OrderStatusFilled          OrderStatus = "FILLED"
	OrderStatusCanceled        OrderStatus = "CANCELED"
	OrderStatusRejected        OrderStatus = "REJECTED"
	OrderStatusExpired         OrderStatus = "EXPIRED"
)

// IsPlaced reports whether the exchange accepted the order onto its book or
// filled it outright.
func (s OrderStatus) IsPlaced() bool {
	switch s {
	case OrderStatusNew, OrderStatusPartiallyFilled, OrderStatusFilled:
		return true
	default:
		return false
	}
}
