package models

import "fmt"

type OrderSide string

const (
	OrderSideBuy  OrderSide = "BUY"
	OrderSideSell OrderSide = "SELL"
)

func (s OrderSide) Validate() error {
	switch s {
	case OrderSideBuy, OrderSideSell:
		return nil
	default:
		return fmt.Errorf("invalid side: %s", s)
	}
}
