package models

import "fmt"

type OrderType string

const (
	OrderTypeMarket     OrderType = "MARKET"
	OrderTypeLimit      OrderType = "LIMIT"
	OrderTypeStopMarket OrderType = "STOP_MARKET"
)

func (t OrderType) Validate() error {
	switch t {
	case OrderTypeMarket, OrderTypeLimit, OrderTypeStopMarket:
		return nil
	default:
		return fmt.Errorf("invalid order type: %s", t)
	}
}
