package models

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// PlaceOrderRequest holds the parameters for POST /fapi/v1/order. Price is
// required for LIMIT orders, StopPrice for STOP_MARKET orders; MARKET orders
// carry neither.
type PlaceOrderRequest struct {
	Symbol        string
	Side          OrderSide
	OrderType     OrderType
	Quantity      decimal.Decimal
	Price         *decimal.Decimal
	StopPrice     *decimal.Decimal
	TimeInForce   TimeInForce
	ClientOrderID string
}

func (req *PlaceOrderRequest) Validate() error {
	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		return fmt.Errorf("symbol must not be empty")
	}

	for _, c := range symbol {
		if !((c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')) {
			return fmt.Errorf("invalid symbol %q: must be alphanumeric, e.g. BTCUSDT", req.Symbol)
		}
	}

	if err := req.Side.Validate(); err != nil {
		return err
	}

	if err := req.OrderType.Validate(); err != nil {
		return err
	}

	if req.Quantity.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("quantity must be greater than 0, got %s", req.Quantity)
	}

	if req.OrderType == OrderTypeLimit && req.Price == nil {
		return fmt.Errorf("price is required for %s orders", OrderTypeLimit)
	}

	if req.OrderType == OrderTypeStopMarket && req.StopPrice == nil {
		return fmt.Errorf("stop price is required for %s orders", OrderTypeStopMarket)
	}

	if req.Price != nil && req.Price.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("price must be greater than 0, got %s", req.Price)
	}

	if req.StopPrice != nil && req.StopPrice.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("stop price must be greater than 0, got %s", req.StopPrice)
	}

	// An empty time in force falls back to GTC when the params are built.
	if req.TimeInForce != "" {
		if err := req.TimeInForce.Validate(); err != nil {
			return err
		}
	}

	return nil
}

// NormalizedSymbol returns the symbol as sent to the exchange.
func (req *PlaceOrderRequest) NormalizedSymbol() string {
	return strings.ToUpper(strings.TrimSpace(req.Symbol))
}

// Notional returns quantity * price for LIMIT orders, the order value the
// exchange enforces a minimum on. MARKET and STOP_MARKET orders have no
// price up front, so the second return is false.
func (req *PlaceOrderRequest) Notional() (decimal.Decimal, bool) {
	if req.OrderType != OrderTypeLimit || req.Price == nil {
		return decimal.Zero, false
	}

	return req.Quantity.Mul(*req.Price), true
}

// ToParams maps the request onto the flat query parameters the exchange
// expects. LIMIT orders add price and timeInForce, STOP_MARKET orders add
// stopPrice.
func (req *PlaceOrderRequest) ToParams() url.Values {
	params := url.Values{}
	params.Add("symbol", req.NormalizedSymbol())
	params.Add("side", string(req.Side))
	params.Add("type", string(req.OrderType))
	params.Add("quantity", req.Quantity.String())

	if req.OrderType == OrderTypeLimit {
		if req.Price != nil {
			params.Add("price", req.Price.String())
		}

		tif := req.TimeInForce
		if tif == "" {
			tif = TimeInForceGTC
		}
		params.Add("timeInForce", string(tif))
	}

	if req.OrderType == OrderTypeStopMarket && req.StopPrice != nil {
		params.Add("stopPrice", req.StopPrice.String())
	}

	if req.ClientOrderID != "" {
		params.Add("newClientOrderId", req.ClientOrderID)
	}

	return params
}

func (req *PlaceOrderRequest) String() string {
	display := &strings.Builder{}
	display.WriteString("Order Request:\n")

	table := tablewriter.NewWriter(display)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnSeparator("")

	table.Append([]string{"Symbol", req.NormalizedSymbol()})
	table.Append([]string{"Side", string(req.Side)})
	table.Append([]string{"Type", string(req.OrderType)})
	table.Append([]string{"Quantity", req.Quantity.String()})

	if req.Price != nil {
		table.Append([]string{"Price", req.Price.String()})
	}

	if req.StopPrice != nil {
		table.Append([]string{"Stop Price", req.StopPrice.String()})
	}

	if req.ClientOrderID != "" {
		table.Append([]string{"Client Order ID", req.ClientOrderID})
	}

	table.Render()
	return display.String()
}
