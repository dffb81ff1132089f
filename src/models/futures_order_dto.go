package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// FuturesOrderDTO mirrors the order payload returned by the exchange. Numeric
// fields arrive as JSON strings on the wire.
type FuturesOrderDTO struct {
	OrderID       int64  `json:"orderId" csv:"order_id"`
	ClientOrderID string `json:"clientOrderId" csv:"client_order_id"`
	Symbol        string `json:"symbol" csv:"symbol"`
	Status        string `json:"status" csv:"status"`
	Side          string `json:"side" csv:"side"`
	PositionSide  string `json:"positionSide" csv:"position_side"`
	Type          string `json:"type" csv:"type"`
	OrigType      string `json:"origType" csv:"-"`
	TimeInForce   string `json:"timeInForce" csv:"time_in_force"`
	Price         string `json:"price" csv:"price"`
	AvgPrice      string `json:"avgPrice" csv:"avg_price"`
	StopPrice     string `json:"stopPrice" csv:"stop_price"`
	OrigQty       string `json:"origQty" csv:"orig_qty"`
	ExecutedQty   string `json:"executedQty" csv:"executed_qty"`
	CumQuote      string `json:"cumQuote" csv:"cum_quote"`
	ReduceOnly    bool   `json:"reduceOnly" csv:"-"`
	ClosePosition bool   `json:"closePosition" csv:"-"`
	Time          int64  `json:"time" csv:"time"`
	UpdateTime    int64  `json:"updateTime" csv:"update_time"`
}

func (dto *FuturesOrderDTO) ToFuturesOrder() (*FuturesOrder, error) {
	price, err := parseWireDecimal(dto.Price)
	if err != nil {
		return nil, fmt.Errorf("FuturesOrderDTO:ToFuturesOrder(): failed to parse price: %w", err)
	}

	avgPrice, err := parseWireDecimal(dto.AvgPrice)
	if err != nil {
		return nil, fmt.Errorf("FuturesOrderDTO:ToFuturesOrder(): failed to parse avg price: %w", err)
	}

	stopPrice, err := parseWireDecimal(dto.StopPrice)
	if err != nil {
		return nil, fmt.Errorf("FuturesOrderDTO:ToFuturesOrder(): failed to parse stop price: %w", err)
	}

	origQty, err := parseWireDecimal(dto.OrigQty)
	if err != nil {
		return nil, fmt.Errorf("FuturesOrderDTO:ToFuturesOrder(): failed to parse orig qty: %w", err)
	}

	executedQty, err := parseWireDecimal(dto.ExecutedQty)
	if err != nil {
		return nil, fmt.Errorf("FuturesOrderDTO:ToFuturesOrder(): failed to parse executed qty: %w", err)
	}

	cumQuote, err := parseWireDecimal(dto.CumQuote)
	if err != nil {
		return nil, fmt.Errorf("FuturesOrderDTO:ToFuturesOrder(): failed to parse cum quote: %w", err)
	}

	return &FuturesOrder{
		OrderID:       dto.OrderID,
		ClientOrderID: dto.ClientOrderID,
		Symbol:        dto.Symbol,
		Status:        OrderStatus(dto.Status),
		Side:          OrderSide(dto.Side),
		Type:          OrderType(dto.Type),
		TimeInForce:   TimeInForce(dto.TimeInForce),
		Price:         price,
		AvgPrice:      avgPrice,
		StopPrice:     stopPrice,
		OrigQty:       origQty,
		ExecutedQty:   executedQty,
		CumQuote:      cumQuote,
		UpdateTime:    time.UnixMilli(dto.UpdateTime).UTC(),
	}, nil
}

// parseWireDecimal parses a numeric string as sent by the exchange. Fields
// the exchange leaves out decode as zero.
func parseWireDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}

	return decimal.NewFromString(s)
}
