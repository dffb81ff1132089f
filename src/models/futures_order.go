package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
)

// FuturesOrder is the typed form of FuturesOrderDTO.
type FuturesOrder struct {
	OrderID       int64
	ClientOrderID string
	Symbol        string
	Status        OrderStatus
	Side          OrderSide
	Type          OrderType
	TimeInForce   TimeInForce
	Price         decimal.Decimal
	AvgPrice      decimal.Decimal
	StopPrice     decimal.Decimal
	OrigQty       decimal.Decimal
	ExecutedQty   decimal.Decimal
	CumQuote      decimal.Decimal
	UpdateTime    time.Time
}

func (o *FuturesOrder) String() string {
	display := &strings.Builder{}
	display.WriteString("Order Response:\n")

	table := tablewriter.NewWriter(display)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnSeparator("")

	table.Append([]string{"Order ID", strconv.FormatInt(o.OrderID, 10)})
	table.Append([]string{"Client Order ID", o.ClientOrderID})
	table.Append([]string{"Status", string(o.Status)})
	table.Append([]string{"Symbol", o.Symbol})
	table.Append([]string{"Side", string(o.Side)})
	table.Append([]string{"Type", string(o.Type)})
	table.Append([]string{"Orig Qty", o.OrigQty.String()})
	table.Append([]string{"Executed Qty", o.ExecutedQty.String()})
	table.Append([]string{"Avg Price", o.AvgPrice.String()})
	table.Append([]string{"Price", o.Price.String()})

	if !o.StopPrice.IsZero() {
		table.Append([]string{"Stop Price", o.StopPrice.String()})
	}

	table.Append([]string{"Time", o.UpdateTime.Format("2006-01-02 15:04:05 MST")})

	table.Render()
	return display.String()
}
