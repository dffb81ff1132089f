package models

import (
	"strings"

	"github.com/olekukonko/tablewriter"
)

const (
	FilterTypePrice       = "PRICE_FILTER"
	FilterTypeLotSize     = "LOT_SIZE"
	FilterTypeMinNotional = "MIN_NOTIONAL"
)

// ExchangeInfoDTO mirrors GET /fapi/v1/exchangeInfo, trimmed to the fields
// the bot consumes.
type ExchangeInfoDTO struct {
	Timezone   string          `json:"timezone"`
	ServerTime int64           `json:"serverTime"`
	Symbols    []SymbolInfoDTO `json:"symbols"`
}

type SymbolInfoDTO struct {
	Symbol            string            `json:"symbol"`
	Status            string            `json:"status"`
	BaseAsset         string            `json:"baseAsset"`
	QuoteAsset        string            `json:"quoteAsset"`
	PricePrecision    int               `json:"pricePrecision"`
	QuantityPrecision int               `json:"quantityPrecision"`
	Filters           []SymbolFilterDTO `json:"filters"`
}

// SymbolFilterDTO is one entry of a symbol's filters array. The exchange
// sends a heterogeneous list keyed by filterType; fields that do not apply
// to a given type are empty.
type SymbolFilterDTO struct {
	FilterType string `json:"filterType"`
	MinPrice   string `json:"minPrice,omitempty"`
	MaxPrice   string `json:"maxPrice,omitempty"`
	TickSize   string `json:"tickSize,omitempty"`
	MinQty     string `json:"minQty,omitempty"`
	MaxQty     string `json:"maxQty,omitempty"`
	StepSize   string `json:"stepSize,omitempty"`
	Notional   string `json:"notional,omitempty"`
}

// FindSymbol looks up a symbol's metadata by name, case-insensitively.
func (info *ExchangeInfoDTO) FindSymbol(symbol string) (*SymbolInfoDTO, bool) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))

	for i := range info.Symbols {
		if info.Symbols[i].Symbol == symbol {
			return &info.Symbols[i], true
		}
	}

	return nil, false
}

func (s *SymbolInfoDTO) findFilter(filterType string) (SymbolFilterDTO, bool) {
	for _, f := range s.Filters {
		if f.FilterType == filterType {
			return f, true
		}
	}

	return SymbolFilterDTO{}, false
}

func (s *SymbolInfoDTO) String() string {
	display := &strings.Builder{}
	display.WriteString("Symbol " + s.Symbol + " (" + s.BaseAsset + "/" + s.QuoteAsset + ", " + s.Status + "):\n")

	table := tablewriter.NewWriter(display)
	table.SetHeader([]string{"Filter", "Min", "Max", "Step"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)

	if f, found := s.findFilter(FilterTypePrice); found {
		table.Append([]string{"Price", f.MinPrice, f.MaxPrice, f.TickSize})
	}

	if f, found := s.findFilter(FilterTypeLotSize); found {
		table.Append([]string{"Lot size", f.MinQty, f.MaxQty, f.StepSize})
	}

	if f, found := s.findFilter(FilterTypeMinNotional); found {
		table.Append([]string{"Notional", f.Notional, "", ""})
	}

	table.Render()
	return display.String()
}
