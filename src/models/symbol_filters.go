package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// SymbolFiltersYAML is the on-disk form of a cached subset of the exchange
// trading rules, keyed by symbol. A snapshot can be written from live
// exchange info and loaded later for offline pre-trade checks.
//
//	symbols:
//	  BTCUSDT:
//	    min_qty: "0.001"
//	    step_size: "0.001"
//	    tick_size: "0.10"
//	    min_notional: "100"
type SymbolFiltersYAML struct {
	Symbols map[string]SymbolLimitsYAML `yaml:"symbols"`
}

type SymbolLimitsYAML struct {
	MinQty      string `yaml:"min_qty,omitempty"`
	StepSize    string `yaml:"step_size,omitempty"`
	TickSize    string `yaml:"tick_size,omitempty"`
	MinNotional string `yaml:"min_notional,omitempty"`
}

// NewSymbolFiltersYAML extracts the filter subset the bot checks locally
// from live exchange info.
func NewSymbolFiltersYAML(info *ExchangeInfoDTO) *SymbolFiltersYAML {
	cfg := &SymbolFiltersYAML{Symbols: make(map[string]SymbolLimitsYAML, len(info.Symbols))}

	for i := range info.Symbols {
		s := &info.Symbols[i]
		limits := SymbolLimitsYAML{}

		if f, found := s.findFilter(FilterTypeLotSize); found {
			limits.MinQty = f.MinQty
			limits.StepSize = f.StepSize
		}

		if f, found := s.findFilter(FilterTypePrice); found {
			limits.TickSize = f.TickSize
		}

		if f, found := s.findFilter(FilterTypeMinNotional); found {
			limits.MinNotional = f.Notional
		}

		cfg.Symbols[s.Symbol] = limits
	}

	return cfg
}

func (cfg *SymbolFiltersYAML) ToSymbolFilters() (*SymbolFilters, error) {
	filters := &SymbolFilters{limits: make(map[string]SymbolLimits, len(cfg.Symbols))}

	for symbol, limitsYAML := range cfg.Symbols {
		limits := SymbolLimits{}

		var err error
		if limits.MinQty, err = parseWireDecimal(limitsYAML.MinQty); err != nil {
			return nil, fmt.Errorf("SymbolFiltersYAML:ToSymbolFilters(): invalid min_qty for %s: %w", symbol, err)
		}

		if limits.StepSize, err = parseWireDecimal(limitsYAML.StepSize); err != nil {
			return nil, fmt.Errorf("SymbolFiltersYAML:ToSymbolFilters(): invalid step_size for %s: %w", symbol, err)
		}

		if limits.TickSize, err = parseWireDecimal(limitsYAML.TickSize); err != nil {
			return nil, fmt.Errorf("SymbolFiltersYAML:ToSymbolFilters(): invalid tick_size for %s: %w", symbol, err)
		}

		if limits.MinNotional, err = parseWireDecimal(limitsYAML.MinNotional); err != nil {
			return nil, fmt.Errorf("SymbolFiltersYAML:ToSymbolFilters(): invalid min_notional for %s: %w", symbol, err)
		}

		filters.limits[strings.ToUpper(symbol)] = limits
	}

	return filters, nil
}

// SymbolFilters holds parsed per-symbol trading rules for local pre-trade
// checks. The exchange enforces the same rules server-side; symbols without
// an entry are passed through untouched.
type SymbolFilters struct {
	limits map[string]SymbolLimits
}

type SymbolLimits struct {
	MinQty      decimal.Decimal
	StepSize    decimal.Decimal
	TickSize    decimal.Decimal
	MinNotional decimal.Decimal
}

// CheckOrder applies the cached rules to a validated order request.
func (f *SymbolFilters) CheckOrder(req *PlaceOrderRequest) error {
	symbol := req.NormalizedSymbol()

	limits, found := f.limits[symbol]
	if !found {
		return nil
	}

	if !limits.MinQty.IsZero() && req.Quantity.LessThan(limits.MinQty) {
		return fmt.Errorf("quantity %s is below the minimum %s for %s", req.Quantity, limits.MinQty, symbol)
	}

	if !limits.StepSize.IsZero() && !req.Quantity.Mod(limits.StepSize).IsZero() {
		return fmt.Errorf("quantity %s does not conform to the step size %s for %s", req.Quantity, limits.StepSize, symbol)
	}

	if notional, priced := req.Notional(); priced && !limits.MinNotional.IsZero() {
		if notional.LessThan(limits.MinNotional) {
			return fmt.Errorf("notional %s (quantity x price) is below the minimum %s for %s", notional, limits.MinNotional, symbol)
		}
	}

	return nil
}
