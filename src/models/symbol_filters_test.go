package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const filtersFixture = `
symbols:
  BTCUSDT:
    min_qty: "0.001"
    step_size: "0.001"
    tick_size: "0.10"
    min_notional: "100"
  ETHUSDT:
    min_qty: "0.01"
    step_size: "0.01"
`

func loadFiltersFixture(t *testing.T) *SymbolFilters {
	t.Helper()

	var cfg SymbolFiltersYAML
	require.Nil(t, yaml.Unmarshal([]byte(filtersFixture), &cfg))

	filters, err := cfg.ToSymbolFilters()
	require.Nil(t, err)

	return filters
}

func TestSymbolFiltersCheckOrder(t *testing.T) {
	filters := loadFiltersFixture(t)

	t.Run("order within limits passes", func(t *testing.T) {
		req := PlaceOrderRequest{
			Symbol:    "BTCUSDT",
			Side:      OrderSideBuy,
			OrderType: OrderTypeLimit,
			Quantity:  decimal.RequireFromString("0.002"),
			Price:     decimalPtr("60000"),
		}

		assert.Nil(t, filters.CheckOrder(&req))
	})

	t.Run("quantity below the minimum fails", func(t *testing.T) {
		req := PlaceOrderRequest{
			Symbol:    "BTCUSDT",
			Side:      OrderSideBuy,
			OrderType: OrderTypeMarket,
			Quantity:  decimal.RequireFromString("0.0005"),
		}

		err := filters.CheckOrder(&req)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "below the minimum")
	})

	t.Run("quantity off the step size fails", func(t *testing.T) {
		req := PlaceOrderRequest{
			Symbol:    "BTCUSDT",
			Side:      OrderSideBuy,
			OrderType: OrderTypeMarket,
			Quantity:  decimal.RequireFromString("0.0015"),
		}

		err := filters.CheckOrder(&req)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "step size")
	})

	t.Run("limit order below the min notional fails", func(t *testing.T) {
		req := PlaceOrderRequest{
			Symbol:    "BTCUSDT",
			Side:      OrderSideBuy,
			OrderType: OrderTypeLimit,
			Quantity:  decimal.RequireFromString("0.001"),
			Price:     decimalPtr("50000"),
		}

		err := filters.CheckOrder(&req)
		assert.NotNil(t, err)
		assert.Contains(t, err.Error(), "notional")
	})

	t.Run("market order skips the notional check", func(t *testing.T) {
		req := PlaceOrderRequest{
			Symbol:    "BTCUSDT",
			Side:      OrderSideBuy,
			OrderType: OrderTypeMarket,
			Quantity:  decimal.RequireFromString("0.001"),
		}

		assert.Nil(t, filters.CheckOrder(&req))
	})

	t.Run("symbol without an entry passes", func(t *testing.T) {
		req := PlaceOrderRequest{
			Symbol:    "DOGEUSDT",
			Side:      OrderSideBuy,
			OrderType: OrderTypeMarket,
			Quantity:  decimal.RequireFromString("7"),
		}

		assert.Nil(t, filters.CheckOrder(&req))
	})

	t.Run("symbol lookup ignores case", func(t *testing.T) {
		req := PlaceOrderRequest{
			Symbol:    "ethusdt",
			Side:      OrderSideSell,
			OrderType: OrderTypeMarket,
			Quantity:  decimal.RequireFromString("0.005"),
		}

		assert.NotNil(t, filters.CheckOrder(&req))
	})
}

func TestNewSymbolFiltersYAML(t *testing.T) {
	info := ExchangeInfoDTO{
		Symbols: []SymbolInfoDTO{
			{
				Symbol: "BTCUSDT",
				Filters: []SymbolFilterDTO{
					{FilterType: FilterTypePrice, MinPrice: "556.80", MaxPrice: "4529764", TickSize: "0.10"},
					{FilterType: FilterTypeLotSize, MinQty: "0.001", MaxQty: "1000", StepSize: "0.001"},
					{FilterType: FilterTypeMinNotional, Notional: "100"},
				},
			},
		},
	}

	cfg := NewSymbolFiltersYAML(&info)
	require.Contains(t, cfg.Symbols, "BTCUSDT")

	limits := cfg.Symbols["BTCUSDT"]
	assert.Equal(t, "0.001", limits.MinQty)
	assert.Equal(t, "0.001", limits.StepSize)
	assert.Equal(t, "0.10", limits.TickSize)
	assert.Equal(t, "100", limits.MinNotional)

	t.Run("snapshot round-trips through yaml", func(t *testing.T) {
		data, err := yaml.Marshal(cfg)
		require.Nil(t, err)

		var reloaded SymbolFiltersYAML
		require.Nil(t, yaml.Unmarshal(data, &reloaded))

		filters, err := reloaded.ToSymbolFilters()
		require.Nil(t, err)

		req := PlaceOrderRequest{
			Symbol:    "BTCUSDT",
			Side:      OrderSideBuy,
			OrderType: OrderTypeMarket,
			Quantity:  decimal.RequireFromString("0.0001"),
		}

		assert.NotNil(t, filters.CheckOrder(&req))
	})
}
