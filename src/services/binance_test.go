package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jiaming2012/futures-bot/src/models"
)

const (
	testAPIKey    = "test-api-key"
	testAPISecret = "test-api-secret"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *BinanceClient {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewBinanceClient(server.URL, testAPIKey, testAPISecret)
	require.Nil(t, err)

	return client
}

func marketBuyRequest() *models.PlaceOrderRequest {
	return &models.PlaceOrderRequest{
		Symbol:    "BTCUSDT",
		Side:      models.OrderSideBuy,
		OrderType: models.OrderTypeMarket,
		Quantity:  decimal.RequireFromString("0.002"),
	}
}

func TestNewBinanceClient(t *testing.T) {
	t.Run("missing api key", func(t *testing.T) {
		_, err := NewBinanceClient(TestnetBaseURL, "", "secret")
		assert.NotNil(t, err)
	})

	t.Run("missing api secret", func(t *testing.T) {
		_, err := NewBinanceClient(TestnetBaseURL, "key", "")
		assert.NotNil(t, err)
	})

	t.Run("valid credentials", func(t *testing.T) {
		client, err := NewBinanceClient(TestnetBaseURL, "key", "secret")
		assert.Nil(t, err)
		assert.NotNil(t, client)
	})
}

func TestPlaceOrder(t *testing.T) {
	t.Run("sends a signed POST with the order parameters", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/fapi/v1/order", r.URL.Path)
			assert.Equal(t, testAPIKey, r.Header.Get("X-MBX-APIKEY"))
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))

			query := r.URL.Query()
			assert.Equal(t, "BTCUSDT", query.Get("symbol"))
			assert.Equal(t, "BUY", query.Get("side"))
			assert.Equal(t, "MARKET", query.Get("type"))
			assert.Equal(t, "0.002", query.Get("quantity"))
			assert.Equal(t, "5000", query.Get("recvWindow"))
			assert.NotEmpty(t, query.Get("timestamp"))

			// The signature must cover exactly the query string that precedes it.
			rawQuery := r.URL.RawQuery
			idx := strings.LastIndex(rawQuery, "&signature=")
			if assert.NotEqual(t, -1, idx) {
				signedPayload := rawQuery[:idx]
				signature := rawQuery[idx+len("&signature="):]
				assert.Equal(t, NewSigner(testAPISecret).Sign(signedPayload), signature)
			}

			w.Write([]byte(`{
				"orderId": 4055238219,
				"symbol": "BTCUSDT",
				"status": "NEW",
				"clientOrderId": "bot-7f3a",
				"price": "0",
				"avgPrice": "0.00",
				"origQty": "0.002",
				"executedQty": "0",
				"cumQuote": "0",
				"timeInForce": "GTC",
				"type": "MARKET",
				"side": "BUY",
				"updateTime": 1723708800000
			}`))
		})

		dto, err := client.PlaceOrder(context.Background(), marketBuyRequest())
		require.Nil(t, err)

		assert.Equal(t, int64(4055238219), dto.OrderID)
		assert.Equal(t, "NEW", dto.Status)
		assert.Equal(t, "BTCUSDT", dto.Symbol)
	})

	t.Run("surfaces the exchange error message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"code": -1121, "msg": "Invalid symbol."}`))
		})

		_, err := client.PlaceOrder(context.Background(), marketBuyRequest())
		require.NotNil(t, err)

		var apiErr *models.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, int64(-1121), apiErr.Code)
		assert.Contains(t, err.Error(), "Invalid symbol.")
	})

	t.Run("treats an error body behind a 2xx status as an error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code": -2019, "msg": "Margin is insufficient."}`))
		})

		_, err := client.PlaceOrder(context.Background(), marketBuyRequest())
		require.NotNil(t, err)

		var apiErr *models.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Contains(t, apiErr.Msg, "Margin is insufficient.")
	})

	t.Run("rejects an invalid request before any network call", func(t *testing.T) {
		hits := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			hits++
		})

		req := marketBuyRequest()
		req.OrderType = models.OrderTypeLimit // no price set

		_, err := client.PlaceOrder(context.Background(), req)
		assert.NotNil(t, err)
		assert.Equal(t, 0, hits)
	})
}

func TestGetAccount(t *testing.T) {
	t.Run("fetches balances over a signed GET", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/fapi/v2/account", r.URL.Path)
			assert.NotEmpty(t, r.URL.Query().Get("timestamp"))
			assert.NotEmpty(t, r.URL.Query().Get("signature"))

			w.Write([]byte(`{
				"totalWalletBalance": "15000.00",
				"totalUnrealizedProfit": "0.00",
				"totalMarginBalance": "15000.00",
				"availableBalance": "14500.00",
				"assets": [
					{"asset": "USDT", "walletBalance": "15000.00", "unrealizedProfit": "0.00", "marginBalance": "15000.00", "availableBalance": "14500.00"},
					{"asset": "BTC", "walletBalance": "0.00000000", "unrealizedProfit": "0.00", "marginBalance": "0.00", "availableBalance": "0.00"}
				]
			}`))
		})

		account, err := client.GetAccount(context.Background())
		require.Nil(t, err)

		assert.Equal(t, "15000.00", account.TotalWalletBalance)
		require.Len(t, account.Assets, 2)
		assert.True(t, account.Assets[0].HasBalance())
		assert.False(t, account.Assets[1].HasBalance())
	})
}

func TestGetExchangeInfo(t *testing.T) {
	t.Run("fetches symbol metadata without signing", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/fapi/v1/exchangeInfo", r.URL.Path)
			assert.Empty(t, r.URL.Query().Get("timestamp"))
			assert.Empty(t, r.URL.Query().Get("signature"))

			w.Write([]byte(`{
				"timezone": "UTC",
				"serverTime": 1723708800000,
				"symbols": [
					{
						"symbol": "BTCUSDT",
						"status": "TRADING",
						"baseAsset": "BTC",
						"quoteAsset": "USDT",
						"filters": [
							{"filterType": "LOT_SIZE", "minQty": "0.001", "maxQty": "1000", "stepSize": "0.001"},
							{"filterType": "MIN_NOTIONAL", "notional": "100"}
						]
					}
				]
			}`))
		})

		info, err := client.GetExchangeInfo(context.Background())
		require.Nil(t, err)

		symbolInfo, found := info.FindSymbol("btcusdt")
		require.True(t, found)
		assert.Equal(t, "BTC", symbolInfo.BaseAsset)
	})
}

func TestCancelOrder(t *testing.T) {
	t.Run("sends a signed DELETE with the order id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/fapi/v1/order", r.URL.Path)
			assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
			assert.Equal(t, "4055238219", r.URL.Query().Get("orderId"))
			assert.NotEmpty(t, r.URL.Query().Get("signature"))

			w.Write([]byte(`{
				"orderId": 4055238219,
				"symbol": "BTCUSDT",
				"status": "CANCELED",
				"clientOrderId": "bot-7f3a",
				"price": "60000.00",
				"avgPrice": "0.00",
				"origQty": "0.002",
				"executedQty": "0",
				"cumQuote": "0",
				"timeInForce": "GTC",
				"type": "LIMIT",
				"side": "BUY",
				"updateTime": 1723708800000
			}`))
		})

		dto, err := client.CancelOrder(context.Background(), "btcusdt", 4055238219, "")
		require.Nil(t, err)
		assert.Equal(t, "CANCELED", dto.Status)
	})

	t.Run("sends the client order id when no order id is known", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "bot-7f3a", r.URL.Query().Get("origClientOrderId"))
			assert.Empty(t, r.URL.Query().Get("orderId"))

			w.Write([]byte(`{"orderId": 4055238219, "symbol": "BTCUSDT", "status": "CANCELED"}`))
		})

		_, err := client.CancelOrder(context.Background(), "BTCUSDT", 0, "bot-7f3a")
		assert.Nil(t, err)
	})

	t.Run("requires an order id or a client order id", func(t *testing.T) {
		hits := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			hits++
		})

		_, err := client.CancelOrder(context.Background(), "BTCUSDT", 0, "")
		assert.NotNil(t, err)
		assert.Equal(t, 0, hits)
	})
}

func TestGetOrders(t *testing.T) {
	t.Run("fetches recent orders for a symbol", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/fapi/v1/allOrders", r.URL.Path)
			assert.Equal(t, "BTCUSDT", r.URL.Query().Get("symbol"))
			assert.Equal(t, "2", r.URL.Query().Get("limit"))

			w.Write([]byte(`[
				{"orderId": 1, "symbol": "BTCUSDT", "status": "FILLED", "side": "BUY", "type": "MARKET", "origQty": "0.002", "executedQty": "0.002"},
				{"orderId": 2, "symbol": "BTCUSDT", "status": "NEW", "side": "SELL", "type": "LIMIT", "origQty": "0.002", "executedQty": "0"}
			]`))
		})

		orders, err := client.GetOrders(context.Background(), "BTCUSDT", 2)
		require.Nil(t, err)

		require.Len(t, orders, 2)
		assert.Equal(t, int64(1), orders[0].OrderID)
		assert.Equal(t, "NEW", orders[1].Status)
	})
}

func TestPing(t *testing.T) {
	t.Run("reachable endpoint", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/fapi/v1/ping", r.URL.Path)
			w.Write([]byte(`{}`))
		})

		assert.Nil(t, client.Ping(context.Background()))
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		client, err := NewBinanceClient("http://127.0.0.1:1", "key", "secret")
		require.Nil(t, err)

		assert.NotNil(t, client.Ping(context.Background()))
	})
}
