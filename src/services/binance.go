package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/jiaming2012/futures-bot/src/models"
)

// TestnetBaseURL is the Binance USDT-M futures paper-trading environment. It
// is API-compatible with production but settles against fake funds.
const TestnetBaseURL = "https://testnet.binancefuture.com"

const defaultRecvWindow = 5000 * time.Millisecond

// BinanceClient is a thin wrapper around the Binance USDT-M futures REST API.
// Every call is a single synchronous request; nothing is retried.
type BinanceClient struct {
	baseURL    string
	apiKey     string
	signer     *Signer
	httpClient *http.Client
	limiter    *rate.Limiter
	recvWindow time.Duration
}

func NewBinanceClient(baseURL, apiKey, apiSecret string) (*BinanceClient, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("NewBinanceClient: api key and secret must not be empty")
	}

	return &BinanceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		signer:  NewSigner(apiSecret),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		// The testnet allows 2400 request weight per minute; stay well under.
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
		recvWindow: defaultRecvWindow,
	}, nil
}

// request executes one HTTP call against the exchange. Signed requests get
// timestamp and recvWindow added, then a signature over the canonical query
// string appended as the final parameter, so the server verifies exactly the
// bytes that were signed.
func (c *BinanceClient) request(ctx context.Context, method, endpoint string, params url.Values, signed bool) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request: rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}

	queryString := params.Encode()

	if signed {
		params.Set("timestamp", strconv.FormatInt(time.Now().UnixMilli(), 10))
		params.Set("recvWindow", strconv.FormatInt(c.recvWindow.Milliseconds(), 10))

		queryString = params.Encode()
		queryString += "&signature=" + c.signer.Sign(queryString)
	}

	fullURL := c.baseURL + endpoint
	if queryString != "" {
		fullURL += "?" + queryString
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("request: failed to create request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	req.Header.Add("X-MBX-APIKEY", c.apiKey)

	if method == http.MethodPost {
		req.Header.Add("Content-Type", "application/x-www-form-urlencoded")
	}

	log.Debugf(">> %s %s", method, endpoint)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request: %s %s failed: %w", method, endpoint, err)
	}

	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("request: failed to read response body: %w", err)
	}

	log.Debugf("<< %s %s | status: %s", method, endpoint, res.Status)

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		if apiErr := parseAPIError(body); apiErr != nil {
			return nil, apiErr
		}

		return nil, fmt.Errorf("request: %s %s returned %s: %s", method, endpoint, res.Status, string(body))
	}

	// Some endpoints report errors with a 2xx status and an error body.
	if apiErr := parseAPIError(body); apiErr != nil {
		return nil, apiErr
	}

	return body, nil
}

// parseAPIError extracts the exchange error payload from a response body.
// Returns nil when the body does not carry one; the exchange uses code 200
// for success envelopes and negative codes for errors.
func parseAPIError(body []byte) *models.APIError {
	var apiErr models.APIError
	if err := json.Unmarshal(body, &apiErr); err != nil {
		return nil
	}

	if apiErr.Code == 0 || apiErr.Code == 200 {
		return nil
	}

	return &apiErr
}

// Ping checks connectivity to the REST endpoint.
func (c *BinanceClient) Ping(ctx context.Context) error {
	if _, err := c.request(ctx, http.MethodGet, "/fapi/v1/ping", nil, false); err != nil {
		return fmt.Errorf("Ping: %w", err)
	}

	return nil
}

// GetExchangeInfo fetches the current trading rules and symbol metadata.
func (c *BinanceClient) GetExchangeInfo(ctx context.Context) (*models.ExchangeInfoDTO, error) {
	body, err := c.request(ctx, http.MethodGet, "/fapi/v1/exchangeInfo", nil, false)
	if err != nil {
		return nil, fmt.Errorf("GetExchangeInfo: %w", err)
	}

	var dto models.ExchangeInfoDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("GetExchangeInfo: failed to decode response: %w", err)
	}

	return &dto, nil
}

// GetAccount fetches wallet balances for the account behind the API key.
func (c *BinanceClient) GetAccount(ctx context.Context) (*models.AccountDTO, error) {
	body, err := c.request(ctx, http.MethodGet, "/fapi/v2/account", nil, true)
	if err != nil {
		return nil, fmt.Errorf("GetAccount: %w", err)
	}

	var dto models.AccountDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("GetAccount: failed to decode response: %w", err)
	}

	return &dto, nil
}

// PlaceOrder submits a new order. The request is validated before anything
// goes over the wire.
func (c *BinanceClient) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest) (*models.FuturesOrderDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("PlaceOrder: %w", err)
	}

	log.Infof("PlaceOrder: placing %s %s order | symbol=%s qty=%s price=%v stopPrice=%v",
		req.Side, req.OrderType, req.NormalizedSymbol(), req.Quantity, req.Price, req.StopPrice)

	body, err := c.request(ctx, http.MethodPost, "/fapi/v1/order", req.ToParams(), true)
	if err != nil {
		return nil, fmt.Errorf("PlaceOrder: %w", err)
	}

	var dto models.FuturesOrderDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("PlaceOrder: failed to decode response: %w", err)
	}

	log.Infof("PlaceOrder: exchange accepted order | orderId=%d status=%s", dto.OrderID, dto.Status)

	return &dto, nil
}

// CancelOrder cancels an open order by exchange order id or client order id.
func (c *BinanceClient) CancelOrder(ctx context.Context, symbol string, orderID int64, clientOrderID string) (*models.FuturesOrderDTO, error) {
	if orderID == 0 && clientOrderID == "" {
		return nil, fmt.Errorf("CancelOrder: either an order id or a client order id is required")
	}

	params := url.Values{}
	params.Add("symbol", strings.ToUpper(strings.TrimSpace(symbol)))

	if orderID != 0 {
		params.Add("orderId", strconv.FormatInt(orderID, 10))
	}

	if clientOrderID != "" {
		params.Add("origClientOrderId", clientOrderID)
	}

	body, err := c.request(ctx, http.MethodDelete, "/fapi/v1/order", params, true)
	if err != nil {
		return nil, fmt.Errorf("CancelOrder: %w", err)
	}

	var dto models.FuturesOrderDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("CancelOrder: failed to decode response: %w", err)
	}

	log.Infof("CancelOrder: canceled order | orderId=%d status=%s", dto.OrderID, dto.Status)

	return &dto, nil
}

// GetOrders fetches up to limit orders for a symbol, oldest first.
func (c *BinanceClient) GetOrders(ctx context.Context, symbol string, limit int) ([]*models.FuturesOrderDTO, error) {
	params := url.Values{}
	params.Add("symbol", strings.ToUpper(strings.TrimSpace(symbol)))

	if limit > 0 {
		params.Add("limit", strconv.Itoa(limit))
	}

	body, err := c.request(ctx, http.MethodGet, "/fapi/v1/allOrders", params, true)
	if err != nil {
		return nil, fmt.Errorf("GetOrders: %w", err)
	}

	var dtos []*models.FuturesOrderDTO
	if err := json.Unmarshal(body, &dtos); err != nil {
		return nil, fmt.Errorf("GetOrders: failed to decode response: %w", err)
	}

	return dtos, nil
}
