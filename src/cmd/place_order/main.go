package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/futures-bot/src/logger"
	"github.com/jiaming2012/futures-bot/src/models"
	"github.com/jiaming2012/futures-bot/src/services"
	"github.com/jiaming2012/futures-bot/src/utils"
)

type RunArgs struct {
	Symbol        string
	Side          string
	OrderType     string
	Quantity      string
	Price         string
	StopPrice     string
	TimeInForce   string
	ClientOrderID string
	FiltersPath   string
	APIKey        string
	APISecret     string
	BaseURL       string
}

type RunResult struct {
	Order *models.FuturesOrder
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/place_order/main.go --symbol BTCUSDT --side BUY --type MARKET --quantity 0.002",
	Short: "Place an order on the Binance USDT-M futures testnet",
	Run: func(cmd *cobra.Command, args []string) {
		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			log.Fatalf("error getting symbol: %v", err)
		}

		side, err := cmd.Flags().GetString("side")
		if err != nil {
			log.Fatalf("error getting side: %v", err)
		}

		orderType, err := cmd.Flags().GetString("type")
		if err != nil {
			log.Fatalf("error getting type: %v", err)
		}

		quantity, err := cmd.Flags().GetString("quantity")
		if err != nil {
			log.Fatalf("error getting quantity: %v", err)
		}

		price, err := cmd.Flags().GetString("price")
		if err != nil {
			log.Fatalf("error getting price: %v", err)
		}

		stopPrice, err := cmd.Flags().GetString("stop-price")
		if err != nil {
			log.Fatalf("error getting stop-price: %v", err)
		}

		timeInForce, err := cmd.Flags().GetString("time-in-force")
		if err != nil {
			log.Fatalf("error getting time-in-force: %v", err)
		}

		clientOrderID, err := cmd.Flags().GetString("client-order-id")
		if err != nil {
			log.Fatalf("error getting client-order-id: %v", err)
		}

		filtersPath, err := cmd.Flags().GetString("filters")
		if err != nil {
			log.Fatalf("error getting filters: %v", err)
		}

		apiKey, err := cmd.Flags().GetString("api-key")
		if err != nil {
			log.Fatalf("error getting api-key: %v", err)
		}

		apiSecret, err := cmd.Flags().GetString("api-secret")
		if err != nil {
			log.Fatalf("error getting api-secret: %v", err)
		}

		baseURL, err := cmd.Flags().GetString("base-url")
		if err != nil {
			log.Fatalf("error getting base-url: %v", err)
		}

		if result, err := Run(RunArgs{
			Symbol:        symbol,
			Side:          side,
			OrderType:     orderType,
			Quantity:      quantity,
			Price:         price,
			StopPrice:     stopPrice,
			TimeInForce:   timeInForce,
			ClientOrderID: clientOrderID,
			FiltersPath:   filtersPath,
			APIKey:        apiKey,
			APISecret:     apiSecret,
			BaseURL:       baseURL,
		}); err != nil {
			log.Errorf("Error: %v", err)
			os.Exit(1)
		} else if result.Order.Status.IsPlaced() {
			log.Infof("Order placed successfully (status: %s)", result.Order.Status)
		} else {
			log.Warnf("Order accepted but not resting (status: %s)", result.Order.Status)
		}
	},
}

func Run(args RunArgs) (RunResult, error) {
	if err := utils.InitEnvironmentVariables(); err != nil {
		log.Fatalf("error loading environment variables: %v", err)
	}

	if err := logger.Init("logs"); err != nil {
		log.Fatalf("error initialising logger: %v", err)
	}

	req, err := buildRequest(args)
	if err != nil {
		return RunResult{}, err
	}

	if err := req.Validate(); err != nil {
		return RunResult{}, fmt.Errorf("invalid order request: %w", err)
	}

	if args.FiltersPath != "" {
		filters, err := loadSymbolFilters(args.FiltersPath)
		if err != nil {
			return RunResult{}, err
		}

		if err := filters.CheckOrder(req); err != nil {
			return RunResult{}, fmt.Errorf("order rejected by symbol filters: %w", err)
		}
	}

	apiKey, apiSecret, err := utils.ResolveCredentials(args.APIKey, args.APISecret)
	if err != nil {
		return RunResult{}, err
	}

	client, err := services.NewBinanceClient(utils.ResolveBaseURL(args.BaseURL, services.TestnetBaseURL), apiKey, apiSecret)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to create binance client: %w", err)
	}

	fmt.Println(req.String())

	dto, err := client.PlaceOrder(context.Background(), req)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to place order: %w", err)
	}

	order, err := dto.ToFuturesOrder()
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to convert order response: %w", err)
	}

	fmt.Println(order.String())

	return RunResult{Order: order}, nil
}

func buildRequest(args RunArgs) (*models.PlaceOrderRequest, error) {
	quantity, err := decimal.NewFromString(args.Quantity)
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q: must be a positive number", args.Quantity)
	}

	req := &models.PlaceOrderRequest{
		Symbol:        args.Symbol,
		Side:          models.OrderSide(args.Side),
		OrderType:     models.OrderType(args.OrderType),
		Quantity:      quantity,
		TimeInForce:   models.TimeInForce(args.TimeInForce),
		ClientOrderID: args.ClientOrderID,
	}

	if req.ClientOrderID == "" {
		req.ClientOrderID = uuid.NewString()
	}

	if args.Price != "" {
		price, err := decimal.NewFromString(args.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q: must be a positive number", args.Price)
		}

		req.Price = &price
	}

	if args.StopPrice != "" {
		stopPrice, err := decimal.NewFromString(args.StopPrice)
		if err != nil {
			return nil, fmt.Errorf("invalid stop price %q: must be a positive number", args.StopPrice)
		}

		req.StopPrice = &stopPrice
	}

	return req, nil
}

func loadSymbolFilters(path string) (*models.SymbolFilters, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbol filters file: %w", err)
	}

	var cfg models.SymbolFiltersYAML
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse symbol filters file: %w", err)
	}

	return cfg.ToSymbolFilters()
}

func init() {
	runCmd.PersistentFlags().String("symbol", "", "The futures contract to trade, e.g. BTCUSDT.")
	runCmd.PersistentFlags().String("side", "", "The order side: BUY or SELL.")
	runCmd.PersistentFlags().String("type", "", "The order type: MARKET, LIMIT or STOP_MARKET.")
	runCmd.PersistentFlags().String("quantity", "", "The order quantity, in base asset units.")
	runCmd.PersistentFlags().String("price", "", "The limit price. Required for LIMIT orders.")
	runCmd.PersistentFlags().String("stop-price", "", "The trigger price. Required for STOP_MARKET orders.")
	runCmd.PersistentFlags().String("time-in-force", "", "Time in force for LIMIT orders: GTC, IOC or FOK. Defaults to GTC.")
	runCmd.PersistentFlags().String("client-order-id", "", "Client order id sent to the exchange. Defaults to a random UUID.")
	runCmd.PersistentFlags().String("filters", "", "Path to a symbol filters YAML file for pre-trade checks.")
	runCmd.PersistentFlags().String("api-key", "", "Binance API key. Falls back to BINANCE_API_KEY.")
	runCmd.PersistentFlags().String("api-secret", "", "Binance API secret. Falls back to BINANCE_API_SECRET.")
	runCmd.PersistentFlags().String("base-url", "", "Exchange REST endpoint. Falls back to BINANCE_BASE_URL, then the testnet.")

	runCmd.MarkPersistentFlagRequired("symbol")
	runCmd.MarkPersistentFlagRequired("side")
	runCmd.MarkPersistentFlagRequired("type")
	runCmd.MarkPersistentFlagRequired("quantity")
}

func main() {
	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
