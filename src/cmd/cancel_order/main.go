package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/futures-bot/src/logger"
	"github.com/jiaming2012/futures-bot/src/models"
	"github.com/jiaming2012/futures-bot/src/services"
	"github.com/jiaming2012/futures-bot/src/utils"
)

type RunArgs struct {
	Symbol        string
	OrderID       int64
	ClientOrderID string
	APIKey        string
	APISecret     string
	BaseURL       string
}

type RunResult struct {
	Order *models.FuturesOrder
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/cancel_order/main.go --symbol BTCUSDT --order-id 4055238219",
	Short: "Cancel a resting futures testnet order",
	Run: func(cmd *cobra.Command, args []string) {
		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			log.Fatalf("error getting symbol: %v", err)
		}

		orderID, err := cmd.Flags().GetInt64("order-id")
		if err != nil {
			log.Fatalf("error getting order-id: %v", err)
		}

		clientOrderID, err := cmd.Flags().GetString("client-order-id")
		if err != nil {
			log.Fatalf("error getting client-order-id: %v", err)
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
			OrderID:       orderID,
			ClientOrderID: clientOrderID,
			APIKey:        apiKey,
			APISecret:     apiSecret,
			BaseURL:       baseURL,
		}); err != nil {
			log.Errorf("Error: %v", err)
			os.Exit(1)
		} else {
			fmt.Println(result.Order.String())
			log.Infof("Order canceled (status: %s)", result.Order.Status)
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

	apiKey, apiSecret, err := utils.ResolveCredentials(args.APIKey, args.APISecret)
	if err != nil {
		return RunResult{}, err
	}

	client, err := services.NewBinanceClient(utils.ResolveBaseURL(args.BaseURL, services.TestnetBaseURL), apiKey, apiSecret)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to create binance client: %w", err)
	}

	dto, err := client.CancelOrder(context.Background(), args.Symbol, args.OrderID, args.ClientOrderID)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to cancel order: %w", err)
	}

	order, err := dto.ToFuturesOrder()
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to convert order response: %w", err)
	}

	return RunResult{Order: order}, nil
}

func main() {
	runCmd.PersistentFlags().String("symbol", "", "The futures contract the order belongs to, e.g. BTCUSDT.")
	runCmd.PersistentFlags().Int64("order-id", 0, "The exchange order id to cancel.")
	runCmd.PersistentFlags().String("client-order-id", "", "The client order id to cancel, if no order id is known.")
	runCmd.PersistentFlags().String("api-key", "", "Binance API key. Falls back to BINANCE_API_KEY.")
	runCmd.PersistentFlags().String("api-secret", "", "Binance API secret. Falls back to BINANCE_API_SECRET.")
	runCmd.PersistentFlags().String("base-url", "", "Exchange REST endpoint. Falls back to BINANCE_BASE_URL, then the testnet.")

	runCmd.MarkPersistentFlagRequired("symbol")

	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
