package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jiaming2012/futures-bot/src/cmd/order_history/run"
	"github.com/jiaming2012/futures-bot/src/logger"
	"github.com/jiaming2012/futures-bot/src/models"
	"github.com/jiaming2012/futures-bot/src/services"
	"github.com/jiaming2012/futures-bot/src/utils"
)

type RunArgs struct {
	Symbol    string
	Limit     int
	APIKey    string
	APISecret string
	BaseURL   string
}

type RunResult struct {
	Orders []*models.FuturesOrderDTO
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/order_history/main.go --symbol BTCUSDT --outDir ./output",
	Short: "Fetch recent futures testnet orders for a symbol",
	Run: func(cmd *cobra.Command, args []string) {
		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			log.Fatalf("error getting symbol: %v", err)
		}

		limit, err := cmd.Flags().GetInt("limit")
		if err != nil {
			log.Fatalf("error getting limit: %v", err)
		}

		outDir, err := cmd.Flags().GetString("outDir")
		if err != nil {
			log.Fatalf("error getting outDir: %v", err)
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
			Symbol:    symbol,
			Limit:     limit,
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}); err != nil {
			log.Errorf("Error: %v", err)
			os.Exit(1)
		} else {
			if outDir == "" {
				ordersJSON, err := json.MarshalIndent(result.Orders, "", "  ")
				if err != nil {
					log.Errorf("Failed to marshal orders: %v", err)
					os.Exit(1)
				}

				fmt.Println(string(ordersJSON))
			} else {
				csvPath, err := run.ExportToCsv(outDir, result.Orders, "order_history")
				if err != nil {
					log.Errorf("Failed to export to CSV: %v", err)
					os.Exit(1)
				}

				fmt.Println("CSV file written to: ", csvPath)
			}
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

	orders, err := client.GetOrders(context.Background(), args.Symbol, args.Limit)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to fetch orders: %w", err)
	}

	log.Infof("fetched %d orders for %s", len(orders), args.Symbol)

	return RunResult{Orders: orders}, nil
}

func main() {
	runCmd.PersistentFlags().String("symbol", "", "The futures contract to fetch orders for, e.g. BTCUSDT.")
	runCmd.PersistentFlags().Int("limit", 50, "Maximum number of orders to fetch.")
	runCmd.PersistentFlags().String("outDir", "", "The directory to write the CSV output to. Prints JSON when unset.")
	runCmd.PersistentFlags().String("api-key", "", "Binance API key. Falls back to BINANCE_API_KEY.")
	runCmd.PersistentFlags().String("api-secret", "", "Binance API secret. Falls back to BINANCE_API_SECRET.")
	runCmd.PersistentFlags().String("base-url", "", "Exchange REST endpoint. Falls back to BINANCE_BASE_URL, then the testnet.")

	runCmd.MarkPersistentFlagRequired("symbol")

	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
