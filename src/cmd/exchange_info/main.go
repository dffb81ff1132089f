package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jiaming2012/futures-bot/src/logger"
	"github.com/jiaming2012/futures-bot/src/models"
	"github.com/jiaming2012/futures-bot/src/services"
	"github.com/jiaming2012/futures-bot/src/utils"
)

type RunArgs struct {
	Symbol       string
	WriteFilters string
	APIKey       string
	APISecret    string
	BaseURL      string
}

type RunResult struct {
	Info *models.ExchangeInfoDTO
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/exchange_info/main.go --symbol BTCUSDT",
	Short: "Check testnet connectivity and inspect symbol trading filters",
	Run: func(cmd *cobra.Command, args []string) {
		symbol, err := cmd.Flags().GetString("symbol")
		if err != nil {
			log.Fatalf("error getting symbol: %v", err)
		}

		writeFilters, err := cmd.Flags().GetString("write-filters")
		if err != nil {
			log.Fatalf("error getting write-filters: %v", err)
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

		if _, err := Run(RunArgs{
			Symbol:       symbol,
			WriteFilters: writeFilters,
			APIKey:       apiKey,
			APISecret:    apiSecret,
			BaseURL:      baseURL,
		}); err != nil {
			log.Errorf("Error: %v", err)
			os.Exit(1)
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

	// Ping and exchange info are public endpoints, so missing credentials are fine.
	apiKey, apiSecret, err := utils.ResolveCredentials(args.APIKey, args.APISecret)
	if err != nil {
		apiKey, apiSecret = "public", "public"
	}

	client, err := services.NewBinanceClient(utils.ResolveBaseURL(args.BaseURL, services.TestnetBaseURL), apiKey, apiSecret)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to create binance client: %w", err)
	}

	ctx := context.Background()

	if err := client.Ping(ctx); err != nil {
		return RunResult{}, fmt.Errorf("failed to ping exchange: %w", err)
	}

	log.Info("exchange is reachable")

	info, err := client.GetExchangeInfo(ctx)
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to fetch exchange info: %w", err)
	}

	if args.Symbol != "" {
		symbolInfo, found := info.FindSymbol(args.Symbol)
		if !found {
			return RunResult{}, fmt.Errorf("symbol %s not listed on the exchange", args.Symbol)
		}

		fmt.Println(symbolInfo.String())
	} else {
		fmt.Printf("%d symbols listed\n", len(info.Symbols))
	}

	if args.WriteFilters != "" {
		if err := writeSymbolFilters(args.WriteFilters, info); err != nil {
			return RunResult{}, err
		}

		fmt.Println("Symbol filters written to:", args.WriteFilters)
	}

	return RunResult{Info: info}, nil
}

func writeSymbolFilters(path string, info *models.ExchangeInfoDTO) error {
	data, err := yaml.Marshal(models.NewSymbolFiltersYAML(info))
	if err != nil {
		return fmt.Errorf("writeSymbolFilters: failed to marshal filters: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writeSymbolFilters: failed to write file: %w", err)
	}

	return nil
}

func main() {
	runCmd.PersistentFlags().String("symbol", "", "Print trading filters for this symbol only.")
	runCmd.PersistentFlags().String("write-filters", "", "Write a symbol filters YAML snapshot to this path.")
	runCmd.PersistentFlags().String("api-key", "", "Binance API key. Falls back to BINANCE_API_KEY.")
	runCmd.PersistentFlags().String("api-secret", "", "Binance API secret. Falls back to BINANCE_API_SECRET.")
	runCmd.PersistentFlags().String("base-url", "", "Exchange REST endpoint. Falls back to BINANCE_BASE_URL, then the testnet.")

	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
