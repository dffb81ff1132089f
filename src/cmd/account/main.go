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
	APIKey    string
	APISecret string
	BaseURL   string
}

type RunResult struct {
	Account *models.AccountDTO
}

var runCmd = &cobra.Command{
	Use:   "go run src/cmd/account/main.go",
	Short: "Show futures testnet account balances",
	Run: func(cmd *cobra.Command, args []string) {
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
			APIKey:    apiKey,
			APISecret: apiSecret,
			BaseURL:   baseURL,
		}); err != nil {
			log.Errorf("Error: %v", err)
			os.Exit(1)
		} else {
			fmt.Println(result.Account.String())
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

	account, err := client.GetAccount(context.Background())
	if err != nil {
		return RunResult{}, fmt.Errorf("failed to fetch account: %w", err)
	}

	return RunResult{Account: account}, nil
}

func main() {
	runCmd.PersistentFlags().String("api-key", "", "Binance API key. Falls back to BINANCE_API_KEY.")
	runCmd.PersistentFlags().String("api-secret", "", "Binance API secret. Falls back to BINANCE_API_SECRET.")
	runCmd.PersistentFlags().String("base-url", "", "Exchange REST endpoint. Falls back to BINANCE_BASE_URL, then the testnet.")

	if err := runCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
