package utils

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const EnvFilename = ".env"

// InitEnvironmentVariables loads the .env file from the working directory.
// Production deployments inject real environment variables instead, so a
// missing file is not an error.
func InitEnvironmentVariables() error {
	if os.Getenv("GO_ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	if err := godotenv.Load(EnvFilename); err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("InitEnvironmentVariables: failed to load %s file: %w", EnvFilename, err)
	}

	return nil
}

// ResolveCredentials returns the API key pair, preferring explicit flag values
// over the BINANCE_API_KEY and BINANCE_API_SECRET environment variables.
func ResolveCredentials(apiKey, apiSecret string) (string, string, error) {
	if apiKey == "" {
		apiKey = os.Getenv("BINANCE_API_KEY")
	}

	if apiSecret == "" {
		apiSecret = os.Getenv("BINANCE_API_SECRET")
	}

	if apiKey == "" || apiSecret == "" {
		return "", "", fmt.Errorf("API credentials not found: set BINANCE_API_KEY and BINANCE_API_SECRET environment variables, or pass --api-key / --api-secret")
	}

	return apiKey, apiSecret, nil
}

// ResolveBaseURL returns the REST endpoint to call, preferring an explicit
// flag value over BINANCE_BASE_URL, falling back to fallback.
func ResolveBaseURL(baseURL, fallback string) string {
	if baseURL != "" {
		return baseURL
	}

	if fromEnv := os.Getenv("BINANCE_BASE_URL"); fromEnv != "" {
		return fromEnv
	}

	return fallback
}
