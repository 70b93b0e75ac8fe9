// Package config provides functionality for managing configuration options
// for the console using command-line flags, a .env file, and environment
// variables.
package config

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Options holds the configuration values for the console.
type Options struct {
	// APIBaseURL is the base URL of the Antigravity Ads API.
	APIBaseURL string `env:"API_BASE_URL"`

	// CheckoutPriceID is the payment-provider price identifier used when
	// starting a checkout session. Empty is tolerated at startup; the
	// checkout action itself hard-fails without it.
	CheckoutPriceID string `env:"CHECKOUT_PRICE_ID"`

	// TokenFile is the path to the persisted credential. Empty selects the
	// per-user default location.
	TokenFile string `env:"TOKEN_FILE"`

	// LogLevel sets the logging verbosity.
	LogLevel string `env:"LOG_LEVEL"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.APIBaseURL, "api", "http://127.0.0.1:8000", "base URL of the backend API")
	flag.StringVar(&options.CheckoutPriceID, "price-id", "", "payment-provider price identifier for checkout")
	flag.StringVar(&options.TokenFile, "token-file", "", "path to the persisted credential file")
	flag.StringVar(&options.LogLevel, "log-level", "Info", "log level: Debug, Info, Warn, Error")
}

// Parse parses command-line flags, loads a .env file when present, and
// applies environment variable overrides. It returns a pointer to the
// Options struct containing the final configuration values.
func Parse() (*Options, error) {
	flag.Parse()

	// A missing .env file is not an error.
	_ = godotenv.Load()

	if err := env.Parse(options); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return options, nil
}
