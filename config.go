package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the configuration struct for the service.
type Config struct {
	// Markets represents the scanned markets.
	Markets []string
	// Timeframes represents the scanned timeframes.
	Timeframes []string
	// BinanceAPIKey is the binance API key, optional for public data.
	BinanceAPIKey string
	// BinanceSecretKey is the binance API secret.
	BinanceSecretKey string
	// DataFilepath is the filepath to canned market data. When set, the
	// scanner reads candles from file instead of the exchange.
	DataFilepath string
	// DBEndpoint represents the signal database connection endpoint,
	// optional.
	DBEndpoint string
	// DBUser is the database user.
	DBUser string
	// DBPass is the database user pass.
	DBPass string
	// ScanIntervalSeconds is the time between market scans in seconds.
	ScanIntervalSeconds int
	// MetricsAddr is the prometheus metrics listen address, optional.
	MetricsAddr string

	registeredFlags map[string]bool
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if len(cfg.Markets) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no markets provided for scanner service"))
	}
	if len(cfg.Timeframes) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no timeframes provided for scanner service"))
	}
	if cfg.ScanIntervalSeconds <= 0 {
		errs = errors.Join(errs, fmt.Errorf("scan interval must be positive"))
	}
	if cfg.DataFilepath != "" && len(cfg.Markets) > 1 {
		errs = errors.Join(errs, fmt.Errorf("canned market data covers a single market"))
	}

	return errs
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
func (cfg *Config) registerFlag(name string, value interface{}, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	case reflect.Slice:
		// Only handle []string
		if val.Elem().Type().Elem().Kind() == reflect.String {
			var def []string
			if defValue != "" {
				def = strings.Split(defValue, ",")
			}
			flag.Func(name, usage, func(s string) error {
				*value.(*[]string) = strings.Split(s, ",")
				return nil
			})
			// Set default if not provided via flag
			if len(def) > 0 {
				*value.(*[]string) = def
			}
		} else {
			return fmt.Errorf("%s: unsupported slice type", name)
		}
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	// Register command line arguments using loaded environment variables as defaults.
	err = cfg.registerFlag("markets", &cfg.Markets, "the scanned markets")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("timeframes", &cfg.Timeframes, "the scanned timeframes")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("binanceapikey", &cfg.BinanceAPIKey, "the binance api key")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("binancesecretkey", &cfg.BinanceSecretKey, "the binance api secret")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("datafilepath", &cfg.DataFilepath, "the canned market data filepath")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("dbendpoint", &cfg.DBEndpoint, "the signal database endpoint")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("dbuser", &cfg.DBUser, "the signal database user")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("dbpass", &cfg.DBPass, "the signal database pass")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("scanintervalseconds", &cfg.ScanIntervalSeconds, "the time between market scans in seconds")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("metricsaddr", &cfg.MetricsAddr, "the prometheus metrics listen address")
	if err != nil {
		return err
	}

	// Parse command-line flags.
	flag.Parse()

	return cfg.Validate()
}
