// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Input struct {
		File      string `mapstructure:"file" yaml:"file"`
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"input" yaml:"input"`

	Output struct {
		Directory    string `mapstructure:"directory" yaml:"directory"`
		EnrichedFile string `mapstructure:"enriched_file" yaml:"enriched_file"`
		ReportFile   string `mapstructure:"report_file" yaml:"report_file"`
	} `mapstructure:"output" yaml:"output"`

	Catalog struct {
		BaseURL        string `mapstructure:"base_url" yaml:"base_url"`
		Limit          int    `mapstructure:"limit" yaml:"limit"`
		TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds"`
		CacheFile      string `mapstructure:"cache_file" yaml:"cache_file"`
	} `mapstructure:"catalog" yaml:"catalog"`

	Analytics struct {
		TopProducts  int `mapstructure:"top_products" yaml:"top_products"`
		TopCustomers int `mapstructure:"top_customers" yaml:"top_customers"`
		LowQtyCutoff int `mapstructure:"low_qty_cutoff" yaml:"low_qty_cutoff"`
	} `mapstructure:"analytics" yaml:"analytics"`

	Report struct {
		CurrencySymbol string `mapstructure:"currency_symbol" yaml:"currency_symbol"`
	} `mapstructure:"report" yaml:"report"`
}

// EnrichedPath returns the full path of the enriched output file.
func (c *Config) EnrichedPath() string {
	return filepath.Join(c.Output.Directory, c.Output.EnrichedFile)
}

// ReportPath returns the full path of the report output file.
func (c *Config) ReportPath() string {
	return filepath.Join(c.Output.Directory, c.Output.ReportFile)
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then SALES_* environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.sales-analytics")
	v.AddConfigPath(".sales-analytics")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SALES")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars on unreadable config files
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("input.file", "data/sales_data.txt")
	v.SetDefault("input.delimiter", "|")

	v.SetDefault("output.directory", "output")
	v.SetDefault("output.enriched_file", "enriched_sales_data.txt")
	v.SetDefault("output.report_file", "sales_report.txt")

	v.SetDefault("catalog.base_url", "https://dummyjson.com")
	v.SetDefault("catalog.limit", 100)
	v.SetDefault("catalog.timeout_seconds", 10)
	v.SetDefault("catalog.cache_file", "")

	v.SetDefault("analytics.top_products", 5)
	v.SetDefault("analytics.top_customers", 5)
	v.SetDefault("analytics.low_qty_cutoff", 10)

	v.SetDefault("report.currency_symbol", "₹")
}

// validateConfig validates the configuration values.
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len([]rune(config.Input.Delimiter)) != 1 {
		return fmt.Errorf("input delimiter must be a single character, got: %s", config.Input.Delimiter)
	}

	if config.Catalog.Limit < 1 || config.Catalog.Limit > 100 {
		return fmt.Errorf("catalog.limit must be between 1 and 100, got: %d", config.Catalog.Limit)
	}

	if config.Catalog.TimeoutSeconds < 1 || config.Catalog.TimeoutSeconds > 300 {
		return fmt.Errorf("catalog.timeout_seconds must be between 1 and 300, got: %d", config.Catalog.TimeoutSeconds)
	}

	if config.Analytics.TopProducts < 1 {
		return fmt.Errorf("analytics.top_products must be positive, got: %d", config.Analytics.TopProducts)
	}

	if config.Analytics.LowQtyCutoff < 0 {
		return fmt.Errorf("analytics.low_qty_cutoff must not be negative, got: %d", config.Analytics.LowQtyCutoff)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct.
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
