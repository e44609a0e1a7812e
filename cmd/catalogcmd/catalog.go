// Package catalogcmd contains the command that fetches the product catalog
// and refreshes the local cache.
package catalogcmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"fjacquet/sales-analytics/internal/catalog"
	"fjacquet/sales-analytics/internal/config"
	"fjacquet/sales-analytics/internal/logging"
)

var cacheFile string

// Cmd is the catalog command.
var Cmd = &cobra.Command{
	Use:   "catalog",
	Short: "Fetch the product catalog and refresh the local cache",
	Long: `Fetches the product list from the catalog service and stores it in the
local YAML cache, so later pipeline runs can enrich even when the service is
unreachable.`,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVar(&cacheFile, "cache-file", "", "path of the catalog cache file")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.InitializeConfig()
	if err != nil {
		return err
	}
	if cacheFile != "" {
		cfg.Catalog.CacheFile = cacheFile
	}
	if cfg.Catalog.CacheFile == "" {
		return fmt.Errorf("no cache file configured; set catalog.cache_file or pass --cache-file")
	}

	logger := logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))

	client := catalog.NewClient(
		cfg.Catalog.BaseURL, cfg.Catalog.Limit,
		time.Duration(cfg.Catalog.TimeoutSeconds)*time.Second, logger)

	products, err := client.FetchProducts(cmd.Context())
	if err != nil {
		return err
	}

	cache := catalog.NewCache(cfg.Catalog.CacheFile, logger)
	if err := cache.Save(products); err != nil {
		return err
	}

	fmt.Printf("Cached %d products to %s\n", len(products), cfg.Catalog.CacheFile)
	return nil
}
