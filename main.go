// Package main provides the entry point for the sales-analytics CLI.
package main

import (
	"os"

	"fjacquet/sales-analytics/cmd/root"
)

func main() {
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
