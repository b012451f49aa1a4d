// Package main is the entry point for vinted-search.
package main

import (
	"os"

	"github.com/donaldgifford/vinted-search/cmd/vinted-search/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
