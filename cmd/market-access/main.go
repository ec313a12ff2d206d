package main

import (
	"os"

	"github.com/tradebarrier/market-access/backend/cmd/market-access/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
