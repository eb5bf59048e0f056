package main

import (
	"os"

	"github.com/insightdelivered/statement-normalizer/internal/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
