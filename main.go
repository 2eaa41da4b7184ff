package main

import (
	"os"

	"github.com/miezlearning/qris-dev/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
