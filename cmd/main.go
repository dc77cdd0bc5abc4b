package main

import (
	"os"

	"github.com/soundprediction/hestia/cmd/hestia"
)

func main() {
	if err := hestia.Execute(); err != nil {
		os.Exit(1)
	}
}
