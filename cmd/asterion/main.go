package main

import (
	"fmt"
	"os"

	"github.com/asterion-dev/asterion/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
