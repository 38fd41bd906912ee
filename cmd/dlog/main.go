package main

import (
	"fmt"
	"os"

	"daily-log/internal/cli"
	"daily-log/internal/config"
)

func main() {
	// Defaults, then .env, then environment variables. The required store
	// settings are checked once flag overrides have been applied.
	cfg, err := config.NewLoader().LoadForCLI()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(cfg)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
