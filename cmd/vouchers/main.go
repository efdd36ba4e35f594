package main

import (
	"context"
	"os"

	"github.com/Koushikchikkond/vouchers/internal/cli"
	"github.com/Koushikchikkond/vouchers/internal/config"
)

func main() {
	cli.LoadEnvFile()
	cfg := config.Load()
	logger := cli.SetupLogger(cfg, os.Stderr)

	r := &cli.Runner{
		Config: cfg,
		Logger: logger,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(r.Run(context.Background(), os.Args[1:]))
}
