package main

import (
	"fmt"
	"os"

	"aarshjul/internal/cli"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cli.LoadEnvFile()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		return err
	}
	logger := cli.SetupLogger(cfg)

	store, err := cli.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	app := &cli.App{
		Config: cfg,
		Logger: logger,
		Store:  store,
	}

	return cli.NewRootCmd(app).Execute()
}
