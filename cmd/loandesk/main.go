package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/AntonStoeckl/library-lending-go/library/shell"
	"github.com/AntonStoeckl/library-lending-go/library/shell/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to an optional YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return 1
	}

	logger := shell.NewLogger(cfg.Log.Level, os.Stderr)

	// Setup signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, closeStore, err := buildApp(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to start", "error", err.Error())
		return 1
	}
	defer closeStore()

	done := make(chan error, 1)
	go func() {
		done <- newConsole(a, os.Stdin, os.Stdout).run(ctx)
	}()

	select {
	case err = <-done:
	case <-ctx.Done():
		fmt.Println("\nExecution interrupted. Exiting...")
		return 0
	}

	if err != nil {
		logger.Error("console failed", "error", err.Error())
		return 1
	}

	return 0
}
