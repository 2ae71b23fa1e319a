package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/gauge/internal/app"
	"github.com/five82/gauge/internal/config"
)

func main() {
	os.Exit(run())
}

func run() int {
	pollSeconds := flag.Int("poll", 0, "health poll interval in seconds (optional)")
	timeoutSeconds := flag.Int("timeout", 0, "API request timeout in seconds (overrides GAUGE_API_TIMEOUT)")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		PollEvery:      *pollSeconds,
		TimeoutSeconds: *timeoutSeconds,
	}

	if err := app.Run(ctx, opts); err != nil {
		var missing *config.MissingVarsError
		if errors.As(err, &missing) {
			fmt.Fprintln(os.Stderr, "gauge: configuration error")
			for _, name := range missing.Vars {
				fmt.Fprintf(os.Stderr, "  - %s is not set\n", name)
			}
			fmt.Fprintf(os.Stderr, "\nSet %s and %s to the rear-diff API host and port.\n", config.EnvHost, config.EnvPort)
			fmt.Fprintf(os.Stderr, "Optional: %s (default rear-diff), %s (seconds, default 30).\n", config.EnvPrefix, config.EnvTimeout)
			fmt.Fprintln(os.Stderr, "A .env file in the working directory is also honored.")
			return 1
		}
		fmt.Fprintf(os.Stderr, "gauge: %v\n", err)
		return 1
	}
	return 0
}
