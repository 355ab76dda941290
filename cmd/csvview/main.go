package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/JonMunkholm/csvview/internal/cli"
	"github.com/JonMunkholm/csvview/internal/core"
)

func main() {
	// A missing .env is fine; Load keeps variables already set.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := cli.NewRootCmd().ExecuteContext(ctx); err != nil {
		var ue *core.UserError
		if errors.As(err, &ue) {
			fmt.Fprintln(os.Stderr, "✗ Error:", core.FormatUserError(ue.Technical))
			fmt.Fprintln(os.Stderr, "  Cause:", ue.Technical)
		} else {
			fmt.Fprintln(os.Stderr, "✗ Error:", err)
		}
		os.Exit(1)
	}
}
