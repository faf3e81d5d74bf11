package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/anchorpatch/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := newRootCmd().ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, app.ErrReviewDeclined):
		fmt.Fprintln(os.Stderr, "anchorpatch: changes discarded")
		return 0
	default:
		fmt.Fprintf(os.Stderr, "anchorpatch: %v\n", err)
		return 1
	}
}
