package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/arthur-debert/brokensym/cmd/brokensym"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := brokensym.Execute(ctx, os.Args[1:], brokensym.DefaultStreams())
	stop()
	os.Exit(code)
}
