package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/goliatone/go-tripdata/cmd/tripgen/internal/bootstrap"
	"github.com/goliatone/go-tripdata/internal/commands/tripcmd"
	"github.com/goliatone/go-tripdata/internal/generator"
	"github.com/goliatone/go-tripdata/internal/runtimeconfig"
)

var version = "dev"

var (
	runtimeBuilder = bootstrap.Build
	serviceFactory = func(rt *bootstrap.Runtime) tripcmd.ServiceFactory {
		return func(cfg runtimeconfig.Config) generator.Service {
			return generator.NewService(cfg, generator.Dependencies{Logging: rt.Provider})
		}
	}
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
