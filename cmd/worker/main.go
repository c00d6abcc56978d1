package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"spyglass/internal/infrastructure/scheduler"
	"spyglass/internal/interfaces/cli/bootstrap"
)

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	rt, err := bootstrap.Setup(env, true)
	if err != nil {
		fmt.Printf("failed to start worker: %v\n", err)
		os.Exit(1)
	}
	defer rt.Close()

	log := rt.Logger
	log.Infow("starting metrics worker", "environment", env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sched := scheduler.NewMetricsScheduler(rt.Sweeper, log)
	sched.Start(ctx)

	log.Infow("metrics worker started")

	sig := <-sigChan
	log.Infow("received shutdown signal", "signal", sig.String())

	cancel()
	sched.Stop()

	log.Infow("metrics worker stopped")
}
