package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/tracebase/datamarket/pkg/config"
	"github.com/tracebase/datamarket/pkg/server"
)

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	logLevel, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.Fatalf("Invalid log level %q: %v", cfg.LogLevel, err)
	}
	logrus.SetLevel(logLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Launch(ctx, cfg); err != nil {
		logrus.Fatalf("Server terminated: %v", err)
	}
}
