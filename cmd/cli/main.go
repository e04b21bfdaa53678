package main

import (
	"os"

	"github.com/sirupsen/logrus"

	"seoulmarket/server/config"
	"seoulmarket/server/internal/cli"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	logger := cfg.NewLogger()
	logger.SetOutput(os.Stderr)

	if err := cli.NewRootCmd(cfg, logger).Execute(); err != nil {
		logger.WithError(err).Error("Command failed")
		os.Exit(1)
	}
}
