package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ChristopherOoi/ft-linear-regression/config"
	"github.com/ChristopherOoi/ft-linear-regression/logging"
	"github.com/ChristopherOoi/ft-linear-regression/ml"
	"github.com/ChristopherOoi/ft-linear-regression/predictor"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file")
	thetas := flag.String("thetas", "", "coefficients file (defaults to training.thetas_path)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *thetas != "" {
		cfg.Training.ThetasPath = *thetas
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	coeffs := ml.LoadCoefficientsOrDefault(cfg.Training.ThetasPath, logger)
	if err := predictor.NewSession(os.Stdin, os.Stdout, coeffs, logger).Run(); err != nil {
		logger.Error("input error", zap.Error(err))
		os.Exit(1)
	}
}
