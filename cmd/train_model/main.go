package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/ChristopherOoi/ft-linear-regression/config"
	"github.com/ChristopherOoi/ft-linear-regression/db"
	"github.com/ChristopherOoi/ft-linear-regression/logging"
	"github.com/ChristopherOoi/ft-linear-regression/ml"
	"github.com/ChristopherOoi/ft-linear-regression/monitoring"
	"github.com/ChristopherOoi/ft-linear-regression/pipeline"
)

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	file := opts.file

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	opts.apply(cfg)
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

	data, err := loadDataset(file, logger)
	if err != nil {
		logger.Fatal("error reading file", zap.String("file", file), zap.Error(err))
	}

	var plotter ml.Plotter
	if cfg.Plots.Enabled {
		plotter = monitoring.NewPlotRenderer(cfg.Plots.Dir, logger)
	}
	evaluator := ml.NewEvaluator(plotter, logger)

	result, err := ml.Train(data, ml.TrainOptions{
		LearningRate: cfg.Training.LearningRate,
		Epochs:       cfg.Training.Epochs,
		EvalInterval: cfg.Training.EvalInterval,
		Observer:     evaluator,
		Logger:       logger,
	})
	if err != nil {
		logger.Fatal("training failed", zap.Error(err))
	}

	if err := ml.SaveCoefficients(cfg.Training.ThetasPath, result.Coefficients); err != nil {
		logger.Fatal("failed to save coefficients", zap.String("path", cfg.Training.ThetasPath), zap.Error(err))
	}
	recordRun(cfg, file, data.Len(), result, logger)

	fmt.Printf("Final coefficients: t0 = %v, t1 = %v\n", result.Coefficients.Theta0, result.Coefficients.Theta1)
	fmt.Printf("Coefficient of determination (R^2): %v\n", result.R2)
	fmt.Printf("coefficients saved to %s\n", cfg.Training.ThetasPath)
}

func loadDataset(path string, logger *zap.Logger) (ml.TrainingData, error) {
	ds, err := pipeline.LoadCSV(path)
	if err != nil {
		return ml.TrainingData{}, err
	}
	if err := pipeline.NewDataCleaner().Validate(ds); err != nil {
		return ml.TrainingData{}, err
	}

	rows, cols := ds.Shape()
	logger.Info("dataset loaded",
		zap.String("file", path),
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.Strings("header", ds.Header),
		zap.Any("head", ds.Head(5)),
	)
	return ml.TrainingData{Mileage: ds.Mileage(), Price: ds.Price()}, nil
}

func recordRun(cfg *config.Config, file string, dataPoints int, result *ml.TrainResult, logger *zap.Logger) {
	if cfg.Database.Path == "" {
		return
	}
	store, err := db.Open(cfg.Database.Path)
	if err != nil {
		logger.Warn("training history unavailable", zap.Error(err))
		return
	}
	defer store.Close()

	id, err := store.SaveTrainingRun(db.TrainingRun{
		DatasetPath:  file,
		LearningRate: cfg.Training.LearningRate,
		Epochs:       cfg.Training.Epochs,
		Theta0:       result.Coefficients.Theta0,
		Theta1:       result.Coefficients.Theta1,
		R2:           result.R2,
		DataPoints:   dataPoints,
	})
	if err != nil {
		logger.Warn("failed to record training run", zap.Error(err))
		return
	}
	logger.Debug("training run recorded", zap.Int64("id", id))
}
