package ml

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// TrainingData holds parallel mileage and price columns.
type TrainingData struct {
	Mileage []float64
	Price   []float64
}

func (d TrainingData) Len() int {
	return len(d.Mileage)
}

// Validate rejects data that would make normalization or R2 undefined.
func (d TrainingData) Validate() error {
	if len(d.Mileage) == 0 {
		return ErrEmptyDataset
	}
	if len(d.Mileage) != len(d.Price) {
		return fmt.Errorf("%w: %d mileage, %d price", ErrLengthMismatch, len(d.Mileage), len(d.Price))
	}
	if len(d.Mileage) < 2 {
		return fmt.Errorf("need at least 2 samples, got %d: %w", len(d.Mileage), ErrZeroVariance)
	}
	if floats.Min(d.Price) == floats.Max(d.Price) {
		return fmt.Errorf("price column: all values equal %v: %w", d.Price[0], ErrZeroVariance)
	}
	return nil
}

type TrainOptions struct {
	LearningRate float64
	Epochs       int
	EvalInterval int
	Observer     Observer
	Logger       *zap.Logger
}

type TrainResult struct {
	Scaler       MinMaxScaler
	Scaled       Coefficients // valid on normalized mileage only
	Coefficients Coefficients
	R2           float64
}

// Train normalizes mileage, runs gradient descent, descales the result and
// scores it on the raw data.
func Train(data TrainingData, opts TrainOptions) (*TrainResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := data.Validate(); err != nil {
		return nil, err
	}

	scaler, err := FitMinMax(data.Mileage)
	if err != nil {
		return nil, err
	}
	logger.Debug("mileage scaled",
		zap.Float64("min", scaler.Min),
		zap.Float64("max", scaler.Max),
	)

	gd := NewGradientDescent(opts.LearningRate, opts.Epochs)
	if opts.EvalInterval > 0 {
		gd.EvalInterval = opts.EvalInterval
	}
	gd.Observer = opts.Observer

	logger.Info("training started",
		zap.Int("samples", data.Len()),
		zap.Float64("learning_rate", gd.LearningRate),
		zap.Int("epochs", gd.Epochs),
	)
	state, err := gd.Run(scaler.TransformAll(data.Mileage), data.Mileage, data.Price)
	if err != nil {
		return nil, err
	}

	result := &TrainResult{
		Scaler:       scaler,
		Scaled:       state.Coefficients(),
		Coefficients: Rescale(state.Coefficients(), scaler),
	}
	if !result.Coefficients.IsFinite() {
		return nil, fmt.Errorf("%w: descaled coefficients %+v", ErrDiverged, result.Coefficients)
	}

	estimated := make([]float64, data.Len())
	for i, x := range data.Mileage {
		estimated[i] = result.Coefficients.Estimate(x)
	}
	if result.R2, err = R2(data.Price, estimated); err != nil {
		return nil, err
	}
	if opts.Observer != nil {
		err := opts.Observer.Observe(Snapshot{
			Step:      FinalStep,
			State:     TrainingState(result.Coefficients),
			Mileage:   data.Mileage,
			Actual:    data.Price,
			Estimated: estimated,
		})
		if err != nil {
			return nil, fmt.Errorf("final evaluation: %w", err)
		}
	}

	logger.Info("training finished",
		zap.Float64("theta0", result.Coefficients.Theta0),
		zap.Float64("theta1", result.Coefficients.Theta1),
		zap.Float64("r2", result.R2),
	)
	return result, nil
}
