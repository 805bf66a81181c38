package ml

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// DefaultEvalInterval is how many epochs pass between two observer calls.
const DefaultEvalInterval = 100

// GradientDescent fits a line by full-batch gradient descent over a fixed
// number of epochs. There is no convergence check and no learning rate decay.
type GradientDescent struct {
	LearningRate float64
	Epochs       int
	EvalInterval int
	Observer     Observer
}

func NewGradientDescent(learningRate float64, epochs int) *GradientDescent {
	return &GradientDescent{
		LearningRate: learningRate,
		Epochs:       epochs,
		EvalInterval: DefaultEvalInterval,
	}
}

func (gd *GradientDescent) validate() error {
	if !(gd.LearningRate > 0) {
		return fmt.Errorf("%w, got %v", ErrInvalidLearningRate, gd.LearningRate)
	}
	if gd.Epochs < 1 {
		return fmt.Errorf("%w, got %d", ErrInvalidEpochs, gd.Epochs)
	}
	return nil
}

// Step runs one epoch from state and returns the updated state together with
// the estimates computed from the state it was given. Both partial sums use
// the same residuals.
func Step(state TrainingState, mileage, price []float64, learningRate float64) (TrainingState, []float64) {
	estimated := make([]float64, len(mileage))
	for i, x := range mileage {
		estimated[i] = state.Theta1*x + state.Theta0
	}
	delta := make([]float64, len(mileage))
	floats.SubTo(delta, estimated, price)

	ratio := learningRate / float64(len(mileage))
	next := TrainingState{
		Theta0: state.Theta0 - ratio*floats.Sum(delta),
		Theta1: state.Theta1 - ratio*floats.Dot(delta, mileage),
	}
	return next, estimated
}

// Run trains on normalized mileage and returns coefficients in the
// normalized space. raw is only forwarded to the observer.
func (gd *GradientDescent) Run(normalized, raw, price []float64) (TrainingState, error) {
	if err := gd.validate(); err != nil {
		return TrainingState{}, err
	}
	if len(normalized) == 0 {
		return TrainingState{}, ErrEmptyDataset
	}
	if len(normalized) != len(price) || len(raw) != len(price) {
		return TrainingState{}, fmt.Errorf("%w: %d mileage, %d raw, %d price",
			ErrLengthMismatch, len(normalized), len(raw), len(price))
	}

	interval := gd.EvalInterval
	if interval <= 0 {
		interval = DefaultEvalInterval
	}

	var state TrainingState
	for step := 0; step < gd.Epochs; step++ {
		next, estimated := Step(state, normalized, price, gd.LearningRate)
		if gd.Observer != nil && (step+1)%interval == 0 {
			err := gd.Observer.Observe(Snapshot{
				Step:      step,
				State:     state,
				Mileage:   raw,
				Actual:    price,
				Estimated: estimated,
			})
			if err != nil {
				return TrainingState{}, fmt.Errorf("epoch %d: %w", step+1, err)
			}
		}
		if !next.Coefficients().IsFinite() {
			return TrainingState{}, fmt.Errorf("%w at epoch %d, lower the learning rate (%v)",
				ErrDiverged, step+1, gd.LearningRate)
		}
		state = next
	}
	return state, nil
}
