package ml

import (
	"errors"
	"math"
)

var (
	ErrEmptyDataset        = errors.New("dataset is empty")
	ErrLengthMismatch      = errors.New("mileage and price length mismatch")
	ErrZeroVariance        = errors.New("zero variance")
	ErrInvalidLearningRate = errors.New("learning rate must be positive")
	ErrInvalidEpochs       = errors.New("epochs must be at least 1")
	ErrNegativeMileage     = errors.New("mileage cannot be negative")
	ErrDiverged            = errors.New("training diverged")
)

// Coefficients is the intercept/slope pair of the price model.
type Coefficients struct {
	Theta0 float64 `json:"theta0"`
	Theta1 float64 `json:"theta1"`
}

// IsFinite reports whether both coefficients are usable numbers.
func (c Coefficients) IsFinite() bool {
	return isFinite(c.Theta0) && isFinite(c.Theta1)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Estimate returns the price predicted for mileage.
func (c Coefficients) Estimate(mileage float64) float64 {
	return Estimate(mileage, c.Theta0, c.Theta1)
}

// Estimate is the linear price model shared by training and prediction.
// Callers validate mileage with ValidateMileage first.
func Estimate(mileage, theta0, theta1 float64) float64 {
	return theta0 + theta1*mileage
}

func ValidateMileage(mileage float64) error {
	if mileage < 0 {
		return ErrNegativeMileage
	}
	return nil
}

// TrainingState holds the coefficients during a gradient descent run.
// It is only meaningful in the normalized mileage space.
type TrainingState Coefficients

func (s TrainingState) Coefficients() Coefficients {
	return Coefficients(s)
}

// Observer receives a snapshot every evaluation interval and once more
// after descaling. A returned error aborts training.
type Observer interface {
	Observe(snapshot Snapshot) error
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(snapshot Snapshot) error

func (f ObserverFunc) Observe(snapshot Snapshot) error { return f(snapshot) }

// FinalStep tags the evaluation done on raw mileage with the descaled
// coefficients.
const FinalStep = -1

// Snapshot is what an Observer sees. Mileage is always in raw units.
type Snapshot struct {
	Step      int
	State     TrainingState
	Mileage   []float64
	Actual    []float64
	Estimated []float64
}

// Label names the artifact produced for the snapshot.
func (s Snapshot) Label() string {
	return StepLabel(s.Step)
}
