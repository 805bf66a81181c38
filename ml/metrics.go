package ml

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

func SumSquaredResiduals(actual, estimated []float64) float64 {
	s := 0.0
	for i := range actual {
		d := actual[i] - estimated[i]
		s += d * d
	}
	return s
}

func TotalSumOfSquares(actual []float64) float64 {
	mean := stat.Mean(actual, nil)
	s := 0.0
	for _, v := range actual {
		d := v - mean
		s += d * d
	}
	return s
}

// R2 returns the coefficient of determination. The result is not clamped and
// is negative when the model is worse than predicting the mean.
func R2(actual, estimated []float64) (float64, error) {
	if len(actual) != len(estimated) {
		return 0, fmt.Errorf("%w: %d actual, %d estimated", ErrLengthMismatch, len(actual), len(estimated))
	}
	if len(actual) < 2 {
		return 0, fmt.Errorf("r2 needs at least 2 samples, got %d: %w", len(actual), ErrZeroVariance)
	}
	ssTot := TotalSumOfSquares(actual)
	if ssTot == 0 {
		return 0, fmt.Errorf("price column is constant: %w", ErrZeroVariance)
	}
	return 1 - SumSquaredResiduals(actual, estimated)/ssTot, nil
}

// StepLabel is "step_<n>" with n 1-indexed, or "final" for FinalStep.
func StepLabel(step int) string {
	if step == FinalStep {
		return "final"
	}
	return fmt.Sprintf("step_%d", step+1)
}

// Plotter renders an evaluation as an artifact named label.
type Plotter interface {
	Render(label string, mileage, actual, estimated []float64) error
}

type Evaluation struct {
	Step  int
	Label string
	R2    float64
	SSR   float64
}

// Evaluator is an Observer that scores each snapshot and optionally plots it.
// Plot failures are logged and never stop training.
type Evaluator struct {
	plotter Plotter
	logger  *zap.Logger
	history []Evaluation
}

func NewEvaluator(plotter Plotter, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{plotter: plotter, logger: logger}
}

func (e *Evaluator) Observe(s Snapshot) error {
	label := s.Label()
	r2, err := R2(s.Actual, s.Estimated)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", label, err)
	}
	ev := Evaluation{
		Step:  s.Step,
		Label: label,
		R2:    r2,
		SSR:   SumSquaredResiduals(s.Actual, s.Estimated),
	}
	e.history = append(e.history, ev)
	e.logger.Info("coefficient of determination",
		zap.String("label", label),
		zap.Float64("r2", r2),
		zap.Float64("mse", ev.SSR/float64(len(s.Actual))),
	)

	if e.plotter != nil {
		if err := e.plotter.Render(label, s.Mileage, s.Actual, s.Estimated); err != nil {
			e.logger.Warn("plot not rendered", zap.String("label", label), zap.Error(err))
		}
	}
	return nil
}

// History returns the evaluations recorded so far, oldest first.
func (e *Evaluator) History() []Evaluation {
	out := make([]Evaluation, len(e.history))
	copy(out, e.history)
	return out
}

func (e *Evaluator) Last() (Evaluation, bool) {
	if len(e.history) == 0 {
		return Evaluation{}, false
	}
	return e.history[len(e.history)-1], true
}
