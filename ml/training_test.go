package ml

import (
	"errors"
	"math"
	"testing"
)

func TestTrainLinearDataset(t *testing.T) {
	data := TrainingData{
		Mileage: []float64{10000, 20000, 30000, 40000},
		Price:   []float64{20000, 18000, 16000, 14000},
	}
	evaluator := NewEvaluator(nil, nil)

	result, err := Train(data, TrainOptions{
		LearningRate: 0.1,
		Epochs:       10000,
		Observer:     evaluator,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(result.Coefficients.Theta1-(-0.2)) > 1e-6 {
		t.Errorf("theta1 = %v, want -0.2", result.Coefficients.Theta1)
	}
	if math.Abs(result.Coefficients.Theta0-22000) > 1e-2 {
		t.Errorf("theta0 = %v, want 22000", result.Coefficients.Theta0)
	}
	if math.Abs(result.R2-1) > 1e-9 {
		t.Errorf("r2 = %v, want 1", result.R2)
	}

	history := evaluator.History()
	if len(history) != 101 {
		t.Fatalf("expected 100 periodic evaluations and a final one, got %d", len(history))
	}
	if history[0].Label != "step_100" || history[99].Label != "step_10000" || history[100].Label != "final" {
		t.Errorf("unexpected labels: %s %s %s", history[0].Label, history[99].Label, history[100].Label)
	}
	if history[99].SSR > history[0].SSR {
		t.Errorf("squared residuals grew: %v -> %v", history[0].SSR, history[99].SSR)
	}
}

func TestTrainUncorrelatedDataset(t *testing.T) {
	data := TrainingData{
		Mileage: []float64{1000, 2000, 3000, 4000, 5000},
		Price:   []float64{0, 10, 20, 10, 0},
	}
	result, err := Train(data, TrainOptions{LearningRate: 0.05, Epochs: 10000})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.R2 > 1e-6 {
		t.Errorf("expected r2 close to 0, got %v", result.R2)
	}
}

func TestTrainRejectsInvalidData(t *testing.T) {
	linear := TrainingData{
		Mileage: []float64{10000, 20000, 30000, 40000},
		Price:   []float64{20000, 18000, 16000, 14000},
	}
	tests := []struct {
		name         string
		data         TrainingData
		learningRate float64
		want         error
	}{
		{name: "empty", data: TrainingData{}, want: ErrEmptyDataset},
		{name: "length mismatch", data: TrainingData{Mileage: []float64{1, 2}, Price: []float64{1}}, want: ErrLengthMismatch},
		{name: "single sample", data: TrainingData{Mileage: []float64{1}, Price: []float64{1}}, want: ErrZeroVariance},
		{name: "constant mileage", data: TrainingData{Mileage: []float64{5, 5, 5}, Price: []float64{1, 2, 3}}, want: ErrZeroVariance},
		{name: "constant price", data: TrainingData{Mileage: []float64{1, 2, 3}, Price: []float64{7, 7, 7}}, want: ErrZeroVariance},
		{name: "diverging learning rate", data: linear, learningRate: 50, want: ErrDiverged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lr, epochs := 0.1, 10
			if tt.learningRate > 0 {
				lr, epochs = tt.learningRate, 10000
			}
			_, err := Train(tt.data, TrainOptions{LearningRate: lr, Epochs: epochs})
			if !errors.Is(err, tt.want) {
				t.Errorf("Train() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTrainRejectsDivergingRun(t *testing.T) {
	data := TrainingData{
		Mileage: []float64{10000, 20000, 30000, 40000},
		Price:   []float64{20000, 18000, 16000, 14000},
	}
	evaluator := NewEvaluator(nil, nil)

	result, err := Train(data, TrainOptions{LearningRate: 50, Epochs: 10000, Observer: evaluator})
	if !errors.Is(err, ErrDiverged) {
		t.Fatalf("expected ErrDiverged, got err=%v result=%+v", err, result)
	}
	if result != nil {
		t.Errorf("expected no result for a diverging run, got %+v", result)
	}
	if last, ok := evaluator.Last(); ok && last.Label == "final" {
		t.Errorf("final evaluation must not run after divergence")
	}
}

func TestCoefficientsIsFinite(t *testing.T) {
	tests := []struct {
		name   string
		coeffs Coefficients
		want   bool
	}{
		{name: "finite", coeffs: Coefficients{Theta0: 22000, Theta1: -0.2}, want: true},
		{name: "nan intercept", coeffs: Coefficients{Theta0: math.NaN()}, want: false},
		{name: "infinite slope", coeffs: Coefficients{Theta1: math.Inf(-1)}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.coeffs.IsFinite(); got != tt.want {
				t.Errorf("IsFinite() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEstimate(t *testing.T) {
	if got := Estimate(1000, 500, 0.5); got != 1000 {
		t.Errorf("Estimate() = %v, want 1000", got)
	}
	if err := ValidateMileage(-5); !errors.Is(err, ErrNegativeMileage) {
		t.Errorf("expected negative mileage error, got %v", err)
	}
	if err := ValidateMileage(0); err != nil {
		t.Errorf("unexpected error for zero mileage: %v", err)
	}
}
