package ml

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// MinMaxScaler maps mileage values into [0, 1].
type MinMaxScaler struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// FitMinMax computes the scaling bounds of values. A constant column is
// rejected since it cannot be scaled.
func FitMinMax(values []float64) (MinMaxScaler, error) {
	if len(values) == 0 {
		return MinMaxScaler{}, ErrEmptyDataset
	}
	s := MinMaxScaler{Min: floats.Min(values), Max: floats.Max(values)}
	if s.Max == s.Min {
		return MinMaxScaler{}, fmt.Errorf("mileage column: all values equal %v: %w", s.Min, ErrZeroVariance)
	}
	return s, nil
}

func (s MinMaxScaler) Range() float64 {
	return s.Max - s.Min
}

func (s MinMaxScaler) Transform(x float64) float64 {
	return (x - s.Min) / s.Range()
}

func (s MinMaxScaler) Inverse(x float64) float64 {
	return x*s.Range() + s.Min
}

func (s MinMaxScaler) TransformAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = s.Transform(v)
	}
	return out
}

func (s MinMaxScaler) InverseAll(values []float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = s.Inverse(v)
	}
	return out
}

// Rescale converts coefficients fitted on scaled mileage into coefficients
// valid on raw mileage.
func Rescale(scaled Coefficients, s MinMaxScaler) Coefficients {
	theta1 := scaled.Theta1 / s.Range()
	return Coefficients{
		Theta0: scaled.Theta0 - s.Min*theta1,
		Theta1: theta1,
	}
}
