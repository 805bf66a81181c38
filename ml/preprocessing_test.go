package ml

import (
	"errors"
	"math"
	"testing"
)

func TestMinMaxScalerRoundTrip(t *testing.T) {
	mileage := []float64{240000, 139800, 150500, 185530, 176000, 114800, 22899, 61789}

	scaler, err := FitMinMax(mileage)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scaler.Min != 22899 || scaler.Max != 240000 {
		t.Fatalf("unexpected bounds: %+v", scaler)
	}

	normalized := scaler.TransformAll(mileage)
	for i, v := range normalized {
		if v < 0 || v > 1 {
			t.Fatalf("expected normalized value between 0 and 1, got %f", v)
		}
		back := scaler.Inverse(v)
		if math.Abs(back-mileage[i]) > 1e-9*mileage[i] {
			t.Errorf("round trip of %v gave %v", mileage[i], back)
		}
	}
	restored := scaler.InverseAll(normalized)
	if len(restored) != len(mileage) || math.Abs(restored[3]-mileage[3]) > 1e-9*mileage[3] {
		t.Errorf("InverseAll did not restore mileage: %v", restored)
	}
	if normalized[0] != 1 || normalized[6] != 0 {
		t.Fatalf("expected max to map to 1 and min to 0, got %v and %v", normalized[0], normalized[6])
	}
}

func TestFitMinMaxRejectsDegenerateInput(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   error
	}{
		{name: "empty", values: nil, want: ErrEmptyDataset},
		{name: "single value", values: []float64{42}, want: ErrZeroVariance},
		{name: "constant column", values: []float64{1000, 1000, 1000}, want: ErrZeroVariance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitMinMax(tt.values)
			if !errors.Is(err, tt.want) {
				t.Errorf("FitMinMax() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRescaleMatchesNormalizedModel(t *testing.T) {
	scaler := MinMaxScaler{Min: 22899, Max: 240000}
	scaled := Coefficients{Theta0: 8012.5, Theta1: -4651.3}

	raw := Rescale(scaled, scaler)
	for _, x := range []float64{22899, 50000, 100000, 175000.5, 240000} {
		want := scaled.Theta0 + scaled.Theta1*scaler.Transform(x)
		got := raw.Estimate(x)
		if math.Abs(got-want) > 1e-9*math.Abs(want) {
			t.Errorf("x=%v: raw model gave %v, normalized model gave %v", x, got, want)
		}
	}
}
