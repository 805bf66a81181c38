package db

import (
	"path/filepath"
	"testing"
	"time"
)

func TestStoreTrainingRuns(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "data", "training.db"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer store.Close()

	base := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, lr := range []float64{0.05, 0.1, 0.5} {
		_, err := store.SaveTrainingRun(TrainingRun{
			DatasetPath:  "data.csv",
			LearningRate: lr,
			Epochs:       10000,
			Theta0:       8499.6,
			Theta1:       -0.0214,
			R2:           0.73,
			DataPoints:   24,
			TrainedAt:    base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	runs, err := store.RecentTrainingRuns(2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].LearningRate != 0.5 || runs[1].LearningRate != 0.1 {
		t.Errorf("expected newest runs first, got %v then %v", runs[0].LearningRate, runs[1].LearningRate)
	}
	if !runs[0].TrainedAt.Equal(base.Add(2 * time.Hour)) {
		t.Errorf("unexpected trained_at: %v", runs[0].TrainedAt)
	}
	if runs[0].DataPoints != 24 || runs[0].Epochs != 10000 {
		t.Errorf("unexpected run: %+v", runs[0])
	}
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
