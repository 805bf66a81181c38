package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps the history of training runs in SQLite.
type Store struct {
	database *sql.DB
}

// TrainingRun is one successful training run.
type TrainingRun struct {
	ID           int64     `json:"id"`
	DatasetPath  string    `json:"dataset_path"`
	LearningRate float64   `json:"learning_rate"`
	Epochs       int       `json:"epochs"`
	Theta0       float64   `json:"theta0"`
	Theta1       float64   `json:"theta1"`
	R2           float64   `json:"r2"`
	DataPoints   int       `json:"data_points"`
	TrainedAt    time.Time `json:"trained_at"`
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	database, err := sql.Open("sqlite3", path+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database failed: %w", err)
	}

	query := `
    CREATE TABLE IF NOT EXISTS training_runs (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        dataset_path TEXT NOT NULL,
        learning_rate REAL NOT NULL,
        epochs INTEGER NOT NULL,
        theta0 REAL NOT NULL,
        theta1 REAL NOT NULL,
        r2 REAL NOT NULL,
        data_points INTEGER NOT NULL,
        trained_at DATETIME NOT NULL
    );
    CREATE INDEX IF NOT EXISTS idx_training_runs_trained_at ON training_runs(trained_at);
    `
	if _, err := database.Exec(query); err != nil {
		database.Close()
		return nil, fmt.Errorf("create tables failed: %w", err)
	}
	return &Store{database: database}, nil
}

// SaveTrainingRun inserts run and returns its id.
func (s *Store) SaveTrainingRun(run TrainingRun) (int64, error) {
	if run.TrainedAt.IsZero() {
		run.TrainedAt = time.Now()
	}
	res, err := s.database.Exec(`
        INSERT INTO training_runs (dataset_path, learning_rate, epochs, theta0, theta1, r2, data_points, trained_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.DatasetPath, run.LearningRate, run.Epochs, run.Theta0, run.Theta1, run.R2, run.DataPoints, run.TrainedAt.UTC())
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// RecentTrainingRuns returns up to limit runs, newest first.
func (s *Store) RecentTrainingRuns(limit int) ([]TrainingRun, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.database.Query(`
        SELECT id, dataset_path, learning_rate, epochs, theta0, theta1, r2, data_points, trained_at
        FROM training_runs
        ORDER BY trained_at DESC, id DESC
        LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]TrainingRun, 0)
	for rows.Next() {
		var run TrainingRun
		if err := rows.Scan(&run.ID, &run.DatasetPath, &run.LearningRate, &run.Epochs,
			&run.Theta0, &run.Theta1, &run.R2, &run.DataPoints, &run.TrainedAt); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) Close() error {
	return s.database.Close()
}
