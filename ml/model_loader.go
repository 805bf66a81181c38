package ml

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

const DefaultCoefficientsPath = "thetas.txt"

var ErrMalformedCoefficients = errors.New("malformed coefficients file")

// SaveCoefficients writes theta0 and theta1 on two lines. The file is
// replaced atomically so readers never observe a partial write.
func SaveCoefficients(path string, c Coefficients) error {
	if !c.IsFinite() {
		return fmt.Errorf("refusing to save non-finite coefficients %+v: %w", c, ErrDiverged)
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".thetas-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	payload := strconv.FormatFloat(c.Theta0, 'f', -1, 64) + "\n" +
		strconv.FormatFloat(c.Theta1, 'f', -1, 64) + "\n"
	if _, err := tmp.WriteString(payload); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadCoefficients reads the whole file before parsing it. Lines past the
// second are ignored.
func LoadCoefficients(path string) (Coefficients, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return Coefficients{}, err
	}
	lines := strings.Split(strings.TrimSpace(string(payload)), "\n")
	if len(lines) < 2 {
		return Coefficients{}, fmt.Errorf("%w: expected 2 lines, got %d", ErrMalformedCoefficients, len(lines))
	}
	theta0, err := strconv.ParseFloat(strings.TrimSpace(lines[0]), 64)
	if err != nil {
		return Coefficients{}, fmt.Errorf("%w: theta0: %v", ErrMalformedCoefficients, err)
	}
	theta1, err := strconv.ParseFloat(strings.TrimSpace(lines[1]), 64)
	if err != nil {
		return Coefficients{}, fmt.Errorf("%w: theta1: %v", ErrMalformedCoefficients, err)
	}
	c := Coefficients{Theta0: theta0, Theta1: theta1}
	if !c.IsFinite() {
		return Coefficients{}, fmt.Errorf("%w: non-finite values %v, %v", ErrMalformedCoefficients, theta0, theta1)
	}
	return c, nil
}

// LoadCoefficientsOrDefault falls back to zero coefficients when the file is
// missing or unreadable, so prediction keeps working.
func LoadCoefficientsOrDefault(path string, logger *zap.Logger) Coefficients {
	if logger == nil {
		logger = zap.NewNop()
	}
	c, err := LoadCoefficients(path)
	if err != nil {
		logger.Warn("could not read coefficients, using 0, 0",
			zap.String("path", path),
			zap.Error(err),
		)
		return Coefficients{}
	}
	logger.Debug("coefficients loaded",
		zap.String("path", path),
		zap.Float64("theta0", c.Theta0),
		zap.Float64("theta1", c.Theta1),
	)
	return c
}
