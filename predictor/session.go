// Package predictor implements the interactive price prediction loop.
package predictor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ChristopherOoi/ft-linear-regression/ml"
)

const (
	Prompt    = "Enter mileage or 'exit' to quit: "
	ExitToken = "exit"

	// MaxLineLength bounds a single input line. Longer lines are discarded
	// and reported as invalid input.
	MaxLineLength = 64 * 1024
)

var ErrLineTooLong = errors.New("input line too long")

// Session reads one mileage per line and prints the estimated price. A bad
// line is reported and the loop continues; "exit" or end of input stops it.
type Session struct {
	in      *bufio.Reader
	out     io.Writer
	coeffs  ml.Coefficients
	printer *message.Printer
	logger  *zap.Logger
}

func NewSession(in io.Reader, out io.Writer, coeffs ml.Coefficients, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Session{
		in:      bufio.NewReader(in),
		out:     out,
		coeffs:  coeffs,
		printer: message.NewPrinter(language.English),
		logger:  logger,
	}
}

func (s *Session) Run() error {
	for {
		fmt.Fprint(s.out, Prompt)
		raw, err := s.readLine()
		if errors.Is(err, ErrLineTooLong) {
			s.logger.Debug("rejected input", zap.Error(err))
			fmt.Fprintf(s.out, "Invalid input: %v\n", err)
			continue
		}
		if err != nil {
			fmt.Fprintln(s.out)
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if strings.EqualFold(line, ExitToken) {
			fmt.Fprintln(s.out, "Exiting the program.")
			return nil
		}

		price, err := s.Predict(line)
		if err != nil {
			s.logger.Debug("rejected input", zap.String("input", line), zap.Error(err))
			fmt.Fprintf(s.out, "Invalid input: %v\n", err)
			continue
		}
		// English grouping, e.g. $21,000.00.
		s.printer.Fprintf(s.out, "The estimated price of the car is: $%.2f\n", price)
	}
}

// readLine returns the next line without its terminator. A line longer than
// MaxLineLength is consumed up to its newline and reported as ErrLineTooLong.
func (s *Session) readLine() (string, error) {
	var line []byte
	tooLong := false
	for {
		chunk, isPrefix, err := s.in.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(line) > 0 || tooLong) {
				break
			}
			return "", err
		}
		if !tooLong {
			if len(line)+len(chunk) > MaxLineLength {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			break
		}
	}
	if tooLong {
		return "", fmt.Errorf("%w (limit %d bytes)", ErrLineTooLong, MaxLineLength)
	}
	return string(line), nil
}

// Predict parses a mileage and returns its estimated price.
func (s *Session) Predict(input string) (float64, error) {
	mileage, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || math.IsNaN(mileage) || math.IsInf(mileage, 0) {
		return 0, fmt.Errorf("%q is not a valid mileage", input)
	}
	if err := ml.ValidateMileage(mileage); err != nil {
		return 0, err
	}
	return s.coeffs.Estimate(mileage), nil
}
