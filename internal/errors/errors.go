// internal/errors/errors.go
package appErrors

import "fmt"

// ErrModelNotFound means no model has been trained yet
type ErrModelNotFound struct{}

func (e *ErrModelNotFound) Error() string {
	return "no trained model found, run /train first"
}

func NewModelNotFound() error {
	return &ErrModelNotFound{}
}

// ErrInsufficientData is returned when there are too few rows to cluster
type ErrInsufficientData struct {
	Samples  int
	Required int
}

func (e *ErrInsufficientData) Error() string {
	return fmt.Sprintf("insufficient training data: have %d rows, need at least %d", e.Samples, e.Required)
}

func NewInsufficientData(samples, required int) error {
	return &ErrInsufficientData{Samples: samples, Required: required}
}

// ErrNonFiniteValue is returned when a stored row holds NaN or Inf
type ErrNonFiniteValue struct {
	Row     int
	Feature string
	Value   float64
}

func (e *ErrNonFiniteValue) Error() string {
	return fmt.Sprintf("invalid training data: row %d has non-finite %s (%v)", e.Row, e.Feature, e.Value)
}

func NewNonFiniteValue(row int, feature string, value float64) error {
	return &ErrNonFiniteValue{Row: row, Feature: feature, Value: value}
}

// ErrFeatureMismatch is returned when an input vector does not fit the model
type ErrFeatureMismatch struct {
	Got  int
	Want int
}

func (e *ErrFeatureMismatch) Error() string {
	return fmt.Sprintf("input has %d features, model expects %d", e.Got, e.Want)
}

func NewFeatureMismatch(got, want int) error {
	return &ErrFeatureMismatch{Got: got, Want: want}
}

// ErrTrainingRunNotFound is a sentinel error
type ErrTrainingRunNotFound struct {
	RunID string
}

func (e *ErrTrainingRunNotFound) Error() string {
	return fmt.Sprintf("training run with ID %s not found", e.RunID)
}

// Helper constructor
func NewTrainingRunNotFound(id string) error {
	return &ErrTrainingRunNotFound{RunID: id}
}
