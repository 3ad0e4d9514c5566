package tokenizer

import (
	"errors"
	"fmt"
)

// Sentinel errors for tokenizer operations.
var (
	// ErrUnsupportedModel indicates no initialized tokenizer serves the model.
	ErrUnsupportedModel = errors.New("unsupported model")

	// ErrUnknownBackend indicates the requested encoder backend does not exist.
	ErrUnknownBackend = errors.New("unknown tokenizer backend")
)

// UnsupportedModelError reports the model that could not be counted.
// It matches ErrUnsupportedModel with errors.Is.
type UnsupportedModelError struct {
	Model string
}

// Error implements the error interface.
func (e *UnsupportedModelError) Error() string {
	return fmt.Sprintf("model %s not supported", e.Model)
}

// Unwrap returns ErrUnsupportedModel for errors.Is support.
func (e *UnsupportedModelError) Unwrap() error {
	return ErrUnsupportedModel
}

// IsUnsupportedModel reports whether err is an unsupported-model error.
func IsUnsupportedModel(err error) bool {
	return errors.Is(err, ErrUnsupportedModel)
}
