/*
errors.go - Centralized error types for the ledger store

PURPOSE:
  All store-level error types in one place. Value-level errors (range,
  format) live in package validate and structural errors in package tabular;
  this file covers what only the store can detect: conflicts between a new
  entity and the table it is entering.

USAGE:
  if errors.Is(err, ledger.ErrUniquenessConflict) {
      // duplicate email - reject the input, re-prompt upstream
  }
*/
package ledger

import (
	"errors"
	"fmt"

	"github.com/warp/ledger-engine/tabular"
	"github.com/warp/ledger-engine/validate"
)

var (
	// ErrUniquenessConflict is returned when an insertion would duplicate a
	// field the table keeps unique (client email, case-insensitive).
	ErrUniquenessConflict = errors.New("uniqueness conflict")

	// ErrInvalidEmail is returned when a client is added with a
	// syntactically invalid email.
	ErrInvalidEmail = errors.New("invalid email")
)

// UniquenessError reports which field and value collided, and with which
// existing entity.
type UniquenessError struct {
	Field      string
	Value      string
	ExistingID int
}

func (e *UniquenessError) Error() string {
	return fmt.Sprintf("%s %q already used by id %d", e.Field, e.Value, e.ExistingID)
}

func (e *UniquenessError) Unwrap() error { return ErrUniquenessConflict }

// IsClientError reports whether the error is caused by invalid input rather
// than by the store itself. The interactive layer re-prompts on these.
func IsClientError(err error) bool {
	return errors.Is(err, ErrUniquenessConflict) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, validate.ErrRange) ||
		errors.Is(err, validate.ErrFormat) ||
		errors.Is(err, tabular.ErrStructure)
}
