// Package errorspkg provides common app errors.
package errorspkg

import (
	"errors"
	"fmt"
)

// ErrInternal indicates internal server error.
var ErrInternal = errors.New("internal")

// ConsistencyError indicates that a cross-entity operation partially failed
// and could not be rolled back. It must never be silently swallowed; the
// failed operation is recorded durably for manual reconciliation.
type ConsistencyError struct {
	Op  string
	Err error
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency violation in %s: %v", e.Op, e.Err)
}

func (e *ConsistencyError) Unwrap() error {
	return e.Err
}
