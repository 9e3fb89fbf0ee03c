/**
 * @description
 * Error kinds shared across the console-engine. Every failure surfaced by the
 * engine wraps exactly one of these sentinels, so callers can classify with
 * errors.Is without string matching.
 */

package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means a referenced entity does not exist in its store.
	ErrNotFound = errors.New("not found")
	// ErrInvalidArgument means the input is malformed or out of range,
	// including pagination and refund-amount bounds.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrInvalidState means the operation is not legal in the entity's
	// current lifecycle state.
	ErrInvalidState = errors.New("invalid state")
)

func wrapInvalidArgument(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInvalidArgument)
}

