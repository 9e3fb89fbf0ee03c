/**
 * @description
 * List options and the shared pagination envelope used by every list
 * operation of the engine.
 */

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Default page size applied when ListOptions.Limit is zero.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// ListOptions controls filtering and pagination for list operations.
// Zero values mean "not set": empty filters match everything, zero Page and
// Limit fall back to the defaults. Negative Page or Limit is invalid.
type ListOptions struct {
	Search   string
	Status   string
	ClientID uuid.UUID
	From     time.Time
	To       time.Time
	Page     int
	Limit    int
}

// Normalize applies pagination defaults and validates bounds.
func (o ListOptions) Normalize() (ListOptions, error) {
	if o.Page < 0 || o.Limit < 0 {
		return o, wrapInvalidArgument("page and limit must not be negative")
	}
	if o.Page == 0 {
		o.Page = DefaultPage
	}
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	return o, nil
}

// Page is the pagination envelope shared by all list operations.
type Page[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
}
