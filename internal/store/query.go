/**
 * @description
 * Generic filter -> paginate pipeline shared by every list operation. The
 * pipeline never re-sorts: pagination slices the collection in its current
 * order, so callers that need chronological order rely on the stores'
 * newest-first insertion order.
 */

package store

import (
	"strings"
	"time"

	"github.com/transfa/console-engine/internal/domain"
)

// filterItems returns the items for which keep is true, preserving order.
func filterItems[T any](items []T, keep func(*T) bool) []T {
	out := make([]T, 0, len(items))
	for i := range items {
		if keep(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

// paginate slices items per the already-normalized page/limit and builds the
// shared envelope. A page beyond range yields empty data with the correct
// total and totalPages.
func paginate[T any](items []T, page, limit int) *domain.Page[T] {
	total := len(items)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	end := start + limit
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	data := make([]T, end-start)
	copy(data, items[start:end])

	return &domain.Page[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
}

// containsFold reports whether haystack contains needle, case-insensitively.
// An empty needle matches everything.
func containsFold(haystack, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// matchesAnyFold reports whether any of the fields contains needle.
func matchesAnyFold(needle string, fields ...string) bool {
	if needle == "" {
		return true
	}
	for _, f := range fields {
		if containsFold(f, needle) {
			return true
		}
	}
	return false
}

// inRange reports whether t falls within [from, to], inclusive. A zero bound
// leaves that side open.
func inRange(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && t.After(to) {
		return false
	}
	return true
}
