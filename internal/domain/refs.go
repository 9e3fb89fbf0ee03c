package domain

import (
	"strings"

	"github.com/google/uuid"
)

// Human-readable reference codes shown in the console. They are derived from
// the entity UUID so a record and its reference can never drift apart.

// ClientCode returns the display code for a client id, e.g. CLI-1A2B3C4D.
func ClientCode(id uuid.UUID) string {
	return "CLI-" + refFragment(id, 8)
}

// TransactionRef returns the display reference for a transaction id.
func TransactionRef(id uuid.UUID) string {
	return "TXN-" + refFragment(id, 12)
}

// BatchRef returns the display reference for a settlement batch id.
func BatchRef(id uuid.UUID) string {
	return "SETTLE-" + refFragment(id, 10)
}

func refFragment(id uuid.UUID, n int) string {
	hex := strings.ToUpper(strings.ReplaceAll(id.String(), "-", ""))
	if n > len(hex) {
		n = len(hex)
	}
	return hex[:n]
}
