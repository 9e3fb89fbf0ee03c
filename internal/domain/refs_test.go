package domain

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestReferenceCodes(t *testing.T) {
	id := uuid.MustParse("a1b2c3d4-e5f6-4789-8abc-def012345678")

	tests := []struct {
		name string
		got  string
		want string
	}{
		{name: "client code", got: ClientCode(id), want: "CLI-A1B2C3D4"},
		{name: "transaction ref", got: TransactionRef(id), want: "TXN-A1B2C3D4E5F6"},
		{name: "batch ref", got: BatchRef(id), want: "SETTLE-A1B2C3D4E5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Fatalf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestReferenceCodesAreStable(t *testing.T) {
	id := uuid.New()
	if ClientCode(id) != ClientCode(id) {
		t.Fatal("expected the same id to produce the same code")
	}
	if !strings.HasPrefix(TransactionRef(id), "TXN-") {
		t.Fatalf("unexpected reference %q", TransactionRef(id))
	}
}
