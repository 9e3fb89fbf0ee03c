package store

import (
	"testing"
	"time"

	"github.com/transfa/console-engine/internal/domain"
)

func TestPaginate(t *testing.T) {
	items := make([]int, 45)
	for i := range items {
		items[i] = i
	}

	tests := []struct {
		name           string
		page, limit    int
		wantLen        int
		wantTotal      int
		wantTotalPages int
		wantFirst      int
	}{
		{name: "first page", page: 1, limit: 10, wantLen: 10, wantTotal: 45, wantTotalPages: 5, wantFirst: 0},
		{name: "middle page", page: 3, limit: 10, wantLen: 10, wantTotal: 45, wantTotalPages: 5, wantFirst: 20},
		{name: "short last page", page: 5, limit: 10, wantLen: 5, wantTotal: 45, wantTotalPages: 5, wantFirst: 40},
		{name: "page beyond range", page: 9, limit: 10, wantLen: 0, wantTotal: 45, wantTotalPages: 5},
		{name: "limit larger than total", page: 1, limit: 100, wantLen: 45, wantTotal: 45, wantTotalPages: 1, wantFirst: 0},
		{name: "limit one", page: 45, limit: 1, wantLen: 1, wantTotal: 45, wantTotalPages: 45, wantFirst: 44},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := paginate(items, tt.page, tt.limit)
			if len(page.Data) != tt.wantLen {
				t.Fatalf("expected %d items, got %d", tt.wantLen, len(page.Data))
			}
			if page.Total != tt.wantTotal {
				t.Fatalf("expected total=%d, got %d", tt.wantTotal, page.Total)
			}
			if page.TotalPages != tt.wantTotalPages {
				t.Fatalf("expected totalPages=%d, got %d", tt.wantTotalPages, page.TotalPages)
			}
			if page.Page != tt.page {
				t.Fatalf("expected page=%d echoed back, got %d", tt.page, page.Page)
			}
			if tt.wantLen > 0 && page.Data[0] != tt.wantFirst {
				t.Fatalf("expected first item %d, got %d", tt.wantFirst, page.Data[0])
			}
		})
	}
}

func TestPaginateEmpty(t *testing.T) {
	page := paginate([]string{}, 1, 10)
	if page.Data == nil {
		t.Fatal("expected empty data slice, got nil")
	}
	if page.Total != 0 || page.TotalPages != 0 {
		t.Fatalf("expected zero total and totalPages, got %d and %d", page.Total, page.TotalPages)
	}
}

func TestPaginateLengthInvariant(t *testing.T) {
	// data length must equal min(limit, max(0, total-(page-1)*limit)).
	items := make([]int, 37)
	for limit := 1; limit <= 12; limit++ {
		for page := 1; page <= 8; page++ {
			got := len(paginate(items, page, limit).Data)
			want := len(items) - (page-1)*limit
			if want < 0 {
				want = 0
			}
			if want > limit {
				want = limit
			}
			if got != want {
				t.Fatalf("page=%d limit=%d: expected %d items, got %d", page, limit, want, got)
			}
		}
	}
}

func TestContainsFold(t *testing.T) {
	if !containsFold("Apex Retail 001", "apex") {
		t.Fatal("expected case-insensitive match")
	}
	if !containsFold("anything", "") {
		t.Fatal("expected empty needle to match")
	}
	if containsFold("Apex Retail", "zenith") {
		t.Fatal("expected no match")
	}
}

func TestMatchesAnyFold(t *testing.T) {
	if !matchesAnyFold("ops", "Apex Retail", "ops001@apex.example.com") {
		t.Fatal("expected match on second field")
	}
	if matchesAnyFold("zenith", "Apex Retail", "ops001@apex.example.com") {
		t.Fatal("expected no match")
	}
}

func TestInRange(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		from, to time.Time
		want     bool
	}{
		{name: "open both sides", want: true},
		{name: "inside", from: at.Add(-time.Hour), to: at.Add(time.Hour), want: true},
		{name: "inclusive lower bound", from: at, want: true},
		{name: "inclusive upper bound", to: at, want: true},
		{name: "before range", from: at.Add(time.Minute), want: false},
		{name: "after range", to: at.Add(-time.Minute), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inRange(at, tt.from, tt.to); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestListOptionsNormalize(t *testing.T) {
	opts, err := domain.ListOptions{}.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if opts.Page != 1 || opts.Limit != 10 {
		t.Fatalf("expected defaults page=1 limit=10, got page=%d limit=%d", opts.Page, opts.Limit)
	}

	if _, err := (domain.ListOptions{Limit: -1}).Normalize(); err == nil {
		t.Fatal("expected error for negative limit")
	}
	if _, err := (domain.ListOptions{Page: -3}).Normalize(); err == nil {
		t.Fatal("expected error for negative page")
	}
}
