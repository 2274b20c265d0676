package domain

import (
	"strings"
	"testing"
	"time"
)

func entryAt(id string, created time.Time) CourierEntry {
	return CourierEntry{
		ID:               id,
		Invoice:          "INV-" + id,
		RecipientName:    "Rahim Uddin",
		RecipientPhone:   "01712345678",
		RecipientAddress: "House 12, Road 3, Dhanmondi, Dhaka",
		CODAmount:        1500,
		Status:           StatusPending,
		CreatedAt:        created,
	}
}

func TestFilterEntriesDateBounds(t *testing.T) {
	boundary := time.Date(2026, 3, 10, 9, 30, 0, 0, time.Local)
	entries := []CourierEntry{
		entryAt("before", boundary.AddDate(0, 0, -1)),
		entryAt("on", boundary),
		entryAt("after", boundary.AddDate(0, 0, 2)),
	}

	got := FilterEntries(entries, ReportFilters{DateFrom: "2026-03-10", Status: "all"})
	if len(got) != 2 || got[0].ID != "on" || got[1].ID != "after" {
		t.Fatalf("dateFrom filter = %v", ids(got))
	}

	got = FilterEntries(entries, ReportFilters{DateTo: "2026-03-10", Status: "all"})
	if len(got) != 2 || got[0].ID != "before" || got[1].ID != "on" {
		t.Fatalf("dateTo filter = %v", ids(got))
	}
}

func TestFilterEntriesStatusAndSearch(t *testing.T) {
	now := time.Now()
	delivered := entryAt("a", now)
	delivered.Status = StatusDelivered
	delivered.Note = "Fragile: glass items"
	pending := entryAt("b", now)

	entries := []CourierEntry{delivered, pending}

	got := FilterEntries(entries, ReportFilters{Status: "delivered"})
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("status filter = %v", ids(got))
	}

	// Search is case-insensitive and matches any of the five text fields.
	got = FilterEntries(entries, ReportFilters{Status: "all", SearchTerm: "FRAGILE"})
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("search filter = %v", ids(got))
	}

	got = FilterEntries(entries, ReportFilters{Status: "all", SearchTerm: "01712345678"})
	if len(got) != 2 {
		t.Fatalf("phone search = %v, want both entries", ids(got))
	}

	// Conjunctive: status and search must both match.
	got = FilterEntries(entries, ReportFilters{Status: "pending", SearchTerm: "fragile"})
	if len(got) != 0 {
		t.Fatalf("conjunctive filter = %v, want none", ids(got))
	}
}

func TestExportCSVQuoting(t *testing.T) {
	e := entryAt("a", time.Date(2026, 1, 5, 14, 30, 0, 0, time.Local))
	e.RecipientAddress = `He said "hi"`
	e.Note = "leave at gate"

	csv := ExportCSV([]CourierEntry{e})
	lines := strings.Split(csv, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if lines[0] != "Invoice,Recipient Name,Phone,Address,COD Amount,Status,Note,Created At" {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], `"He said ""hi"""`) {
		t.Fatalf("address not escaped: %q", lines[1])
	}
	if !strings.Contains(lines[1], "05 Jan 2026 14:30") {
		t.Fatalf("created-at format wrong: %q", lines[1])
	}
	if strings.HasSuffix(csv, "\n") {
		t.Fatalf("unexpected trailing newline")
	}
}

func TestExportCSVEmpty(t *testing.T) {
	csv := ExportCSV(nil)
	if csv != "Invoice,Recipient Name,Phone,Address,COD Amount,Status,Note,Created At" {
		t.Fatalf("empty export = %q", csv)
	}
}

func TestMapDeliveryStatus(t *testing.T) {
	cases := []struct {
		in   string
		want Status
	}{
		{"delivered", StatusDelivered},
		{"delivered_approval_pending", StatusDelivered},
		{"partial_delivered_approval_pending", StatusPartialDelivered},
		{"cancelled", StatusCancelled},
		{"hold", StatusHold},
		{"something_else", StatusUnknown},
		{"", StatusUnknown},
	}
	for _, tc := range cases {
		if got := MapDeliveryStatus(tc.in); got != tc.want {
			t.Fatalf("MapDeliveryStatus(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func ids(entries []CourierEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}
