package domain

import (
	"strconv"
	"strings"
	"time"
)

// ReportFilters is the ephemeral filter state for the report view. Dates are
// 2006-01-02 strings; empty fields and status "all" disable their predicate.
type ReportFilters struct {
	DateFrom   string
	DateTo     string
	Status     string
	SearchTerm string
}

// createdAtFormat is the deterministic en-GB style stamp used in CSV exports,
// e.g. "05 Jan 2026 14:30".
const createdAtFormat = "02 Jan 2006 15:04"

// FilterEntries returns the order-preserving subsequence of entries matching
// all active filters. Date bounds are inclusive: dateFrom truncates to start
// of day and dateTo extends to end of day in local time.
func FilterEntries(entries []CourierEntry, f ReportFilters) []CourierEntry {
	var from, to time.Time
	if d, err := time.ParseInLocation("2006-01-02", f.DateFrom, time.Local); err == nil && f.DateFrom != "" {
		from = d
	}
	if d, err := time.ParseInLocation("2006-01-02", f.DateTo, time.Local); err == nil && f.DateTo != "" {
		to = d.Add(24*time.Hour - time.Nanosecond)
	}
	term := strings.ToLower(strings.TrimSpace(f.SearchTerm))

	out := make([]CourierEntry, 0, len(entries))
	for _, e := range entries {
		if !from.IsZero() && e.CreatedAt.In(time.Local).Before(from) {
			continue
		}
		if !to.IsZero() && e.CreatedAt.In(time.Local).After(to) {
			continue
		}
		if f.Status != "" && f.Status != "all" && string(e.Status) != f.Status {
			continue
		}
		if term != "" && !entryMatches(e, term) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func entryMatches(e CourierEntry, term string) bool {
	for _, field := range []string{e.Invoice, e.RecipientName, e.RecipientPhone, e.RecipientAddress, e.Note} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

var csvHeader = []string{"Invoice", "Recipient Name", "Phone", "Address", "COD Amount", "Status", "Note", "Created At"}

// ExportCSV serializes entries to the fixed 8-column report CSV. Only the
// address and note columns carry free text, so only they are quoted, with
// embedded quotes doubled. Rows are newline-joined without a trailing newline.
func ExportCSV(entries []CourierEntry) string {
	var b strings.Builder
	b.WriteString(strings.Join(csvHeader, ","))
	for _, e := range entries {
		row := []string{
			e.Invoice,
			e.RecipientName,
			e.RecipientPhone,
			quoteCSV(e.RecipientAddress),
			strconv.FormatFloat(e.CODAmount, 'f', -1, 64),
			string(e.Status),
			quoteCSV(e.Note),
			e.CreatedAt.In(time.Local).Format(createdAtFormat),
		}
		b.WriteString("\n")
		b.WriteString(strings.Join(row, ","))
	}
	return b.String()
}

func quoteCSV(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// BackupDocument is the portable export format for local records.
type BackupDocument struct {
	Version    string         `json:"version"`
	ExportedAt string         `json:"exportedAt"`
	Entries    []CourierEntry `json:"entries"`
}

// ExportFileName builds the dated report download name, e.g.
// courier-report-2026-08-30.csv.
func ExportFileName(now time.Time) string {
	return "courier-report-" + now.Format("2006-01-02") + ".csv"
}

// BackupFileName builds the dated Drive backup name.
func BackupFileName(now time.Time) string {
	return "courier-backup-" + now.Format("2006-01-02") + ".json"
}
