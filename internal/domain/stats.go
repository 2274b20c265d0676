package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CourierDetail holds per-courier delivery counters as reported by the
// aggregator feed. The feed is untrusted: success+cancel may exceed total and
// values are passed through unclamped.
type CourierDetail struct {
	Success int `json:"success"`
	Cancel  int `json:"cancel"`
	Total   int `json:"total"`
}

// CourierTotals is a summed counter set with its integer success rate.
type CourierTotals struct {
	Total       int `json:"total"`
	Success     int `json:"success"`
	SuccessRate int `json:"success_rate"`
}

// CourierSuccessRate is the normalized report built from the aggregator feed.
// Legacy is a positional interchange string kept byte-compatible with older
// consumers:
//
//	total_result:<total>:<success>:<rate>|<slug>:<total>:<success>:<rate>|...
type CourierSuccessRate struct {
	Total   CourierTotals            `json:"total"`
	Legacy  string                   `json:"string"`
	Details map[string]CourierDetail `json:"details"`
}

// FraudCounters are the single-courier fraud-check counters (feed b). The
// upstream serializes them as numbers or strings interchangeably.
type FraudCounters struct {
	Total     int `json:"total_parcels"`
	Delivered int `json:"total_delivered"`
	Cancelled int `json:"total_cancelled"`
}

// CourierMapping binds an internal courier slug to the display name and
// counter field names the aggregator feed uses for that courier.
type CourierMapping struct {
	Slug         string
	DisplayName  string
	TotalField   string
	SuccessField string
	CancelField  string
}

// CourierMappings is the known-courier table, in report order. Adding a
// courier is a new row here, nothing else.
var CourierMappings = []CourierMapping{
	{Slug: "pathao", DisplayName: "Pathao", TotalField: "Total Delivery", SuccessField: "Successful Delivery", CancelField: "Canceled Delivery"},
	{Slug: "steadfast", DisplayName: "Steadfast", TotalField: "Total Parcels", SuccessField: "Delivered Parcels", CancelField: "Canceled Parcels"},
	{Slug: "redx", DisplayName: "RedX", TotalField: "Total Parcels", SuccessField: "Delivered Parcels", CancelField: "Canceled Parcels"},
	{Slug: "carrybee", DisplayName: "Carrybee", TotalField: "Total Parcels", SuccessField: "Delivered Parcels", CancelField: "Canceled Parcels"},
}

// SuccessRate is round(success/total*100) as an integer percentage, defined
// as 0 when total is 0.
func SuccessRate(success, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(success) / float64(total) * 100))
}

// CoerceCount converts an untrusted JSON scalar to a non-panicking int.
// Strings are parsed leniently, anything malformed or missing becomes 0.
func CoerceCount(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return int(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}

// SummarizeAggregatorFeed reshapes the aggregator feed's Summaries object
// into one normalized report. Couriers missing from the feed contribute
// all-zero counters but still appear in Details.
func SummarizeAggregatorFeed(summaries map[string]map[string]any) CourierSuccessRate {
	details := make(map[string]CourierDetail, len(CourierMappings))
	var totalSuccess, totalCount int
	for _, m := range CourierMappings {
		courier := summaries[m.DisplayName]
		d := CourierDetail{
			Success: CoerceCount(courier[m.SuccessField]),
			Cancel:  CoerceCount(courier[m.CancelField]),
			Total:   CoerceCount(courier[m.TotalField]),
		}
		details[m.Slug] = d
		totalSuccess += d.Success
		totalCount += d.Total
	}

	rate := SuccessRate(totalSuccess, totalCount)
	parts := make([]string, 0, len(CourierMappings)+1)
	parts = append(parts, fmt.Sprintf("total_result:%d:%d:%d", totalCount, totalSuccess, rate))
	for _, m := range CourierMappings {
		d := details[m.Slug]
		parts = append(parts, fmt.Sprintf("%s:%d:%d:%d", m.Slug, d.Total, d.Success, SuccessRate(d.Success, d.Total)))
	}

	return CourierSuccessRate{
		Total:   CourierTotals{Total: totalCount, Success: totalSuccess, SuccessRate: rate},
		Legacy:  strings.Join(parts, "|"),
		Details: details,
	}
}

// ParseFraudCounters coerces a raw fraud-check payload into counters.
func ParseFraudCounters(payload map[string]any) FraudCounters {
	return FraudCounters{
		Total:     CoerceCount(payload["total_parcels"]),
		Delivered: CoerceCount(payload["total_delivered"]),
		Cancelled: CoerceCount(payload["total_cancelled"]),
	}
}

// CombineDeliveryHistory sums the aggregator report and the fraud-check
// counters field-wise. Either feed may be nil after a fetch failure; with
// both nil the combined totals are zero with rate 0. A partial report is
// always produced, never an error.
func CombineDeliveryHistory(aggregator *CourierSuccessRate, fraud *FraudCounters) CourierTotals {
	var total, success int
	if aggregator != nil {
		total += aggregator.Total.Total
		success += aggregator.Total.Success
	}
	if fraud != nil {
		total += fraud.Total
		success += fraud.Delivered
	}
	return CourierTotals{Total: total, Success: success, SuccessRate: SuccessRate(success, total)}
}
