package domain

import "testing"

func TestSummarizeAggregatorFeedSingleCourier(t *testing.T) {
	summaries := map[string]map[string]any{
		"Pathao": {
			"Total Delivery":      float64(10),
			"Successful Delivery": float64(8),
			"Canceled Delivery":   float64(2),
		},
	}
	out := SummarizeAggregatorFeed(summaries)
	if out.Total.Total != 10 || out.Total.Success != 8 {
		t.Fatalf("subtotal = %+v, want total 10 success 8", out.Total)
	}
	if out.Total.SuccessRate != 80 {
		t.Fatalf("rate = %d, want 80", out.Total.SuccessRate)
	}
	if d := out.Details["pathao"]; d.Cancel != 2 {
		t.Fatalf("pathao cancel = %d, want 2", d.Cancel)
	}
	// Absent couriers still appear with zero counters.
	for _, slug := range []string{"steadfast", "redx", "carrybee"} {
		d, ok := out.Details[slug]
		if !ok {
			t.Fatalf("missing details for %s", slug)
		}
		if d.Total != 0 || d.Success != 0 || d.Cancel != 0 {
			t.Fatalf("%s counters = %+v, want zeros", slug, d)
		}
	}
}

func TestSummarizeAggregatorFeedLegacyString(t *testing.T) {
	summaries := map[string]map[string]any{
		"Pathao": {
			"Total Delivery":      float64(10),
			"Successful Delivery": float64(8),
			"Canceled Delivery":   float64(2),
		},
	}
	out := SummarizeAggregatorFeed(summaries)
	want := "total_result:10:8:80|pathao:10:8:80|steadfast:0:0:0|redx:0:0:0|carrybee:0:0:0"
	if out.Legacy != want {
		t.Fatalf("legacy string = %q, want %q", out.Legacy, want)
	}
}

func TestSummarizeAggregatorFeedEmpty(t *testing.T) {
	out := SummarizeAggregatorFeed(nil)
	if out.Total.Total != 0 || out.Total.SuccessRate != 0 {
		t.Fatalf("empty feed total = %+v, want zeros", out.Total)
	}
	if len(out.Details) != len(CourierMappings) {
		t.Fatalf("details size = %d, want %d", len(out.Details), len(CourierMappings))
	}
}

func TestSuccessRateRounding(t *testing.T) {
	cases := []struct {
		success, total, want int
	}{
		{8, 10, 80},
		{13, 15, 87},
		{1, 3, 33},
		{1, 2, 50},
		{5, 1000, 1}, // 0.5% rounds half up
		{0, 0, 0},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := SuccessRate(tc.success, tc.total); got != tc.want {
			t.Fatalf("SuccessRate(%d, %d) = %d, want %d", tc.success, tc.total, got, tc.want)
		}
	}
}

func TestCoerceCount(t *testing.T) {
	cases := []struct {
		in   any
		want int
	}{
		{float64(7), 7},
		{"5", 5},
		{" 12 ", 12},
		{"abc", 0},
		{nil, 0},
		{true, 0},
		{[]any{1}, 0},
	}
	for _, tc := range cases {
		if got := CoerceCount(tc.in); got != tc.want {
			t.Fatalf("CoerceCount(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestParseFraudCountersStringValues(t *testing.T) {
	out := ParseFraudCounters(map[string]any{
		"total_parcels":   "5",
		"total_delivered": "5",
		"total_cancelled": "0",
	})
	if out.Total != 5 || out.Delivered != 5 || out.Cancelled != 0 {
		t.Fatalf("counters = %+v, want {5 5 0}", out)
	}
}

func TestCombineDeliveryHistory(t *testing.T) {
	aggregator := &CourierSuccessRate{Total: CourierTotals{Total: 10, Success: 8, SuccessRate: 80}}
	fraud := &FraudCounters{Total: 5, Delivered: 5, Cancelled: 0}

	combined := CombineDeliveryHistory(aggregator, fraud)
	if combined.Total != 15 || combined.Success != 13 {
		t.Fatalf("combined = %+v, want total 15 success 13", combined)
	}
	if combined.SuccessRate != 87 {
		t.Fatalf("combined rate = %d, want 87", combined.SuccessRate)
	}
}

func TestCombineDeliveryHistoryDegraded(t *testing.T) {
	aggregator := &CourierSuccessRate{Total: CourierTotals{Total: 10, Success: 8}}
	if got := CombineDeliveryHistory(aggregator, nil); got.Total != 10 || got.SuccessRate != 80 {
		t.Fatalf("aggregator-only combine = %+v", got)
	}
	fraud := &FraudCounters{Total: 4, Delivered: 2}
	if got := CombineDeliveryHistory(nil, fraud); got.Total != 4 || got.SuccessRate != 50 {
		t.Fatalf("fraud-only combine = %+v", got)
	}
	if got := CombineDeliveryHistory(nil, nil); got.Total != 0 || got.Success != 0 || got.SuccessRate != 0 {
		t.Fatalf("both-nil combine = %+v, want zeros", got)
	}
}

func TestSummarizeAggregatorFeedPassesThroughMalformedCounters(t *testing.T) {
	// success + cancel > total comes straight from the untrusted feed and is
	// reported unmodified.
	summaries := map[string]map[string]any{
		"RedX": {
			"Total Parcels":     float64(3),
			"Delivered Parcels": float64(4),
			"Canceled Parcels":  float64(2),
		},
	}
	out := SummarizeAggregatorFeed(summaries)
	d := out.Details["redx"]
	if d.Success != 4 || d.Cancel != 2 || d.Total != 3 {
		t.Fatalf("redx detail = %+v, want pass-through {4 2 3}", d)
	}
}
