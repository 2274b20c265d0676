package application

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/viralforge/courierdesk/internal/domain"
)

// CourierBreakdownItem is one itemized row of the delivery-history view.
// Couriers with no recorded parcels are omitted from the breakdown but stay
// in the raw details map.
type CourierBreakdownItem struct {
	Slug        string `json:"slug"`
	DisplayName string `json:"display_name"`
	Total       int    `json:"total"`
	Success     int    `json:"success"`
	Cancel      int    `json:"cancel"`
	SuccessRate int    `json:"success_rate"`
}

// DeliveryHistoryResult is the merged cross-source report for one phone
// number. Aggregator and Fraud are nil when the corresponding feed was
// unavailable; Passthrough carries the aggregator feed's extra top-level
// fields unchanged.
type DeliveryHistoryResult struct {
	Phone       string                     `json:"phone"`
	Combined    domain.CourierTotals       `json:"combined"`
	Aggregator  *domain.CourierSuccessRate `json:"courier_success_rate,omitempty"`
	Fraud       *domain.FraudCounters      `json:"fraud_check,omitempty"`
	Breakdown   []CourierBreakdownItem     `json:"breakdown"`
	Passthrough map[string]any             `json:"upstream,omitempty"`
}

// DeliveryHistory fires both statistics feeds concurrently and merges
// whatever came back. A failed feed degrades to nil rather than aborting the
// other; with both feeds down the result is an all-zero report, not an error.
// The fraud-check feed is skipped entirely when no credentials are stored.
func (s *Service) DeliveryHistory(ctx context.Context, rawPhone string) (DeliveryHistoryResult, error) {
	phone := domain.NormalizePhone(rawPhone)
	if !domain.IsValidPhone(phone) {
		return DeliveryHistoryResult{}, domain.ErrInvalidPhone
	}

	var (
		aggregator  *domain.CourierSuccessRate
		fraud       *domain.FraudCounters
		passthrough map[string]any
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		res, err := s.aggregator.Search(gctx, phone)
		if err != nil {
			s.log.Warn("aggregator feed unavailable", "error", err)
			return nil
		}
		summary := domain.SummarizeAggregatorFeed(res.Summaries)
		aggregator = &summary
		passthrough = res.Payload
		return nil
	})
	g.Go(func() error {
		creds, err := s.creds.Get(gctx)
		if err != nil {
			return nil
		}
		payload, err := s.gateway.FraudCheck(gctx, creds, phone)
		if err != nil {
			s.log.Warn("fraud-check feed unavailable", "error", err)
			return nil
		}
		counters := domain.ParseFraudCounters(payload)
		fraud = &counters
		return nil
	})
	// Feed failures are swallowed above, so the only group error is context
	// cancellation.
	if err := g.Wait(); err != nil {
		return DeliveryHistoryResult{}, fmt.Errorf("delivery history: %w", err)
	}

	return DeliveryHistoryResult{
		Phone:       phone,
		Combined:    domain.CombineDeliveryHistory(aggregator, fraud),
		Aggregator:  aggregator,
		Fraud:       fraud,
		Breakdown:   buildBreakdown(aggregator),
		Passthrough: passthrough,
	}, nil
}

func buildBreakdown(aggregator *domain.CourierSuccessRate) []CourierBreakdownItem {
	items := []CourierBreakdownItem{}
	if aggregator == nil {
		return items
	}
	for _, m := range domain.CourierMappings {
		d, ok := aggregator.Details[m.Slug]
		if !ok || d.Total == 0 {
			continue
		}
		items = append(items, CourierBreakdownItem{
			Slug:        m.Slug,
			DisplayName: m.DisplayName,
			Total:       d.Total,
			Success:     d.Success,
			Cancel:      d.Cancel,
			SuccessRate: domain.SuccessRate(d.Success, d.Total),
		})
	}
	return items
}
