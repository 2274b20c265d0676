package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/viralforge/courierdesk/internal/domain"
	"github.com/viralforge/courierdesk/internal/ports"
)

// ExtractOrder runs AI extraction over free-form order text and cleans the
// result: fields trimmed, phone normalized, COD clamped to non-negative, and
// a generated invoice id when the text carried none. The phone is not
// validated here; the operator reviews extracted data before submission.
func (s *Service) ExtractOrder(ctx context.Context, rawText string) (ports.ExtractedOrder, error) {
	if strings.TrimSpace(rawText) == "" {
		return ports.ExtractedOrder{}, fmt.Errorf("%w: raw text is required", domain.ErrInvalidInput)
	}
	if len(rawText) > s.cfg.MaxExtractChars {
		return ports.ExtractedOrder{}, fmt.Errorf("%w: text exceeds %d characters", domain.ErrInvalidInput, s.cfg.MaxExtractChars)
	}
	if s.extractor == nil {
		return ports.ExtractedOrder{}, domain.ErrExtractorUnavailable
	}

	out, err := s.extractor.Extract(ctx, rawText)
	if err != nil {
		return ports.ExtractedOrder{}, fmt.Errorf("extract order: %w", err)
	}
	out.Invoice = strings.TrimSpace(out.Invoice)
	if out.Invoice == "" {
		out.Invoice = domain.NewInvoiceID(s.nowFn())
	}
	out.RecipientName = strings.TrimSpace(out.RecipientName)
	out.RecipientPhone = domain.NormalizePhone(out.RecipientPhone)
	out.RecipientAddress = strings.TrimSpace(out.RecipientAddress)
	out.Note = strings.TrimSpace(out.Note)
	if out.CODAmount < 0 {
		out.CODAmount = 0
	}
	return out, nil
}
