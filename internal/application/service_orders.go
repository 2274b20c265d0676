package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/viralforge/courierdesk/internal/domain"
	"github.com/viralforge/courierdesk/internal/ports"
)

// SubmitOrder validates the order, submits it to the courier gateway and
// persists the resulting entry. The recipient phone is normalized first; if
// it still fails Bangladesh mobile validation the order is rejected rather
// than corrected.
func (s *Service) SubmitOrder(ctx context.Context, in SubmitOrderInput) (domain.CourierEntry, error) {
	creds, err := s.creds.Get(ctx)
	if err != nil {
		return domain.CourierEntry{}, domain.ErrMissingCredentials
	}
	in.Invoice = strings.TrimSpace(in.Invoice)
	in.RecipientName = strings.TrimSpace(in.RecipientName)
	in.RecipientAddress = strings.TrimSpace(in.RecipientAddress)
	in.Note = strings.TrimSpace(in.Note)
	if in.RecipientName == "" || in.RecipientAddress == "" || strings.TrimSpace(in.RecipientPhone) == "" {
		return domain.CourierEntry{}, fmt.Errorf("%w: recipient name, phone and address are required", domain.ErrInvalidInput)
	}
	if in.CODAmount < 0 {
		return domain.CourierEntry{}, fmt.Errorf("%w: cod_amount must not be negative", domain.ErrInvalidInput)
	}
	phone := domain.NormalizePhone(in.RecipientPhone)
	if !domain.IsValidPhone(phone) {
		return domain.CourierEntry{}, domain.ErrInvalidPhone
	}
	if in.Invoice == "" {
		in.Invoice = domain.NewInvoiceID(s.nowFn())
	}

	result, err := s.gateway.CreateOrder(ctx, creds, ports.OrderRequest{
		Invoice:          in.Invoice,
		RecipientName:    in.RecipientName,
		RecipientPhone:   phone,
		RecipientAddress: in.RecipientAddress,
		CODAmount:        in.CODAmount,
		Note:             in.Note,
	})
	if err != nil {
		return domain.CourierEntry{}, err
	}
	if result.Status != 200 {
		return domain.CourierEntry{}, &UpstreamRejection{Message: result.Message, Errors: result.Errors}
	}

	row := domain.CourierEntry{
		ID:               s.idFn(),
		Invoice:          in.Invoice,
		RecipientName:    in.RecipientName,
		RecipientPhone:   phone,
		RecipientAddress: in.RecipientAddress,
		CODAmount:        in.CODAmount,
		Note:             in.Note,
		Status:           domain.StatusPending,
		CreatedAt:        s.nowFn(),
	}
	if result.Consignment != nil {
		row.ConsignmentID = result.Consignment.ConsignmentID
		row.TrackingCode = result.Consignment.TrackingCode
	}
	if err := s.entries.Add(ctx, row); err != nil {
		return domain.CourierEntry{}, err
	}
	s.log.Info("order submitted", "invoice", row.Invoice, "consignment_id", row.ConsignmentID)
	return row, nil
}

func (s *Service) ListEntries(ctx context.Context) ([]domain.CourierEntry, error) {
	return s.entries.List(ctx)
}

// UpdateEntryStatus sets the stored status of an entry after validating the
// value against the status enum.
func (s *Service) UpdateEntryStatus(ctx context.Context, id, rawStatus string) (domain.CourierEntry, error) {
	status, err := domain.ParseStatus(rawStatus)
	if err != nil {
		return domain.CourierEntry{}, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, rawStatus)
	}
	row, err := s.entries.Get(ctx, id)
	if err != nil {
		return domain.CourierEntry{}, err
	}
	row.Status = status
	if err := s.entries.Update(ctx, row); err != nil {
		return domain.CourierEntry{}, err
	}
	return row, nil
}

func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}

// TrackEntry refreshes an entry's status from the courier gateway, looking up
// by consignment id when one is stored and falling back to the invoice.
func (s *Service) TrackEntry(ctx context.Context, id string) (domain.CourierEntry, error) {
	row, err := s.entries.Get(ctx, id)
	if err != nil {
		return domain.CourierEntry{}, err
	}
	creds, err := s.creds.Get(ctx)
	if err != nil {
		return domain.CourierEntry{}, domain.ErrMissingCredentials
	}

	var info *ports.ConsignmentInfo
	if row.ConsignmentID != "" {
		info, err = s.gateway.StatusByConsignment(ctx, creds, row.ConsignmentID)
	} else {
		info, err = s.gateway.StatusByInvoice(ctx, creds, row.Invoice)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.CourierEntry{}, err
		}
		return domain.CourierEntry{}, fmt.Errorf("%w: %v", domain.ErrDependencyUnavailable, err)
	}

	row.Status = domain.MapDeliveryStatus(info.DeliveryStatus)
	if info.TrackingCode != "" {
		row.TrackingCode = info.TrackingCode
	}
	if err := s.entries.Update(ctx, row); err != nil {
		return domain.CourierEntry{}, err
	}
	return row, nil
}
