package domain

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

// Status is the lifecycle state of a stored courier entry. Values mirror the
// delivery states reported by the Steadfast API.
type Status string

const (
	StatusPending          Status = "pending"
	StatusInReview         Status = "in_review"
	StatusDelivered        Status = "delivered"
	StatusPartialDelivered Status = "partial_delivered"
	StatusCancelled        Status = "cancelled"
	StatusHold             Status = "hold"
	StatusUnknown          Status = "unknown"
)

// CourierEntry is a locally persisted parcel order. Created on successful
// submission to the courier gateway, mutated only by status updates, deleted
// explicitly by the operator.
type CourierEntry struct {
	ID               string    `json:"id"`
	Invoice          string    `json:"invoice"`
	RecipientName    string    `json:"recipient_name"`
	RecipientPhone   string    `json:"recipient_phone"`
	RecipientAddress string    `json:"recipient_address"`
	CODAmount        float64   `json:"cod_amount"`
	Note             string    `json:"note"`
	Status           Status    `json:"status"`
	ConsignmentID    string    `json:"consignment_id,omitempty"`
	TrackingCode     string    `json:"tracking_code,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Credentials are the operator's Steadfast API credentials.
type Credentials struct {
	APIKey    string `json:"apiKey"`
	SecretKey string `json:"secretKey"`
}

// GoogleTokens are the OAuth tokens used for Drive backups. Expiry is a unix
// millisecond timestamp, matching the Google token endpoint response shape.
type GoogleTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiryMillis int64  `json:"expiry_date"`
}

// ParseStatus validates an operator-supplied status value.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.TrimSpace(strings.ToLower(raw))); s {
	case StatusPending, StatusInReview, StatusDelivered, StatusPartialDelivered,
		StatusCancelled, StatusHold, StatusUnknown:
		return s, nil
	default:
		return "", ErrInvalidInput
	}
}

// MapDeliveryStatus converts a Steadfast delivery_status string to the local
// enum. Approval-pending variants collapse onto their base state; anything
// unrecognised is StatusUnknown.
func MapDeliveryStatus(raw string) Status {
	s := strings.TrimSuffix(strings.TrimSpace(strings.ToLower(raw)), "_approval_pending")
	if mapped, err := ParseStatus(s); err == nil {
		return mapped
	}
	return StatusUnknown
}

const base36Upper = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewInvoiceID generates a short human-friendly invoice id of the form
// INV-<base36 millis><3 random chars>.
func NewInvoiceID(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	var b strings.Builder
	b.WriteString("INV-")
	b.WriteString(ts)
	for i := 0; i < 3; i++ {
		b.WriteByte(base36Upper[rand.Intn(len(base36Upper))])
	}
	return b.String()
}
