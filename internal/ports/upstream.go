package ports

import (
	"context"

	"github.com/viralforge/courierdesk/internal/domain"
)

// AggregatorResult is the raw aggregator feed response. Payload carries every
// top-level field so unknown upstream fields pass through to the caller
// unchanged; Summaries is the per-courier counter object.
type AggregatorResult struct {
	Summaries map[string]map[string]any
	Payload   map[string]any
}

// AggregatorFeed is feed (a): the multi-courier delivery-history search.
type AggregatorFeed interface {
	Search(ctx context.Context, phone string) (*AggregatorResult, error)
}

// ConsignmentInfo is the courier-assigned tracking unit returned by the
// gateway after order creation or a status lookup.
type ConsignmentInfo struct {
	ConsignmentID  string
	Invoice        string
	TrackingCode   string
	DeliveryStatus string
}

// GatewayResult is a create-order outcome. Status mirrors the upstream
// status field; Message/Errors carry upstream rejection details verbatim.
type GatewayResult struct {
	Status      int
	Message     string
	Errors      map[string][]string
	Consignment *ConsignmentInfo
}

// OrderRequest is the payload sent to the courier gateway.
type OrderRequest struct {
	Invoice          string  `json:"invoice"`
	RecipientName    string  `json:"recipient_name"`
	RecipientPhone   string  `json:"recipient_phone"`
	RecipientAddress string  `json:"recipient_address"`
	CODAmount        float64 `json:"cod_amount"`
	Note             string  `json:"note"`
}

// BalanceResult is the gateway balance response used for credential checks.
type BalanceResult struct {
	Status  int
	Balance float64
	Message string
}

// CourierGateway is the Steadfast API surface: order submission, tracking,
// the fraud-check counters (feed b) and the balance probe.
type CourierGateway interface {
	CreateOrder(ctx context.Context, creds domain.Credentials, order OrderRequest) (*GatewayResult, error)
	StatusByConsignment(ctx context.Context, creds domain.Credentials, consignmentID string) (*ConsignmentInfo, error)
	StatusByInvoice(ctx context.Context, creds domain.Credentials, invoice string) (*ConsignmentInfo, error)
	FraudCheck(ctx context.Context, creds domain.Credentials, phone string) (map[string]any, error)
	Balance(ctx context.Context, creds domain.Credentials) (*BalanceResult, error)
}

// ExtractedOrder is the structured result of AI free-text extraction, before
// post-processing by the application layer.
type ExtractedOrder struct {
	Invoice          string  `json:"invoice"`
	RecipientName    string  `json:"recipient_name"`
	RecipientPhone   string  `json:"recipient_phone"`
	RecipientAddress string  `json:"recipient_address"`
	CODAmount        float64 `json:"cod_amount"`
	Note             string  `json:"note"`
}

// OrderExtractor turns free-form order text into an ExtractedOrder.
type OrderExtractor interface {
	Extract(ctx context.Context, rawText string) (ExtractedOrder, error)
}

// BackupFile is metadata for a stored Drive backup.
type BackupFile struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CreatedTime string `json:"createdTime"`
	Size        string `json:"size"`
}

// BackupDrive is the Google Drive backup surface including the OAuth token
// lifecycle. Exchange and Refresh return fresh tokens; Refresh failing with
// domain.ErrTokenExpired signals that re-authentication is required.
type BackupDrive interface {
	AuthURL() string
	Exchange(ctx context.Context, code string) (domain.GoogleTokens, error)
	Refresh(ctx context.Context, refreshToken string) (domain.GoogleTokens, error)
	Upload(ctx context.Context, accessToken, name string, doc domain.BackupDocument) (BackupFile, error)
	List(ctx context.Context, accessToken string) ([]BackupFile, error)
	Download(ctx context.Context, accessToken, fileID string) (domain.BackupDocument, error)
}
