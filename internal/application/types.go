package application

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/viralforge/courierdesk/internal/ports"
)

type Config struct {
	ServiceName string
	// MaxExtractChars bounds the free-text input accepted by AI extraction.
	MaxExtractChars int
}

type Service struct {
	cfg        Config
	log        *slog.Logger
	entries    ports.EntryRepository
	creds      ports.CredentialRepository
	tokens     ports.TokenRepository
	aggregator ports.AggregatorFeed
	gateway    ports.CourierGateway
	extractor  ports.OrderExtractor
	drive      ports.BackupDrive
	nowFn      func() time.Time
	idFn       func() string
}

type Dependencies struct {
	Config     Config
	Logger     *slog.Logger
	Entries    ports.EntryRepository
	Creds      ports.CredentialRepository
	Tokens     ports.TokenRepository
	Aggregator ports.AggregatorFeed
	Gateway    ports.CourierGateway
	Extractor  ports.OrderExtractor
	Drive      ports.BackupDrive
}

func NewService(deps Dependencies) *Service {
	cfg := deps.Config
	if cfg.ServiceName == "" {
		cfg.ServiceName = "courierdesk"
	}
	if cfg.MaxExtractChars <= 0 {
		cfg.MaxExtractChars = 5000
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		cfg:        cfg,
		log:        logger,
		entries:    deps.Entries,
		creds:      deps.Creds,
		tokens:     deps.Tokens,
		aggregator: deps.Aggregator,
		gateway:    deps.Gateway,
		extractor:  deps.Extractor,
		drive:      deps.Drive,
		nowFn:      func() time.Time { return time.Now() },
		idFn:       uuid.NewString,
	}
}

type SubmitOrderInput struct {
	Invoice          string
	RecipientName    string
	RecipientPhone   string
	RecipientAddress string
	CODAmount        float64
	Note             string
}

// UpstreamRejection carries a non-200 courier gateway response back to the
// caller as a value, preserving the upstream message and field errors.
type UpstreamRejection struct {
	Message string
	Errors  map[string][]string
}

func (e *UpstreamRejection) Error() string {
	if e.Message == "" {
		return "failed to create parcel"
	}
	return e.Message
}

type CredentialValidation struct {
	Valid   bool    `json:"valid"`
	Message string  `json:"message,omitempty"`
	Balance float64 `json:"balance,omitempty"`
}

type RestoreResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}
