package ports

import (
	"context"

	"github.com/viralforge/courierdesk/internal/domain"
)

// EntryRepository is the single-writer store of courier entries. The backing
// store owns persistence; every mutation is flushed before returning.
type EntryRepository interface {
	List(ctx context.Context) ([]domain.CourierEntry, error)
	Get(ctx context.Context, id string) (domain.CourierEntry, error)
	Add(ctx context.Context, row domain.CourierEntry) error
	Update(ctx context.Context, row domain.CourierEntry) error
	Delete(ctx context.Context, id string) error
	// AddMissing inserts only entries whose id is not already stored and
	// reports how many were added. Existing entries are never overwritten.
	AddMissing(ctx context.Context, rows []domain.CourierEntry) (int, error)
}

type CredentialRepository interface {
	Get(ctx context.Context) (domain.Credentials, error)
	Save(ctx context.Context, creds domain.Credentials) error
	Clear(ctx context.Context) error
}

type TokenRepository interface {
	Get(ctx context.Context) (domain.GoogleTokens, error)
	Save(ctx context.Context, tokens domain.GoogleTokens) error
	Clear(ctx context.Context) error
}
