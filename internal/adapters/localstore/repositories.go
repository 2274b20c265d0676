package localstore

import (
	"context"

	"github.com/viralforge/courierdesk/internal/domain"
)

type EntryRepository struct{ store *Store }

func (r *EntryRepository) List(_ context.Context) ([]domain.CourierEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	out := make([]domain.CourierEntry, len(r.store.doc.Entries))
	copy(out, r.store.doc.Entries)
	return out, nil
}

func (r *EntryRepository) Get(_ context.Context, id string) (domain.CourierEntry, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, row := range r.store.doc.Entries {
		if row.ID == id {
			return row, nil
		}
	}
	return domain.CourierEntry{}, domain.ErrNotFound
}

// Add prepends the new entry so the newest order lists first.
func (r *EntryRepository) Add(_ context.Context, row domain.CourierEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, existing := range r.store.doc.Entries {
		if existing.ID == row.ID {
			return domain.ErrConflict
		}
	}
	r.store.doc.Entries = append([]domain.CourierEntry{row}, r.store.doc.Entries...)
	return r.store.flush()
}

func (r *EntryRepository) Update(_ context.Context, row domain.CourierEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.doc.Entries {
		if existing.ID == row.ID {
			r.store.doc.Entries[i] = row
			return r.store.flush()
		}
	}
	return domain.ErrNotFound
}

func (r *EntryRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for i, existing := range r.store.doc.Entries {
		if existing.ID == id {
			r.store.doc.Entries = append(r.store.doc.Entries[:i], r.store.doc.Entries[i+1:]...)
			return r.store.flush()
		}
	}
	return domain.ErrNotFound
}

func (r *EntryRepository) AddMissing(_ context.Context, rows []domain.CourierEntry) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	existing := make(map[string]struct{}, len(r.store.doc.Entries))
	for _, row := range r.store.doc.Entries {
		existing[row.ID] = struct{}{}
	}
	var added []domain.CourierEntry
	for _, row := range rows {
		if _, ok := existing[row.ID]; ok {
			continue
		}
		existing[row.ID] = struct{}{}
		added = append(added, row)
	}
	if len(added) == 0 {
		return 0, nil
	}
	r.store.doc.Entries = append(added, r.store.doc.Entries...)
	return len(added), r.store.flush()
}

type CredentialRepository struct{ store *Store }

func (r *CredentialRepository) Get(_ context.Context) (domain.Credentials, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.doc.Credentials == nil {
		return domain.Credentials{}, domain.ErrNotFound
	}
	return *r.store.doc.Credentials, nil
}

func (r *CredentialRepository) Save(_ context.Context, creds domain.Credentials) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.doc.Credentials = &creds
	return r.store.flush()
}

func (r *CredentialRepository) Clear(_ context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.doc.Credentials = nil
	return r.store.flush()
}

type TokenRepository struct{ store *Store }

func (r *TokenRepository) Get(_ context.Context) (domain.GoogleTokens, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if r.store.doc.GoogleTokens == nil {
		return domain.GoogleTokens{}, domain.ErrNotFound
	}
	return *r.store.doc.GoogleTokens, nil
}

func (r *TokenRepository) Save(_ context.Context, tokens domain.GoogleTokens) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.doc.GoogleTokens = &tokens
	return r.store.flush()
}

func (r *TokenRepository) Clear(_ context.Context) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.doc.GoogleTokens = nil
	return r.store.flush()
}
