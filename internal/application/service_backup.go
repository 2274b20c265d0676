package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/viralforge/courierdesk/internal/domain"
	"github.com/viralforge/courierdesk/internal/ports"
)

// ExportData builds the portable local backup document.
func (s *Service) ExportData(ctx context.Context) (domain.BackupDocument, error) {
	entries, err := s.entries.List(ctx)
	if err != nil {
		return domain.BackupDocument{}, err
	}
	return domain.BackupDocument{
		Version:    "1.0",
		ExportedAt: s.nowFn().UTC().Format(time.RFC3339),
		Entries:    entries,
	}, nil
}

// ImportEntries merges backup entries into the local store with set-union
// semantics: entries whose id already exists locally are skipped, never
// overwritten.
func (s *Service) ImportEntries(ctx context.Context, entries []domain.CourierEntry) (RestoreResult, error) {
	added, err := s.entries.AddMissing(ctx, entries)
	if err != nil {
		return RestoreResult{}, err
	}
	return RestoreResult{Imported: added, Skipped: len(entries) - added}, nil
}

func (s *Service) BackupAuthURL() (string, error) {
	if s.drive == nil {
		return "", domain.ErrDependencyUnavailable
	}
	return s.drive.AuthURL(), nil
}

// ExchangeBackupCode completes the OAuth flow and stores the tokens.
func (s *Service) ExchangeBackupCode(ctx context.Context, code string) error {
	if s.drive == nil {
		return domain.ErrDependencyUnavailable
	}
	if code == "" {
		return fmt.Errorf("%w: authorization code is required", domain.ErrInvalidInput)
	}
	tokens, err := s.drive.Exchange(ctx, code)
	if err != nil {
		return err
	}
	return s.tokens.Save(ctx, tokens)
}

// UploadBackup pushes the current export document to Google Drive, refreshing
// the access token when it is within a minute of expiry. A refresh failure
// surfaces domain.ErrTokenExpired so the operator can re-authenticate.
func (s *Service) UploadBackup(ctx context.Context) (ports.BackupFile, error) {
	tokens, err := s.validBackupTokens(ctx)
	if err != nil {
		return ports.BackupFile{}, err
	}
	doc, err := s.ExportData(ctx)
	if err != nil {
		return ports.BackupFile{}, err
	}
	file, err := s.drive.Upload(ctx, tokens.AccessToken, domain.BackupFileName(s.nowFn()), doc)
	if err != nil {
		return ports.BackupFile{}, err
	}
	s.log.Info("backup uploaded", "file_id", file.ID, "name", file.Name, "entries", len(doc.Entries))
	return file, nil
}

func (s *Service) ListBackups(ctx context.Context) ([]ports.BackupFile, error) {
	tokens, err := s.validBackupTokens(ctx)
	if err != nil {
		return nil, err
	}
	return s.drive.List(ctx, tokens.AccessToken)
}

// RestoreFromDrive downloads a backup file and merge-imports its entries.
func (s *Service) RestoreFromDrive(ctx context.Context, fileID string) (RestoreResult, error) {
	if fileID == "" {
		return RestoreResult{}, fmt.Errorf("%w: file id is required", domain.ErrInvalidInput)
	}
	tokens, err := s.validBackupTokens(ctx)
	if err != nil {
		return RestoreResult{}, err
	}
	doc, err := s.drive.Download(ctx, tokens.AccessToken, fileID)
	if err != nil {
		return RestoreResult{}, err
	}
	return s.ImportEntries(ctx, doc.Entries)
}

func (s *Service) validBackupTokens(ctx context.Context) (domain.GoogleTokens, error) {
	if s.drive == nil {
		return domain.GoogleTokens{}, domain.ErrDependencyUnavailable
	}
	tokens, err := s.tokens.Get(ctx)
	if err != nil || tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return domain.GoogleTokens{}, domain.ErrTokenMissing
	}
	if tokens.ExpiryMillis > s.nowFn().UnixMilli()+60_000 {
		return tokens, nil
	}
	refreshed, err := s.drive.Refresh(ctx, tokens.RefreshToken)
	if err != nil {
		if errors.Is(err, domain.ErrTokenExpired) {
			return domain.GoogleTokens{}, err
		}
		return domain.GoogleTokens{}, fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
	}
	if err := s.tokens.Save(ctx, refreshed); err != nil {
		return domain.GoogleTokens{}, err
	}
	return refreshed, nil
}
