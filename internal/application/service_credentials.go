package application

import (
	"context"
	"strings"

	"github.com/viralforge/courierdesk/internal/domain"
)

func (s *Service) SaveCredentials(ctx context.Context, creds domain.Credentials) error {
	creds.APIKey = strings.TrimSpace(creds.APIKey)
	creds.SecretKey = strings.TrimSpace(creds.SecretKey)
	if creds.APIKey == "" || creds.SecretKey == "" {
		return domain.ErrMissingCredentials
	}
	return s.creds.Save(ctx, creds)
}

func (s *Service) ClearCredentials(ctx context.Context) error {
	return s.creds.Clear(ctx)
}

// ValidateCredentials probes the gateway balance endpoint with the stored
// credentials. An invalid key pair is a normal result, not an error; only a
// missing credential store entry or a transport failure is surfaced as one.
func (s *Service) ValidateCredentials(ctx context.Context) (CredentialValidation, error) {
	creds, err := s.creds.Get(ctx)
	if err != nil {
		return CredentialValidation{}, domain.ErrMissingCredentials
	}
	res, err := s.gateway.Balance(ctx, creds)
	if err != nil {
		return CredentialValidation{Valid: false, Message: "could not connect to courier API"}, nil
	}
	switch {
	case res.Status == 200:
		return CredentialValidation{Valid: true, Balance: res.Balance}, nil
	case res.Status == 401 || res.Status == 403:
		return CredentialValidation{Valid: false, Message: "invalid API credentials"}, nil
	default:
		msg := res.Message
		if msg == "" {
			msg = "unexpected API response"
		}
		return CredentialValidation{Valid: false, Message: msg}, nil
	}
}
