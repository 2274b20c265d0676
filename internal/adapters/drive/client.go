// Package drive backs up the local store to Google Drive. It drives the
// OAuth authorization-code flow against accounts.google.com and uploads
// backup documents with the multipart files endpoint.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/viralforge/courierdesk/internal/domain"
	"github.com/viralforge/courierdesk/internal/ports"
)

const (
	authEndpoint   = "https://accounts.google.com/o/oauth2/v2/auth"
	tokenEndpoint  = "https://oauth2.googleapis.com/token"
	uploadEndpoint = "https://www.googleapis.com/upload/drive/v3/files?uploadType=multipart"
	filesEndpoint  = "https://www.googleapis.com/drive/v3/files"
	driveScope     = "https://www.googleapis.com/auth/drive.file"
)

type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
	HTTPClient   *http.Client
}

type Client struct {
	cfg        Config
	httpClient *http.Client
}

func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

func (c *Client) AuthURL() string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("redirect_uri", c.cfg.RedirectURI)
	q.Set("response_type", "code")
	q.Set("scope", driveScope)
	q.Set("access_type", "offline")
	q.Set("prompt", "consent")
	return authEndpoint + "?" + q.Encode()
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	RefreshToken     string `json:"refresh_token"`
	ExpiresIn        int64  `json:"expires_in"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (c *Client) Exchange(ctx context.Context, code string) (domain.GoogleTokens, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("code", code)
	form.Set("grant_type", "authorization_code")
	form.Set("redirect_uri", c.cfg.RedirectURI)

	payload, err := c.postToken(ctx, form)
	if err != nil {
		return domain.GoogleTokens{}, err
	}
	return domain.GoogleTokens{
		AccessToken:  payload.AccessToken,
		RefreshToken: payload.RefreshToken,
		ExpiryMillis: time.Now().UnixMilli() + payload.ExpiresIn*1000,
	}, nil
}

// Refresh exchanges a refresh token for a new access token. The refresh
// token itself is carried forward; Google only returns a new one on consent.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (domain.GoogleTokens, error) {
	form := url.Values{}
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("refresh_token", refreshToken)
	form.Set("grant_type", "refresh_token")

	payload, err := c.postToken(ctx, form)
	if err != nil {
		return domain.GoogleTokens{}, fmt.Errorf("%w: %v", domain.ErrTokenExpired, err)
	}
	return domain.GoogleTokens{
		AccessToken:  payload.AccessToken,
		RefreshToken: refreshToken,
		ExpiryMillis: time.Now().UnixMilli() + payload.ExpiresIn*1000,
	}, nil
}

func (c *Client) postToken(ctx context.Context, form url.Values) (*tokenResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token endpoint: %w", err)
	}
	defer resp.Body.Close()

	var payload tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK || payload.AccessToken == "" {
		msg := payload.ErrorDescription
		if msg == "" {
			msg = payload.Error
		}
		if msg == "" {
			msg = fmt.Sprintf("HTTP %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("token exchange failed: %s", msg)
	}
	return &payload, nil
}

const multipartBoundary = "courierdesk-backup-boundary"

func (c *Client) Upload(ctx context.Context, accessToken, name string, doc domain.BackupDocument) (ports.BackupFile, error) {
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return ports.BackupFile{}, err
	}
	meta, err := json.Marshal(map[string]string{"name": name, "mimeType": "application/json"})
	if err != nil {
		return ports.BackupFile{}, err
	}

	var b strings.Builder
	delimiter := "\r\n--" + multipartBoundary + "\r\n"
	b.WriteString(delimiter)
	b.WriteString("Content-Type: application/json; charset=UTF-8\r\n\r\n")
	b.Write(meta)
	b.WriteString(delimiter)
	b.WriteString("Content-Type: application/json\r\n\r\n")
	b.Write(content)
	b.WriteString("\r\n--" + multipartBoundary + "--")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadEndpoint, strings.NewReader(b.String()))
	if err != nil {
		return ports.BackupFile{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", `multipart/related; boundary="`+multipartBoundary+`"`)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return ports.BackupFile{}, fmt.Errorf("drive upload: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return ports.BackupFile{}, domain.ErrTokenExpired
	}
	if resp.StatusCode != http.StatusOK {
		return ports.BackupFile{}, driveError(resp)
	}

	var file struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&file); err != nil {
		return ports.BackupFile{}, fmt.Errorf("drive upload response: %w", err)
	}
	return ports.BackupFile{
		ID:          file.ID,
		Name:        file.Name,
		CreatedTime: time.Now().UTC().Format(time.RFC3339),
	}, nil
}

// List returns stored courier backups, newest first.
func (c *Client) List(ctx context.Context, accessToken string) ([]ports.BackupFile, error) {
	q := url.Values{}
	q.Set("q", "name contains 'courier-backup-' and trashed=false")
	q.Set("orderBy", "createdTime desc")
	q.Set("fields", "files(id,name,createdTime,size)")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, filesEndpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drive list: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, domain.ErrTokenExpired
	}
	if resp.StatusCode != http.StatusOK {
		return nil, driveError(resp)
	}

	var payload struct {
		Files []ports.BackupFile `json:"files"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("drive list response: %w", err)
	}
	return payload.Files, nil
}

func (c *Client) Download(ctx context.Context, accessToken, fileID string) (domain.BackupDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, filesEndpoint+"/"+url.PathEscape(fileID)+"?alt=media", nil)
	if err != nil {
		return domain.BackupDocument{}, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.BackupDocument{}, fmt.Errorf("drive download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusUnauthorized {
		return domain.BackupDocument{}, domain.ErrTokenExpired
	}
	if resp.StatusCode == http.StatusNotFound {
		return domain.BackupDocument{}, domain.ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return domain.BackupDocument{}, driveError(resp)
	}

	var doc domain.BackupDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return domain.BackupDocument{}, fmt.Errorf("backup document: %w", err)
	}
	return doc, nil
}

func driveError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Error.Message != "" {
		return fmt.Errorf("%w: %s", domain.ErrDependencyUnavailable, payload.Error.Message)
	}
	return fmt.Errorf("%w: drive returned HTTP %d", domain.ErrDependencyUnavailable, resp.StatusCode)
}
