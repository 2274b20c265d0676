package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/viralforge/courierdesk/internal/adapters/localstore"
	"github.com/viralforge/courierdesk/internal/application"
	"github.com/viralforge/courierdesk/internal/domain"
	"github.com/viralforge/courierdesk/internal/ports"
)

type fakeAggregator struct {
	result *ports.AggregatorResult
	err    error
}

func (f *fakeAggregator) Search(context.Context, string) (*ports.AggregatorResult, error) {
	return f.result, f.err
}

type fakeGateway struct {
	createResult *ports.GatewayResult
	createErr    error
	statusInfo   *ports.ConsignmentInfo
	statusErr    error
	fraudPayload map[string]any
	fraudErr     error
	balance      *ports.BalanceResult
}

func (f *fakeGateway) CreateOrder(_ context.Context, _ domain.Credentials, _ ports.OrderRequest) (*ports.GatewayResult, error) {
	return f.createResult, f.createErr
}
func (f *fakeGateway) StatusByConsignment(_ context.Context, _ domain.Credentials, _ string) (*ports.ConsignmentInfo, error) {
	return f.statusInfo, f.statusErr
}
func (f *fakeGateway) StatusByInvoice(_ context.Context, _ domain.Credentials, _ string) (*ports.ConsignmentInfo, error) {
	return f.statusInfo, f.statusErr
}
func (f *fakeGateway) FraudCheck(_ context.Context, _ domain.Credentials, _ string) (map[string]any, error) {
	return f.fraudPayload, f.fraudErr
}
func (f *fakeGateway) Balance(_ context.Context, _ domain.Credentials) (*ports.BalanceResult, error) {
	return f.balance, nil
}

type fakeDrive struct {
	refreshed    domain.GoogleTokens
	refreshErr   error
	refreshCalls int
	uploaded     []string
	doc          domain.BackupDocument
}

func (f *fakeDrive) AuthURL() string { return "https://accounts.google.com/o/oauth2/v2/auth?test" }
func (f *fakeDrive) Exchange(context.Context, string) (domain.GoogleTokens, error) {
	return f.refreshed, nil
}
func (f *fakeDrive) Refresh(context.Context, string) (domain.GoogleTokens, error) {
	f.refreshCalls++
	return f.refreshed, f.refreshErr
}
func (f *fakeDrive) Upload(_ context.Context, _ string, name string, _ domain.BackupDocument) (ports.BackupFile, error) {
	f.uploaded = append(f.uploaded, name)
	return ports.BackupFile{ID: "file-1", Name: name}, nil
}
func (f *fakeDrive) List(context.Context, string) ([]ports.BackupFile, error) { return nil, nil }
func (f *fakeDrive) Download(context.Context, string, string) (domain.BackupDocument, error) {
	return f.doc, nil
}

type testEnv struct {
	service *application.Service
	repos   *localstore.Repositories
	gateway *fakeGateway
	drive   *fakeDrive
}

func newEnv(t *testing.T, aggregator ports.AggregatorFeed, gateway *fakeGateway) *testEnv {
	t.Helper()
	store, err := localstore.Open("")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	repos := localstore.NewRepositories(store)
	drive := &fakeDrive{}
	svc := application.NewService(application.Dependencies{
		Entries:    repos.Entries,
		Creds:      repos.Creds,
		Tokens:     repos.Tokens,
		Aggregator: aggregator,
		Gateway:    gateway,
		Drive:      drive,
	})
	return &testEnv{service: svc, repos: repos, gateway: gateway, drive: drive}
}

func seedCredentials(t *testing.T, env *testEnv) {
	t.Helper()
	if err := env.service.SaveCredentials(context.Background(), domain.Credentials{APIKey: "key", SecretKey: "secret"}); err != nil {
		t.Fatalf("save credentials: %v", err)
	}
}

func TestSubmitOrderPersistsEntry(t *testing.T) {
	env := newEnv(t, &fakeAggregator{}, &fakeGateway{
		createResult: &ports.GatewayResult{
			Status:      200,
			Consignment: &ports.ConsignmentInfo{ConsignmentID: "99887", TrackingCode: "TRK123"},
		},
	})
	seedCredentials(t, env)

	row, err := env.service.SubmitOrder(context.Background(), application.SubmitOrderInput{
		Invoice:          "INV-100",
		RecipientName:    "Karim",
		RecipientPhone:   "+8801712345678",
		RecipientAddress: "Mirpur 10, Dhaka",
		CODAmount:        1200,
	})
	if err != nil {
		t.Fatalf("submit order: %v", err)
	}
	if row.RecipientPhone != "01712345678" {
		t.Fatalf("phone not normalized: %q", row.RecipientPhone)
	}
	if row.Status != domain.StatusPending || row.ConsignmentID != "99887" {
		t.Fatalf("unexpected entry %+v", row)
	}
	stored, err := env.repos.Entries.Get(context.Background(), row.ID)
	if err != nil {
		t.Fatalf("entry not persisted: %v", err)
	}
	if stored.TrackingCode != "TRK123" {
		t.Fatalf("tracking code = %q", stored.TrackingCode)
	}
}

func TestSubmitOrderRejectsInvalidPhone(t *testing.T) {
	env := newEnv(t, &fakeAggregator{}, &fakeGateway{})
	seedCredentials(t, env)

	_, err := env.service.SubmitOrder(context.Background(), application.SubmitOrderInput{
		RecipientName:    "Karim",
		RecipientPhone:   "02712345678",
		RecipientAddress: "Dhaka",
	})
	if !errors.Is(err, domain.ErrInvalidPhone) {
		t.Fatalf("err = %v, want invalid phone", err)
	}
	rows, _ := env.repos.Entries.List(context.Background())
	if len(rows) != 0 {
		t.Fatalf("rejected order was persisted")
	}
}

func TestSubmitOrderSurfacesUpstreamRejection(t *testing.T) {
	env := newEnv(t, &fakeAggregator{}, &fakeGateway{
		createResult: &ports.GatewayResult{
			Status:  400,
			Message: "duplicate invoice",
			Errors:  map[string][]string{"invoice": {"already used"}},
		},
	})
	seedCredentials(t, env)

	_, err := env.service.SubmitOrder(context.Background(), application.SubmitOrderInput{
		Invoice:          "INV-1",
		RecipientName:    "Karim",
		RecipientPhone:   "01712345678",
		RecipientAddress: "Dhaka",
	})
	var rejection *application.UpstreamRejection
	if !errors.As(err, &rejection) {
		t.Fatalf("err = %v, want upstream rejection", err)
	}
	if rejection.Message != "duplicate invoice" || len(rejection.Errors["invoice"]) != 1 {
		t.Fatalf("rejection = %+v", rejection)
	}
}

func pathaoSummaries() *ports.AggregatorResult {
	return &ports.AggregatorResult{
		Summaries: map[string]map[string]any{
			"Pathao": {
				"Total Delivery":      float64(10),
				"Successful Delivery": float64(8),
				"Canceled Delivery":   float64(2),
			},
		},
	}
}

func TestDeliveryHistoryCombinesBothFeeds(t *testing.T) {
	env := newEnv(t, &fakeAggregator{result: pathaoSummaries()}, &fakeGateway{
		fraudPayload: map[string]any{
			"total_parcels":   "5",
			"total_delivered": "5",
			"total_cancelled": "0",
		},
	})
	seedCredentials(t, env)

	out, err := env.service.DeliveryHistory(context.Background(), "+8801712345678")
	if err != nil {
		t.Fatalf("delivery history: %v", err)
	}
	if out.Combined.Total != 15 || out.Combined.Success != 13 || out.Combined.SuccessRate != 87 {
		t.Fatalf("combined = %+v, want {15 13 87}", out.Combined)
	}
	// Zero-total couriers stay out of the itemized breakdown.
	if len(out.Breakdown) != 1 || out.Breakdown[0].Slug != "pathao" {
		t.Fatalf("breakdown = %+v", out.Breakdown)
	}
	if out.Aggregator == nil || out.Aggregator.Details["redx"].Total != 0 {
		t.Fatalf("raw details must include absent couriers")
	}
}

func TestDeliveryHistoryToleratesFeedFailure(t *testing.T) {
	env := newEnv(t, &fakeAggregator{err: errors.New("connection refused")}, &fakeGateway{
		fraudPayload: map[string]any{"total_parcels": float64(4), "total_delivered": float64(2)},
	})
	seedCredentials(t, env)

	out, err := env.service.DeliveryHistory(context.Background(), "01712345678")
	if err != nil {
		t.Fatalf("delivery history: %v", err)
	}
	if out.Aggregator != nil {
		t.Fatalf("failed feed should be nil")
	}
	if out.Combined.Total != 4 || out.Combined.SuccessRate != 50 {
		t.Fatalf("combined = %+v, want fraud-only {4 2 50}", out.Combined)
	}
}

func TestDeliveryHistoryBothFeedsDown(t *testing.T) {
	env := newEnv(t, &fakeAggregator{err: errors.New("down")}, &fakeGateway{
		fraudErr: errors.New("also down"),
	})
	seedCredentials(t, env)

	out, err := env.service.DeliveryHistory(context.Background(), "01712345678")
	if err != nil {
		t.Fatalf("both-feeds-down must still report: %v", err)
	}
	if out.Combined.Total != 0 || out.Combined.SuccessRate != 0 {
		t.Fatalf("combined = %+v, want zeros", out.Combined)
	}
	if len(out.Breakdown) != 0 {
		t.Fatalf("breakdown = %+v, want empty", out.Breakdown)
	}
}

func TestDeliveryHistoryRejectsInvalidPhone(t *testing.T) {
	env := newEnv(t, &fakeAggregator{}, &fakeGateway{})
	if _, err := env.service.DeliveryHistory(context.Background(), "12345"); !errors.Is(err, domain.ErrInvalidPhone) {
		t.Fatalf("err = %v, want invalid phone", err)
	}
}

func TestImportEntriesSkipsExistingIDs(t *testing.T) {
	env := newEnv(t, &fakeAggregator{}, &fakeGateway{})
	ctx := context.Background()

	original := domain.CourierEntry{ID: "e1", RecipientName: "Original", CreatedAt: time.Now()}
	if err := env.repos.Entries.Add(ctx, original); err != nil {
		t.Fatalf("seed: %v", err)
	}

	out, err := env.service.ImportEntries(ctx, []domain.CourierEntry{
		{ID: "e1", RecipientName: "Imported Duplicate"},
		{ID: "e2", RecipientName: "Imported New"},
	})
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if out.Imported != 1 || out.Skipped != 1 {
		t.Fatalf("result = %+v, want 1 imported 1 skipped", out)
	}
	kept, _ := env.repos.Entries.Get(ctx, "e1")
	if kept.RecipientName != "Original" {
		t.Fatalf("existing entry modified: %+v", kept)
	}
}

func TestUploadBackupRefreshesExpiredToken(t *testing.T) {
	env := newEnv(t, &fakeAggregator{}, &fakeGateway{})
	ctx := context.Background()
	env.drive.refreshed = domain.GoogleTokens{
		AccessToken:  "fresh",
		RefreshToken: "refresh",
		ExpiryMillis: time.Now().Add(time.Hour).UnixMilli(),
	}
	stale := domain.GoogleTokens{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		ExpiryMillis: time.Now().Add(-time.Minute).UnixMilli(),
	}
	if err := env.repos.Tokens.Save(ctx, stale); err != nil {
		t.Fatalf("save tokens: %v", err)
	}

	file, err := env.service.UploadBackup(ctx)
	if err != nil {
		t.Fatalf("upload backup: %v", err)
	}
	if env.drive.refreshCalls != 1 {
		t.Fatalf("refresh calls = %d, want 1", env.drive.refreshCalls)
	}
	if file.ID != "file-1" {
		t.Fatalf("file = %+v", file)
	}
	saved, _ := env.repos.Tokens.Get(ctx)
	if saved.AccessToken != "fresh" {
		t.Fatalf("refreshed tokens not persisted: %+v", saved)
	}
}

func TestUploadBackupTokenExpired(t *testing.T) {
	env := newEnv(t, &fakeAggregator{}, &fakeGateway{})
	ctx := context.Background()
	env.drive.refreshErr = domain.ErrTokenExpired
	stale := domain.GoogleTokens{
		AccessToken:  "stale",
		RefreshToken: "refresh",
		ExpiryMillis: time.Now().Add(-time.Minute).UnixMilli(),
	}
	if err := env.repos.Tokens.Save(ctx, stale); err != nil {
		t.Fatalf("save tokens: %v", err)
	}

	if _, err := env.service.UploadBackup(ctx); !errors.Is(err, domain.ErrTokenExpired) {
		t.Fatalf("err = %v, want token expired", err)
	}
}

func TestUploadBackupWithoutTokens(t *testing.T) {
	env := newEnv(t, &fakeAggregator{}, &fakeGateway{})
	if _, err := env.service.UploadBackup(context.Background()); !errors.Is(err, domain.ErrTokenMissing) {
		t.Fatalf("err = %v, want token missing", err)
	}
}

func TestValidateCredentials(t *testing.T) {
	env := newEnv(t, &fakeAggregator{}, &fakeGateway{
		balance: &ports.BalanceResult{Status: 200, Balance: 2500},
	})
	seedCredentials(t, env)

	out, err := env.service.ValidateCredentials(context.Background())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !out.Valid || out.Balance != 2500 {
		t.Fatalf("validation = %+v", out)
	}

	env.gateway.balance = &ports.BalanceResult{Status: 401}
	out, err = env.service.ValidateCredentials(context.Background())
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if out.Valid {
		t.Fatalf("expected invalid credentials result")
	}
}

func TestUpdateEntryStatusValidatesEnum(t *testing.T) {
	env := newEnv(t, &fakeAggregator{}, &fakeGateway{})
	ctx := context.Background()
	if err := env.repos.Entries.Add(ctx, domain.CourierEntry{ID: "e1", Status: domain.StatusPending}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	row, err := env.service.UpdateEntryStatus(ctx, "e1", "delivered")
	if err != nil {
		t.Fatalf("update status: %v", err)
	}
	if row.Status != domain.StatusDelivered {
		t.Fatalf("status = %q", row.Status)
	}

	if _, err := env.service.UpdateEntryStatus(ctx, "e1", "teleported"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("err = %v, want invalid input", err)
	}
}

func TestTrackEntryRefreshesStatus(t *testing.T) {
	env := newEnv(t, &fakeAggregator{}, &fakeGateway{
		statusInfo: &ports.ConsignmentInfo{DeliveryStatus: "delivered_approval_pending"},
	})
	seedCredentials(t, env)
	ctx := context.Background()
	if err := env.repos.Entries.Add(ctx, domain.CourierEntry{ID: "e1", ConsignmentID: "123", Status: domain.StatusPending}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	row, err := env.service.TrackEntry(ctx, "e1")
	if err != nil {
		t.Fatalf("track: %v", err)
	}
	if row.Status != domain.StatusDelivered {
		t.Fatalf("status = %q, want delivered", row.Status)
	}
	stored, _ := env.repos.Entries.Get(ctx, "e1")
	if stored.Status != domain.StatusDelivered {
		t.Fatalf("refreshed status not persisted")
	}
}
