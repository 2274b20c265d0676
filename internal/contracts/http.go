package contracts

type SuccessResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Status  string              `json:"status"`
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

type SubmitOrderRequest struct {
	Invoice          string  `json:"invoice,omitempty"`
	RecipientName    string  `json:"recipient_name"`
	RecipientPhone   string  `json:"recipient_phone"`
	RecipientAddress string  `json:"recipient_address"`
	CODAmount        float64 `json:"cod_amount"`
	Note             string  `json:"note,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type SaveCredentialsRequest struct {
	APIKey    string `json:"apiKey"`
	SecretKey string `json:"secretKey"`
}

type ExtractRequest struct {
	RawText string `json:"rawText"`
}

type ExchangeCodeRequest struct {
	Code string `json:"code"`
}

type RestoreDriveRequest struct {
	FileID string `json:"file_id"`
}

type RestoreLocalRequest struct {
	Entries []EntryPayload `json:"entries"`
}

// EntryPayload mirrors the persisted entry shape on the wire. CreatedAt is an
// RFC 3339 string for compatibility with backup documents produced by older
// releases.
type EntryPayload struct {
	ID               string  `json:"id"`
	Invoice          string  `json:"invoice"`
	RecipientName    string  `json:"recipient_name"`
	RecipientPhone   string  `json:"recipient_phone"`
	RecipientAddress string  `json:"recipient_address"`
	CODAmount        float64 `json:"cod_amount"`
	Note             string  `json:"note"`
	Status           string  `json:"status"`
	ConsignmentID    string  `json:"consignment_id,omitempty"`
	TrackingCode     string  `json:"tracking_code,omitempty"`
	CreatedAt        string  `json:"created_at"`
}
