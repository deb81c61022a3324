package response

import "zerovicio/internal/usecase"

// PixChargeResponse keeps the field names the checkout front end already reads.
// qrCodeBase64 may hold a data URI or an image URL.
type PixChargeResponse struct {
	ID           string   `json:"id"`
	QRCodeBase64 string   `json:"qrCodeBase64"`
	CopiaECola   string   `json:"copiaECola"`
	Provider     string   `json:"provider,omitempty"`
	Message      string   `json:"message,omitempty"`
	Warning      string   `json:"warning,omitempty"`
	ExpiresIn    string   `json:"expiresIn,omitempty"`
	Logs         []string `json:"logs,omitempty"`
}

func FromChargeResult(r usecase.ChargeResult) PixChargeResponse {
	return PixChargeResponse{
		ID:           r.ID,
		QRCodeBase64: r.QRImage,
		CopiaECola:   r.PixCode,
		Provider:     r.Provider,
		Message:      r.Message,
		Warning:      r.Warning,
		ExpiresIn:    r.ExpiresIn,
		Logs:         r.Logs,
	}
}
