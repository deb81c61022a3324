package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus represents the lifecycle of a PIX charge.
//
// Only "created" is produced here; paid/expired transitions arrive through
// provider webhooks handled elsewhere.
type TransactionStatus string

const (
	TransactionStatusCreated TransactionStatus = "created"
)

// ProviderMock is the provider label used when every gateway failed and the
// charge was fabricated locally.
const ProviderMock = "MOCK_DEV"

// Order is the customer + checkout data submitted by the landing page.
//
// Fields are untrusted; CPFDigits is derived by stripping every non-digit.
type Order struct {
	Name  string
	Email string
	CPF   string
	Phone string
	Price decimal.Decimal
	Plan  string
	FBP   string
	FBC   string
}

// CPFDigits returns the CPF with punctuation and spaces removed.
func (o Order) CPFDigits() string {
	return Digits(o.CPF)
}

// Digits drops every character that is not an ASCII digit.
func Digits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}

// TransactionRecord is the document persisted once per charge.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Records are written once and never updated by this service. A second write with
// the same id overwrites the first.
type TransactionRecord struct {
	ID        string            `json:"id"`
	Status    TransactionStatus `json:"status"`
	Provider  string            `json:"provider"`
	PixCode   string            `json:"pix_code"`
	QRImage   string            `json:"qr_image"`
	CreatedAt time.Time         `json:"created_at"`
	IsMock    bool              `json:"is_mock"`

	Name  string          `json:"name"`
	Email string          `json:"email"`
	Phone string          `json:"phone,omitempty"`
	Plan  string          `json:"plan"`
	Price decimal.Decimal `json:"price"`
	FBP   string          `json:"fbp,omitempty"`
	FBC   string          `json:"fbc,omitempty"`

	Attempts []AttemptDiagnostic `json:"attempts,omitempty"`
}
