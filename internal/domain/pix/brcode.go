package pix

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EMV tags used by the BR Code copy-and-paste payload.
const (
	tagPayloadFormat     = "00"
	tagMerchantAccount   = "26"
	tagMerchantCategory  = "52"
	tagCurrency          = "53"
	tagAmount            = "54"
	tagCountry           = "58"
	tagMerchantName      = "59"
	tagMerchantCity      = "60"
	tagAdditionalData    = "62"
	tagCRC               = "63"
	subTagGUI            = "00"
	subTagKey            = "01"
	subTagReferenceLabel = "05"

	pixGUI          = "br.gov.bcb.pix"
	currencyBRL     = "986"
	countryBR       = "BR"
	categoryDefault = "0000"

	maxMerchantName   = 25
	maxMerchantCity   = 15
	maxReferenceLabel = 25
)

// PlaceholderCRC is the constant checksum written in placeholder mode.
//
// It is NOT a CRC of the payload: banking apps that validate the checksum will
// reject the code. Only use it for mock charges that are never meant to be paid.
const PlaceholderCRC = "E2A0"

// CRCMode selects how the trailing tag 63 is filled.
type CRCMode string

const (
	CRCModePlaceholder CRCMode = "placeholder"
	CRCModeCRC16       CRCMode = "crc16"
)

var (
	ErrInvalidAmount       = errors.New("pix amount must be positive")
	ErrMissingMerchantName = errors.New("pix merchant name is required")
	ErrMissingMerchantCity = errors.New("pix merchant city is required")
	ErrMissingTxID         = errors.New("pix transaction id is required")
	ErrInvalidCRCMode      = errors.New("invalid pix crc mode")
)

// Params carries the transaction fields rendered into the code.
type Params struct {
	TransactionID string
	Amount        decimal.Decimal
	MerchantName  string
	MerchantCity  string
}

// Generator builds copy-and-paste PIX codes.
//
// Every call embeds a freshly generated random key in the merchant account
// template, so codes from identical inputs still differ.
type Generator struct {
	crcMode CRCMode
	newKey  func() string
}

func NewGenerator(mode CRCMode) (*Generator, error) {
	switch mode {
	case "":
		mode = CRCModePlaceholder
	case CRCModePlaceholder, CRCModeCRC16:
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidCRCMode, mode)
	}
	return &Generator{crcMode: mode, newKey: uuid.NewString}, nil
}

func (g *Generator) Generate(p Params) (string, error) {
	if !p.Amount.IsPositive() {
		return "", ErrInvalidAmount
	}
	name := strings.TrimSpace(p.MerchantName)
	if name == "" {
		return "", ErrMissingMerchantName
	}
	city := strings.TrimSpace(p.MerchantCity)
	if city == "" {
		return "", ErrMissingMerchantCity
	}
	txID := strings.TrimSpace(p.TransactionID)
	if txID == "" {
		return "", ErrMissingTxID
	}

	var b strings.Builder
	b.WriteString(field(tagPayloadFormat, "01"))
	b.WriteString(field(tagMerchantAccount, field(subTagGUI, pixGUI)+field(subTagKey, g.newKey())))
	b.WriteString(field(tagMerchantCategory, categoryDefault))
	b.WriteString(field(tagCurrency, currencyBRL))
	b.WriteString(g.amountField(p.Amount))
	b.WriteString(field(tagCountry, countryBR))
	b.WriteString(field(tagMerchantName, truncate(name, maxMerchantName)))
	b.WriteString(field(tagMerchantCity, truncate(city, maxMerchantCity)))
	b.WriteString(field(tagAdditionalData, field(subTagReferenceLabel, truncate(txID, maxReferenceLabel))))
	b.WriteString(tagCRC + "04")

	payload := b.String()
	if g.crcMode == CRCModeCRC16 {
		return payload + fmt.Sprintf("%04X", CRC16CCITTFalse([]byte(payload))), nil
	}
	return payload + PlaceholderCRC, nil
}

// amountField writes tag 54. Placeholder codes keep the legacy unpadded
// length (546167.90); crc16 codes are meant to be paid and use the padded EMV
// form (5406167.90).
func (g *Generator) amountField(amount decimal.Decimal) string {
	v := amount.StringFixed(2)
	if g.crcMode == CRCModeCRC16 {
		return field(tagAmount, v)
	}
	return tagAmount + strconv.Itoa(len(v)) + v
}

// field renders one tag-length-value triple; length counts characters and is
// zero padded to two digits.
func field(tag, value string) string {
	return fmt.Sprintf("%s%02d%s", tag, utf8.RuneCountInString(value), value)
}

func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
