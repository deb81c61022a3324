package payments

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Alias tables, in priority order. Dotted entries walk nested objects.
var (
	PaymentCodeAliases = []string{
		"paymentCode",
		"pix_code",
		"pixCode",
		"qrcode",
		"qr_code",
		"copiaECola",
		"qrCopyPaste",
		"data.paymentCode",
		"data.pix_code",
		"data.pixCode",
		"data.qrcode",
		"data.qr_code",
		"point_of_interaction.transaction_data.qr_code",
	}

	QRImageAliases = []string{
		"paymentCodeBase64",
		"qrcode_image",
		"qrCodeImage",
		"qr_code_base64",
		"qrCodeBase64",
		"base64",
		"qrImageUrl",
		"data.paymentCodeBase64",
		"data.qrcode_image",
		"data.qr_code_base64",
		"data.base64",
		"point_of_interaction.transaction_data.qr_code_base64",
	}

	TransactionIDAliases = []string{
		"idTransaction",
		"transactionId",
		"transaction_id",
		"id",
		"data.id",
		"data.transactionId",
	}
)

// resolveAlias returns the first non-empty string found for aliases. Values
// of any other JSON type are skipped so the next alias gets its turn.
func resolveAlias(body map[string]any, aliases []string) string {
	return resolve(body, aliases, textValue)
}

// resolveTransactionID also accepts non-zero numeric ids.
func resolveTransactionID(body map[string]any) string {
	return resolve(body, TransactionIDAliases, idValue)
}

func resolve(body map[string]any, aliases []string, value func(any) string) string {
	for _, alias := range aliases {
		v, ok := lookupPath(body, alias)
		if !ok {
			continue
		}
		if s := value(v); s != "" {
			return s
		}
	}
	return ""
}

func lookupPath(body map[string]any, path string) (any, bool) {
	var cur any = body
	for _, key := range strings.Split(path, ".") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func textValue(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func idValue(v any) string {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return ""
		}
		return t.String()
	case float64:
		if t == 0 {
			return ""
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return textValue(v)
	}
}

// normalizeQRImage keeps data URIs and URLs as-is and wraps a bare base64
// blob into a PNG data URI.
func normalizeQRImage(v string) string {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return ""
	case strings.HasPrefix(v, "data:image"),
		strings.HasPrefix(v, "http://"),
		strings.HasPrefix(v, "https://"):
		return v
	default:
		return "data:image/png;base64," + v
	}
}
