package payments

import (
	"strings"
	"unicode/utf8"

	"zerovicio/internal/domain/entities"
)

// Registered payload shapes. Strategies reference them by name in config.
const (
	PayloadSuitPay       = "suitpay"
	PayloadCentsFlat     = "cents_flat"
	PayloadDecimalNested = "decimal_nested"
	PayloadMercadoPago   = "mercadopago"
)

const maxClientNameLen = 25

// PayloadOptions carries request-independent values shared by builders.
type PayloadOptions struct {
	CallbackURL string
}

// PayloadBuilder maps an order into one provider's request body.
type PayloadBuilder func(order entities.Order, requestID string, opts PayloadOptions) map[string]any

// PayloadBuilders is the registry used by the dispatcher. Adding a provider
// shape is one entry here plus a config reference.
var PayloadBuilders = map[string]PayloadBuilder{
	PayloadSuitPay:       suitPayPayload,
	PayloadCentsFlat:     centsFlatPayload,
	PayloadDecimalNested: decimalNestedPayload,
	PayloadMercadoPago:   mercadoPagoPayload,
}

// suitPayPayload: decimal amount, nested "client" object.
func suitPayPayload(order entities.Order, requestID string, opts PayloadOptions) map[string]any {
	body := map[string]any{
		"amount":      order.Price.Round(2).InexactFloat64(),
		"orderNumber": requestID,
		"client": map[string]any{
			"name":     clip(order.Name, maxClientNameLen),
			"document": order.CPFDigits(),
			"email":    order.Email,
		},
	}
	if opts.CallbackURL != "" {
		body["callbackUrl"] = opts.CallbackURL
	}
	return body
}

// centsFlatPayload: integer minor units, flat customer fields.
func centsFlatPayload(order entities.Order, requestID string, opts PayloadOptions) map[string]any {
	body := map[string]any{
		"amount":            order.Price.Shift(2).Round(0).IntPart(),
		"external_id":       requestID,
		"description":       describe(order),
		"customer_name":     order.Name,
		"customer_email":    order.Email,
		"customer_document": order.CPFDigits(),
		"customer_phone":    entities.Digits(order.Phone),
	}
	if opts.CallbackURL != "" {
		body["postback_url"] = opts.CallbackURL
	}
	return body
}

// decimalNestedPayload: decimal "value", nested "customer" with cpf.
func decimalNestedPayload(order entities.Order, requestID string, opts PayloadOptions) map[string]any {
	customer := map[string]any{
		"name":  order.Name,
		"email": order.Email,
		"cpf":   order.CPFDigits(),
	}
	if phone := entities.Digits(order.Phone); phone != "" {
		customer["phone"] = phone
	}
	body := map[string]any{
		"value":              order.Price.Round(2).InexactFloat64(),
		"description":        describe(order),
		"external_reference": requestID,
		"customer":           customer,
	}
	if opts.CallbackURL != "" {
		body["webhook_url"] = opts.CallbackURL
	}
	return body
}

// mercadoPagoPayload matches the Mercado Pago /v1/payments request for PIX.
func mercadoPagoPayload(order entities.Order, requestID string, opts PayloadOptions) map[string]any {
	body := map[string]any{
		"transaction_amount": order.Price.Round(2).InexactFloat64(),
		"payment_method_id":  "pix",
		"description":        describe(order),
		"external_reference": requestID,
		"payer": map[string]any{
			"email":      order.Email,
			"first_name": firstName(order.Name),
			"identification": map[string]any{
				"type":   "CPF",
				"number": order.CPFDigits(),
			},
		},
	}
	if opts.CallbackURL != "" {
		body["notification_url"] = opts.CallbackURL
	}
	return body
}

func describe(order entities.Order) string {
	if plan := strings.TrimSpace(order.Plan); plan != "" {
		return "Zero Vícios - " + plan
	}
	return "Zero Vícios"
}

func firstName(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

func clip(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	return string([]rune(s)[:max])
}
