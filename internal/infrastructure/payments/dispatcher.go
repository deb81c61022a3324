package payments

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	"zerovicio/internal/domain/entities"
	"zerovicio/internal/infrastructure/metrics"
	"zerovicio/internal/infrastructure/telemetry"
	"zerovicio/internal/usecase/interfaces"
)

const (
	DefaultAttemptTimeout = 8 * time.Second
	MaxAttemptTimeout     = 15 * time.Second

	maxDetailLen    = 300
	maxResponseSize = 1 << 20
)

// StrategySource returns the current ordered strategy list. Each Dispatch call
// reads it once, so a config reload never changes the order mid-request.
type StrategySource func() []entities.GatewayStrategy

// Dispatcher tries gateway strategies one after the other and stops at the
// first response that carries a payment code.
type Dispatcher struct {
	strategies  StrategySource
	client      *http.Client
	mercadoPago MercadoPagoCaller
	renderer    interfaces.IQRCodeRenderer
	callbackURL string
}

var _ interfaces.IGatewayDispatcher = (*Dispatcher)(nil)

// NewDispatcher wires a dispatcher. mercadoPago and renderer may be nil: the
// former skips mercadopago strategies, the latter leaves QR images empty when a
// provider does not send one.
func NewDispatcher(strategies StrategySource, mercadoPago MercadoPagoCaller, renderer interfaces.IQRCodeRenderer, callbackURL string) *Dispatcher {
	return &Dispatcher{
		strategies:  strategies,
		client:      &http.Client{},
		mercadoPago: mercadoPago,
		renderer:    renderer,
		callbackURL: callbackURL,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, order entities.Order, requestID string) (entities.GatewayResult, []entities.AttemptDiagnostic, error) {
	snapshot := d.strategies()
	attempts := make([]entities.AttemptDiagnostic, 0, len(snapshot))
	telemetry.Logger.Info("[pix][dispatcher] dispatch start",
		zap.String("request_id", requestID),
		zap.Int("strategies", len(snapshot)),
	)

	for _, s := range snapshot {
		if err := ctx.Err(); err != nil {
			telemetry.Logger.Warn("[pix][dispatcher] request cancelled", zap.String("request_id", requestID), zap.Error(err))
			break
		}

		if reason := d.skipReason(s); reason != "" {
			telemetry.Logger.Info("[pix][dispatcher] strategy skipped",
				zap.String("gateway", s.Name),
				zap.String("reason", reason),
			)
			metrics.GatewayAttempts.WithLabelValues(s.Name, string(entities.AttemptSkipped)).Inc()
			attempts = append(attempts, entities.AttemptDiagnostic{Gateway: s.Name, Outcome: entities.AttemptSkipped, Detail: reason})
			continue
		}

		result, diag := d.attempt(ctx, s, order, requestID)
		attempts = append(attempts, diag)
		if diag.Outcome != entities.AttemptSucceeded {
			continue
		}

		if result.TransactionID == "" {
			result.TransactionID = requestID
		}
		result.QRImage = d.qrImageFor(ctx, result)
		telemetry.Logger.Info("[pix][dispatcher] dispatch success",
			zap.String("request_id", requestID),
			zap.String("gateway", s.Name),
			zap.String("transaction_id", result.TransactionID),
		)
		telemetry.Logger.Debug("[pix][dispatcher] winning response",
			zap.String("gateway", s.Name),
			zap.Any("body", result.Raw),
		)
		return result, attempts, nil
	}

	telemetry.Logger.Warn("[pix][dispatcher] all strategies exhausted",
		zap.String("request_id", requestID),
		zap.Strings("attempts", entities.DiagnosticLines(attempts)),
	)
	return entities.GatewayResult{}, attempts, interfaces.ErrGatewaysExhausted
}

func (d *Dispatcher) skipReason(s entities.GatewayStrategy) string {
	if !s.Enabled {
		return "disabled"
	}
	var missing []string
	for _, key := range s.RequiredEnv {
		if strings.TrimSpace(os.Getenv(key)) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return "missing credentials: " + strings.Join(missing, ",")
	}
	if _, ok := PayloadBuilders[s.Payload]; !ok {
		return fmt.Sprintf("unknown payload %q", s.Payload)
	}
	switch s.Kind {
	case entities.StrategyKindMercadoPago:
		if d.mercadoPago == nil {
			return "mercado pago client not configured"
		}
	case entities.StrategyKindHTTP, "":
		if s.URL == "" {
			return "missing url"
		}
	default:
		return fmt.Sprintf("unknown kind %q", s.Kind)
	}
	return ""
}

func (d *Dispatcher) attempt(ctx context.Context, s entities.GatewayStrategy, order entities.Order, requestID string) (entities.GatewayResult, entities.AttemptDiagnostic) {
	ctx, span := telemetry.StartSpan(ctx, "pix.gateway.attempt",
		attribute.String("gateway", s.Name),
		attribute.String("request_id", requestID),
	)
	defer span.End()

	attemptCtx, cancel := context.WithTimeout(ctx, attemptTimeout(s.Timeout))
	defer cancel()

	start := time.Now()
	diag := entities.AttemptDiagnostic{Gateway: s.Name}
	telemetry.Logger.Info("[pix][dispatcher] attempt start", zap.String("gateway", s.Name), zap.String("request_id", requestID))

	defer func() {
		metrics.GatewayAttempts.WithLabelValues(s.Name, string(diag.Outcome)).Inc()
		metrics.GatewayAttemptDuration.WithLabelValues(s.Name).Observe(time.Since(start).Seconds())
		span.SetAttributes(attribute.String("outcome", string(diag.Outcome)))
		if diag.Outcome != entities.AttemptSucceeded {
			span.SetStatus(codes.Error, string(diag.Outcome))
			telemetry.Logger.Warn("[pix][dispatcher] attempt failed",
				zap.String("gateway", s.Name),
				zap.String("outcome", string(diag.Outcome)),
				zap.Int("status", diag.StatusCode),
				zap.String("detail", diag.Detail),
				zap.Duration("elapsed", time.Since(start)),
			)
		}
	}()

	payload, err := json.Marshal(PayloadBuilders[s.Payload](order, requestID, PayloadOptions{CallbackURL: d.callbackURL}))
	if err != nil {
		diag.Outcome = entities.AttemptInvalidBody
		diag.Detail = "request marshal failed: " + err.Error()
		return entities.GatewayResult{}, diag
	}

	var respBody []byte
	if s.Kind == entities.StrategyKindMercadoPago {
		respBody, err = d.mercadoPago.CreatePayment(attemptCtx, payload)
		if err != nil {
			diag.Outcome = transportOutcome(attemptCtx, err, entities.AttemptHTTPError)
			diag.Detail = truncateDetail(err.Error())
			return entities.GatewayResult{}, diag
		}
	} else {
		var status int
		status, respBody, err = d.post(attemptCtx, s, payload)
		diag.StatusCode = status
		if err != nil {
			diag.Outcome = transportOutcome(attemptCtx, err, entities.AttemptUnreachable)
			diag.Detail = truncateDetail(err.Error())
			return entities.GatewayResult{}, diag
		}
		if status < 200 || status >= 300 {
			diag.Outcome = entities.AttemptHTTPError
			diag.Detail = truncateDetail(string(respBody))
			return entities.GatewayResult{}, diag
		}
	}

	body, err := decodeObject(respBody)
	if err != nil {
		diag.Outcome = entities.AttemptInvalidBody
		diag.Detail = truncateDetail(err.Error())
		return entities.GatewayResult{}, diag
	}

	pixCode := resolveAlias(body, PaymentCodeAliases)
	if pixCode == "" {
		diag.Outcome = entities.AttemptRejected
		diag.Detail = truncateDetail(string(respBody))
		return entities.GatewayResult{}, diag
	}

	diag.Outcome = entities.AttemptSucceeded
	return entities.GatewayResult{
		Provider:      s.Name,
		TransactionID: resolveTransactionID(body),
		PixCode:       pixCode,
		QRImage:       resolveAlias(body, QRImageAliases),
		Raw:           body,
	}, diag
}

func (d *Dispatcher) post(ctx context.Context, s entities.GatewayStrategy, payload []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	for k, v := range s.Headers {
		req.Header.Set(k, v)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

// qrImageFor keeps a provider image when present, otherwise renders one from
// the payment code. Rendering errors leave the image empty.
func (d *Dispatcher) qrImageFor(ctx context.Context, result entities.GatewayResult) string {
	if img := normalizeQRImage(result.QRImage); img != "" {
		return img
	}
	if d.renderer == nil {
		return ""
	}
	img, err := d.renderer.Render(ctx, result.PixCode)
	if err != nil {
		telemetry.Logger.Warn("[pix][dispatcher] qr render failed", zap.String("gateway", result.Provider), zap.Error(err))
		return ""
	}
	return img
}

func decodeObject(raw []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("response is not a json object: %w", err)
	}
	if body == nil {
		return nil, errors.New("response is not a json object: null")
	}
	return body, nil
}

func transportOutcome(ctx context.Context, err error, fallback entities.AttemptOutcome) entities.AttemptOutcome {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return entities.AttemptTimeout
	}
	return fallback
}

func attemptTimeout(t time.Duration) time.Duration {
	switch {
	case t <= 0:
		return DefaultAttemptTimeout
	case t > MaxAttemptTimeout:
		return MaxAttemptTimeout
	default:
		return t
	}
}

func truncateDetail(s string) string {
	s = strings.TrimSpace(s)
	r := []rune(s)
	if len(r) <= maxDetailLen {
		return s
	}
	return string(r[:maxDetailLen]) + "..."
}
