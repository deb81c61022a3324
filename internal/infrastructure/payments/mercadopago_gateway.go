package payments

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"go.uber.org/zap"

	"zerovicio/internal/infrastructure/telemetry"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// MercadoPagoCaller is what the dispatcher needs from an SDK-backed gateway:
// JSON request in, JSON response out.
type MercadoPagoCaller interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (json.RawMessage, error)
}

// MercadoPagoGateway creates PIX payments through the official SDK.
type MercadoPagoGateway struct {
	client payment.Client
}

var _ MercadoPagoCaller = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string) (*MercadoPagoGateway, error) {
	if accessToken == "" {
		telemetry.Logger.Info("[payment][mercadopago] missing MERCADOPAGO_ACCESS_TOKEN")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		telemetry.Logger.Error("[payment][mercadopago] failed creating sdk config", zap.Error(err))
		return nil, err
	}
	telemetry.Logger.Info("[payment][mercadopago] client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg)}, nil
}

// CreatePayment sends the request through the SDK and returns the full SDK
// response re-encoded as JSON, so it can go through the same alias lookup as
// raw HTTP providers.
func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (json.RawMessage, error) {
	if g == nil || g.client == nil {
		return nil, ErrMercadoPagoGatewayNotConfigured
	}
	telemetry.Logger.Debug("[payment][mercadopago] create start", zap.Int("payload_len", len(requestPayload)))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		telemetry.Logger.Warn("[payment][mercadopago] payload unmarshal failed", zap.Error(err))
		return nil, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		telemetry.Logger.Warn("[payment][mercadopago] sdk create failed", zap.Error(err))
		return nil, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		telemetry.Logger.Error("[payment][mercadopago] response marshal failed", zap.Error(err))
		return nil, err
	}
	telemetry.Logger.Info("[payment][mercadopago] create success",
		zap.Any("provider_payment_id", resp.ID),
		zap.String("provider_status", resp.Status),
	)
	return b, nil
}
