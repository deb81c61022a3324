package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"zerovicio/internal/domain/entities"
	"zerovicio/internal/domain/pix"
	"zerovicio/internal/infrastructure/metrics"
	"zerovicio/internal/infrastructure/telemetry"
	"zerovicio/internal/usecase/interfaces"
)

var (
	ErrInvalidName        = errors.New("name is required")
	ErrInvalidCPF         = errors.New("cpf must contain digits")
	ErrInvalidPrice       = errors.New("price must be greater than zero")
	ErrConfiguration      = errors.New("no payment gateway configured")
	ErrUpstreamsExhausted = errors.New("all payment gateways failed")
	ErrMockGeneration     = errors.New("failed to generate fallback pix code")
)

const (
	defaultWriteTimeout = 5 * time.Second
	defaultMerchantCity = "SAO PAULO"
	defaultExpiresIn    = "24:00:00"
)

// ChargeSettings are read once per request so config reloads apply to the
// next charge.
type ChargeSettings struct {
	MockEnabled       bool
	ExposeDiagnostics bool
	MerchantCity      string
	ExpiresIn         string
	Warning           string
}

type ChargeSettingsSource func() ChargeSettings

// ChargeResult is what the customer gets back. Mock-only fields are empty for
// gateway charges.
type ChargeResult struct {
	ID        string
	QRImage   string
	PixCode   string
	Provider  string
	Message   string
	Warning   string
	ExpiresIn string
	IsMock    bool
	Logs      []string
}

// ChargeError wraps a charge failure with the attempt log, when exposed.
type ChargeError struct {
	Err  error
	Logs []string
}

func (e *ChargeError) Error() string { return e.Err.Error() }
func (e *ChargeError) Unwrap() error { return e.Err }

// ChargeLogs returns the attempt log carried by err, if any.
func ChargeLogs(err error) []string {
	var ce *ChargeError
	if errors.As(err, &ce) {
		return ce.Logs
	}
	return nil
}

// IPixChargeUseCase creates a PIX charge for a checkout order.
//
// Behavior:
//   - Gateways are tried in configured order; the first recognized answer wins.
//   - When all fail, a locally generated mock charge is returned unless disabled.
//   - The transaction is persisted and published in the background; failures
//     there never reach the customer.
type IPixChargeUseCase interface {
	CreateCharge(ctx context.Context, order entities.Order) (ChargeResult, error)
}

type PixChargeUseCase struct {
	dispatcher interfaces.IGatewayDispatcher
	generator  interfaces.IPixCodeGenerator
	renderer   interfaces.IQRCodeRenderer
	repo       interfaces.ITransactionRepository
	publisher  interfaces.ITransactionEventPublisher
	settings   ChargeSettingsSource

	writeTimeout time.Duration
	newID        func() string
	now          func() time.Time
	wg           sync.WaitGroup
}

var _ IPixChargeUseCase = (*PixChargeUseCase)(nil)

// NewPixChargeUseCase wires the charge flow. repo and publisher may be nil
// when the corresponding sink is disabled.
func NewPixChargeUseCase(
	dispatcher interfaces.IGatewayDispatcher,
	generator interfaces.IPixCodeGenerator,
	renderer interfaces.IQRCodeRenderer,
	repo interfaces.ITransactionRepository,
	publisher interfaces.ITransactionEventPublisher,
	settings ChargeSettingsSource,
) *PixChargeUseCase {
	return &PixChargeUseCase{
		dispatcher:   dispatcher,
		generator:    generator,
		renderer:     renderer,
		repo:         repo,
		publisher:    publisher,
		settings:     settings,
		writeTimeout: defaultWriteTimeout,
		newID:        func() string { return uuid.NewString() },
		now:          time.Now,
	}
}

func (u *PixChargeUseCase) CreateCharge(ctx context.Context, order entities.Order) (ChargeResult, error) {
	if err := validateOrder(order); err != nil {
		telemetry.Logger.Info("[pix][usecase] invalid order", zap.Error(err))
		return ChargeResult{}, err
	}

	requestID := u.newID()
	ctx, span := telemetry.StartSpan(ctx, "pix.charge.create", attribute.String("request_id", requestID))
	defer span.End()

	settings := u.currentSettings()
	telemetry.Logger.Info("[pix][usecase] create charge start",
		zap.String("request_id", requestID),
		zap.String("plan", order.Plan),
		zap.String("price", order.Price.StringFixed(2)),
	)

	result, attempts, err := u.dispatcher.Dispatch(ctx, order, requestID)
	var logs []string
	if settings.ExposeDiagnostics {
		logs = entities.DiagnosticLines(attempts)
	}

	var charge ChargeResult
	switch {
	case err == nil:
		charge = ChargeResult{
			ID:       result.TransactionID,
			QRImage:  result.QRImage,
			PixCode:  result.PixCode,
			Provider: result.Provider,
			Message:  "Pagamento criado via " + result.Provider,
		}
		metrics.ChargesTotal.WithLabelValues(metrics.SourceGateway).Inc()

	case errors.Is(err, interfaces.ErrGatewaysExhausted):
		if !settings.MockEnabled {
			cause := ErrUpstreamsExhausted
			if !entities.Attempted(attempts) {
				cause = ErrConfiguration
			}
			telemetry.Logger.Error("[pix][usecase] no charge produced and fallback disabled",
				zap.String("request_id", requestID),
				zap.Error(cause),
			)
			return ChargeResult{}, &ChargeError{Err: cause, Logs: entities.DiagnosticLines(attempts)}
		}

		charge, err = u.mockCharge(ctx, order, requestID, settings)
		if err != nil {
			return ChargeResult{}, &ChargeError{Err: err, Logs: logs}
		}
		metrics.ChargesTotal.WithLabelValues(metrics.SourceMock).Inc()

	default:
		telemetry.Logger.Error("[pix][usecase] dispatch failed", zap.String("request_id", requestID), zap.Error(err))
		return ChargeResult{}, &ChargeError{Err: fmt.Errorf("%w: %v", ErrUpstreamsExhausted, err), Logs: logs}
	}
	charge.Logs = logs

	u.recordAsync(ctx, entities.TransactionRecord{
		ID:        charge.ID,
		Status:    entities.TransactionStatusCreated,
		Provider:  charge.Provider,
		PixCode:   charge.PixCode,
		QRImage:   charge.QRImage,
		CreatedAt: u.now().UTC(),
		IsMock:    charge.IsMock,
		Name:      order.Name,
		Email:     order.Email,
		Phone:     order.Phone,
		Plan:      order.Plan,
		Price:     order.Price,
		FBP:       order.FBP,
		FBC:       order.FBC,
		Attempts:  attempts,
	})

	telemetry.Logger.Info("[pix][usecase] create charge done",
		zap.String("request_id", requestID),
		zap.String("transaction_id", charge.ID),
		zap.String("provider", charge.Provider),
		zap.Bool("mock", charge.IsMock),
	)
	return charge, nil
}

func (u *PixChargeUseCase) mockCharge(ctx context.Context, order entities.Order, requestID string, settings ChargeSettings) (ChargeResult, error) {
	telemetry.Logger.Warn("[pix][usecase] gateways exhausted, generating mock charge", zap.String("request_id", requestID))

	code, err := u.generator.Generate(pix.Params{
		TransactionID: requestID,
		Amount:        order.Price,
		MerchantName:  strings.TrimSpace(order.Name),
		MerchantCity:  settings.MerchantCity,
	})
	if err != nil {
		telemetry.Logger.Error("[pix][usecase] mock code generation failed", zap.String("request_id", requestID), zap.Error(err))
		return ChargeResult{}, fmt.Errorf("%w: %v", ErrMockGeneration, err)
	}

	var qr string
	if u.renderer != nil {
		qr, err = u.renderer.Render(ctx, code)
		if err != nil {
			telemetry.Logger.Warn("[pix][usecase] mock qr render failed", zap.String("request_id", requestID), zap.Error(err))
		}
	}

	return ChargeResult{
		ID:        requestID,
		QRImage:   qr,
		PixCode:   code,
		Provider:  entities.ProviderMock,
		Warning:   settings.Warning,
		ExpiresIn: settings.ExpiresIn,
		IsMock:    true,
	}, nil
}

// recordAsync persists and publishes the record without blocking the caller.
// The request context is detached so the writes outlive the response.
func (u *PixChargeUseCase) recordAsync(ctx context.Context, rec entities.TransactionRecord) {
	bg := context.WithoutCancel(ctx)

	if u.repo != nil {
		u.runBackground(bg, metrics.SinkRepository, rec.ID, func(ctx context.Context) error {
			return u.repo.Upsert(ctx, rec)
		})
	}
	if u.publisher != nil {
		u.runBackground(bg, metrics.SinkPublisher, rec.ID, func(ctx context.Context) error {
			return u.publisher.PublishCreated(ctx, rec)
		})
	}
}

func (u *PixChargeUseCase) runBackground(ctx context.Context, sink, id string, fn func(context.Context) error) {
	u.wg.Add(1)
	go func() {
		defer u.wg.Done()
		ctx, cancel := context.WithTimeout(ctx, u.writeTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			metrics.BackgroundWriteFailures.WithLabelValues(sink).Inc()
			telemetry.Logger.Error("[pix][usecase] background write failed",
				zap.String("sink", sink),
				zap.String("transaction_id", id),
				zap.Error(err),
			)
		}
	}()
}

// Drain waits for in-flight background writes or until ctx is done.
func (u *PixChargeUseCase) Drain(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		u.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (u *PixChargeUseCase) currentSettings() ChargeSettings {
	s := ChargeSettings{MockEnabled: true}
	if u.settings != nil {
		s = u.settings()
	}
	if strings.TrimSpace(s.MerchantCity) == "" {
		s.MerchantCity = defaultMerchantCity
	}
	if s.ExpiresIn == "" {
		s.ExpiresIn = defaultExpiresIn
	}
	return s
}

func validateOrder(o entities.Order) error {
	if strings.TrimSpace(o.Name) == "" {
		return ErrInvalidName
	}
	if o.CPFDigits() == "" {
		return ErrInvalidCPF
	}
	if !o.Price.IsPositive() {
		return ErrInvalidPrice
	}
	return nil
}
