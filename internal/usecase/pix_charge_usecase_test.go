package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"

	"zerovicio/internal/domain/entities"
	"zerovicio/internal/domain/pix"
	"zerovicio/internal/usecase/interfaces"
	mock_interfaces "zerovicio/internal/usecase/interfaces/mocks"
)

type chargeMocks struct {
	dispatcher *mock_interfaces.MockIGatewayDispatcher
	generator  *mock_interfaces.MockIPixCodeGenerator
	renderer   *mock_interfaces.MockIQRCodeRenderer
	repo       *mock_interfaces.MockITransactionRepository
	publisher  *mock_interfaces.MockITransactionEventPublisher
}

func newChargeUseCase(t *testing.T, settings ChargeSettings) (*PixChargeUseCase, chargeMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := chargeMocks{
		dispatcher: mock_interfaces.NewMockIGatewayDispatcher(ctrl),
		generator:  mock_interfaces.NewMockIPixCodeGenerator(ctrl),
		renderer:   mock_interfaces.NewMockIQRCodeRenderer(ctrl),
		repo:       mock_interfaces.NewMockITransactionRepository(ctrl),
		publisher:  mock_interfaces.NewMockITransactionEventPublisher(ctrl),
	}
	uc := NewPixChargeUseCase(m.dispatcher, m.generator, m.renderer, m.repo, m.publisher, func() ChargeSettings { return settings })
	uc.newID = func() string { return "req-1" }
	uc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return uc, m
}

func validOrder() entities.Order {
	return entities.Order{
		Name:  "Joana Souza",
		Email: "joana@example.com",
		CPF:   "123.456.789-09",
		Price: decimal.RequireFromString("167.90"),
		Plan:  "anual",
		FBP:   "fb.1.1",
		FBC:   "fb.1.2",
	}
}

func drain(t *testing.T, uc *PixChargeUseCase) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := uc.Drain(ctx); err != nil {
		t.Fatalf("drain: %v", err)
	}
}

func TestPixChargeUseCase_CreateCharge_Validations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *entities.Order)
		want   error
	}{
		{"blank name", func(o *entities.Order) { o.Name = "  " }, ErrInvalidName},
		{"cpf without digits", func(o *entities.Order) { o.CPF = "abc.def" }, ErrInvalidCPF},
		{"zero price", func(o *entities.Order) { o.Price = decimal.Zero }, ErrInvalidPrice},
		{"negative price", func(o *entities.Order) { o.Price = decimal.NewFromInt(-1) }, ErrInvalidPrice},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, _ := newChargeUseCase(t, ChargeSettings{MockEnabled: true})
			order := validOrder()
			tt.mutate(&order)

			_, err := uc.CreateCharge(context.Background(), order)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestPixChargeUseCase_CreateCharge_GatewaySuccess(t *testing.T) {
	uc, m := newChargeUseCase(t, ChargeSettings{MockEnabled: true})

	m.dispatcher.EXPECT().Dispatch(gomock.Any(), validOrder(), "req-1").Return(entities.GatewayResult{
		Provider:      "gw2",
		TransactionID: "tx-99",
		PixCode:       "ABC",
		QRImage:       "data:image/png;base64,AAA",
	}, []entities.AttemptDiagnostic{
		{Gateway: "gw1", Outcome: entities.AttemptHTTPError, StatusCode: 500},
		{Gateway: "gw2", Outcome: entities.AttemptSucceeded},
	}, nil)

	m.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.TransactionRecord) error {
		if r.ID != "tx-99" || r.Provider != "gw2" || r.IsMock || r.Status != entities.TransactionStatusCreated {
			t.Errorf("unexpected record: %+v", r)
		}
		if r.FBP != "fb.1.1" || r.FBC != "fb.1.2" || len(r.Attempts) != 2 {
			t.Errorf("pass-through fields lost: %+v", r)
		}
		return nil
	})
	m.publisher.EXPECT().PublishCreated(gomock.Any(), gomock.Any()).Return(nil)

	res, err := uc.CreateCharge(context.Background(), validOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drain(t, uc)

	if res.ID != "tx-99" || res.PixCode != "ABC" || res.Provider != "gw2" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.Message != "Pagamento criado via gw2" {
		t.Fatalf("unexpected message %q", res.Message)
	}
	if res.IsMock || res.Warning != "" || res.ExpiresIn != "" {
		t.Fatalf("gateway charge must not carry mock fields: %+v", res)
	}
	if res.Logs != nil {
		t.Fatalf("diagnostics must be hidden by default, got %v", res.Logs)
	}
}

func TestPixChargeUseCase_CreateCharge_MockFallback(t *testing.T) {
	uc, m := newChargeUseCase(t, ChargeSettings{MockEnabled: true, ExposeDiagnostics: true, Warning: "dev"})

	attempts := []entities.AttemptDiagnostic{{Gateway: "gw1", Outcome: entities.AttemptTimeout}}
	m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), "req-1").Return(entities.GatewayResult{}, attempts, interfaces.ErrGatewaysExhausted)
	m.generator.EXPECT().Generate(pix.Params{
		TransactionID: "req-1",
		Amount:        validOrder().Price,
		MerchantName:  "Joana Souza",
		MerchantCity:  "SAO PAULO",
	}).Return("000201MOCK", nil)
	m.renderer.EXPECT().Render(gomock.Any(), "000201MOCK").Return("https://qr.example.com/x", nil)
	m.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r entities.TransactionRecord) error {
		if !r.IsMock || r.Provider != entities.ProviderMock || r.ID != "req-1" {
			t.Errorf("unexpected mock record: %+v", r)
		}
		return nil
	})
	m.publisher.EXPECT().PublishCreated(gomock.Any(), gomock.Any()).Return(nil)

	res, err := uc.CreateCharge(context.Background(), validOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drain(t, uc)

	if res.Provider != entities.ProviderMock || !res.IsMock {
		t.Fatalf("expected mock provider, got %+v", res)
	}
	if res.ID != "req-1" || res.PixCode != "000201MOCK" || res.QRImage != "https://qr.example.com/x" {
		t.Fatalf("unexpected result: %+v", res)
	}
	if res.ExpiresIn != "24:00:00" || res.Warning != "dev" {
		t.Fatalf("unexpected mock fields: %+v", res)
	}
	if len(res.Logs) != 1 || !strings.Contains(res.Logs[0], "gw1: timeout") {
		t.Fatalf("expected exposed diagnostics, got %v", res.Logs)
	}
}

func TestPixChargeUseCase_CreateCharge_MockRenderFailureStillSucceeds(t *testing.T) {
	uc, m := newChargeUseCase(t, ChargeSettings{MockEnabled: true})
	uc.repo = nil
	uc.publisher = nil

	m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.GatewayResult{}, nil, interfaces.ErrGatewaysExhausted)
	m.generator.EXPECT().Generate(gomock.Any()).Return("000201MOCK", nil)
	m.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).Return("", errors.New("boom"))

	res, err := uc.CreateCharge(context.Background(), validOrder())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.PixCode != "000201MOCK" || res.QRImage != "" {
		t.Fatalf("unexpected result: %+v", res)
	}
}

func TestPixChargeUseCase_CreateCharge_MockDisabled(t *testing.T) {
	t.Run("attempted strategies give upstream error", func(t *testing.T) {
		uc, m := newChargeUseCase(t, ChargeSettings{MockEnabled: false})
		m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.GatewayResult{},
			[]entities.AttemptDiagnostic{{Gateway: "gw1", Outcome: entities.AttemptRejected}}, interfaces.ErrGatewaysExhausted)

		_, err := uc.CreateCharge(context.Background(), validOrder())
		if !errors.Is(err, ErrUpstreamsExhausted) {
			t.Fatalf("expected ErrUpstreamsExhausted, got %v", err)
		}
		if logs := ChargeLogs(err); len(logs) != 1 {
			t.Fatalf("expected diagnostics on error, got %v", logs)
		}
	})

	t.Run("nothing attempted gives configuration error", func(t *testing.T) {
		uc, m := newChargeUseCase(t, ChargeSettings{MockEnabled: false})
		m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.GatewayResult{},
			[]entities.AttemptDiagnostic{{Gateway: "gw1", Outcome: entities.AttemptSkipped}}, interfaces.ErrGatewaysExhausted)

		_, err := uc.CreateCharge(context.Background(), validOrder())
		if !errors.Is(err, ErrConfiguration) {
			t.Fatalf("expected ErrConfiguration, got %v", err)
		}
	})
}

func TestPixChargeUseCase_CreateCharge_MockGenerationFails(t *testing.T) {
	uc, m := newChargeUseCase(t, ChargeSettings{MockEnabled: true})
	m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.GatewayResult{}, nil, interfaces.ErrGatewaysExhausted)
	m.generator.EXPECT().Generate(gomock.Any()).Return("", pix.ErrMissingMerchantName)

	_, err := uc.CreateCharge(context.Background(), validOrder())
	if !errors.Is(err, ErrMockGeneration) {
		t.Fatalf("expected ErrMockGeneration, got %v", err)
	}
}

func TestPixChargeUseCase_BackgroundWritesOutliveRequest(t *testing.T) {
	uc, m := newChargeUseCase(t, ChargeSettings{MockEnabled: true})
	ctx, cancel := context.WithCancel(context.Background())

	m.dispatcher.EXPECT().Dispatch(gomock.Any(), gomock.Any(), gomock.Any()).Return(entities.GatewayResult{
		Provider: "gw1", TransactionID: "tx-1", PixCode: "ABC",
	}, nil, nil)

	release := make(chan struct{})
	m.repo.EXPECT().Upsert(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, _ entities.TransactionRecord) error {
		<-release
		if ctx.Err() != nil {
			t.Errorf("background context cancelled with request: %v", ctx.Err())
		}
		return errors.New("dynamo down")
	})
	m.publisher.EXPECT().PublishCreated(gomock.Any(), gomock.Any()).Return(errors.New("kafka down"))

	res, err := uc.CreateCharge(ctx, validOrder())
	if err != nil {
		t.Fatalf("sink failures must not reach the caller: %v", err)
	}
	if res.ID != "tx-1" {
		t.Fatalf("unexpected id %q", res.ID)
	}

	cancel()
	close(release)
	drain(t, uc)
}

func TestPixChargeUseCase_DrainHonoursContext(t *testing.T) {
	uc, _ := newChargeUseCase(t, ChargeSettings{})
	block := make(chan struct{})
	uc.wg.Add(1)
	go func() {
		<-block
		uc.wg.Done()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := uc.Drain(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	close(block)
}
