package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"

	"zerovicio/internal/adapter/http/handlers/mocks"
	"zerovicio/internal/domain/entities"
	"zerovicio/internal/usecase"
	"zerovicio/pkg"
)

const validBody = `{"name":"Joana Souza","email":"joana@example.com","cpf":"123.456.789-09","price":167.90,"plan":"anual","fbp":"fb.1.1"}`

func newPixRouter(uc usecase.IPixChargeUseCase) *gin.Engine {
	h := NewPixChargeHandler(uc)
	r := gin.New()
	r.POST("/api/gerar-pix", h.CreateCharge)
	return r
}

func postPix(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/gerar-pix", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPixChargeHandler_CreateCharge(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)

		w := postPix(newPixRouter(uc), "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("missing required fields", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)

		w := postPix(newPixRouter(uc), `{"email":"x@y.com","price":10}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("gateway charge", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)

		uc.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, order entities.Order) (usecase.ChargeResult, error) {
			if order.Name != "Joana Souza" || order.Price.StringFixed(2) != "167.90" || order.FBP != "fb.1.1" {
				t.Errorf("unexpected order: %+v", order)
			}
			return usecase.ChargeResult{
				ID:       "tx-1",
				QRImage:  "data:image/png;base64,AAA",
				PixCode:  "000201",
				Provider: "gw1",
				Message:  "Pagamento criado via gw1",
			}, nil
		})

		w := postPix(newPixRouter(uc), validBody)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
		var got map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if got["id"] != "tx-1" || got["copiaECola"] != "000201" || got["qrCodeBase64"] != "data:image/png;base64,AAA" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
		if got["message"] != "Pagamento criado via gw1" {
			t.Fatalf("unexpected message: %v", got["message"])
		}
	})

	t.Run("mock charge", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIPixChargeUseCase(ctrl)

		uc.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).Return(usecase.ChargeResult{
			ID:        "req-1",
			PixCode:   "000201MOCK",
			Provider:  entities.ProviderMock,
			Warning:   "dev",
			ExpiresIn: "24:00:00",
			IsMock:    true,
		}, nil)

		w := postPix(newPixRouter(uc), validBody)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var got map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &got)
		if got["provider"] != "MOCK_DEV" || got["expiresIn"] != "24:00:00" || got["warning"] != "dev" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestPixChargeHandler_ErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", usecase.ErrInvalidPrice, http.StatusBadRequest, "INVALID_REQUEST"},
		{"configuration", &usecase.ChargeError{Err: usecase.ErrConfiguration}, http.StatusInternalServerError, "CONFIGURATION_ERROR"},
		{"upstreams", &usecase.ChargeError{Err: usecase.ErrUpstreamsExhausted, Logs: []string{"gw1: timeout"}}, http.StatusBadGateway, "UPSTREAMS_EXHAUSTED"},
		{"mock generation", &usecase.ChargeError{Err: fmt.Errorf("%w: boom", usecase.ErrMockGeneration)}, http.StatusInternalServerError, "PIX_GENERATION_FAILED"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIPixChargeUseCase(ctrl)
			uc.EXPECT().CreateCharge(gomock.Any(), gomock.Any()).Return(usecase.ChargeResult{}, tt.err)

			w := postPix(newPixRouter(uc), validBody)
			if w.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, w.Code)
			}
			var body pkg.HTTPError
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Error != tt.code {
				t.Fatalf("expected code %s, got %s", tt.code, body.Error)
			}
			if tt.code == "UPSTREAMS_EXHAUSTED" && (len(body.Logs) != 1 || body.Logs[0] != "gw1: timeout") {
				t.Fatalf("expected diagnostics in body, got %v", body.Logs)
			}
		})
	}
}
