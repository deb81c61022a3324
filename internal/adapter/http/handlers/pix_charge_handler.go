package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"zerovicio/internal/adapter/http/dto/request"
	"zerovicio/internal/adapter/http/dto/response"
	"zerovicio/internal/infrastructure/telemetry"
	"zerovicio/internal/usecase"
	"zerovicio/pkg"
)

// PixChargeHandler handles checkout PIX charge requests.
type PixChargeHandler struct {
	usecase usecase.IPixChargeUseCase
}

func NewPixChargeHandler(uc usecase.IPixChargeUseCase) *PixChargeHandler {
	return &PixChargeHandler{usecase: uc}
}

// CreateCharge godoc
// @Summary      Create a PIX charge
// @Description  Tries the configured payment gateways in order and returns the first PIX charge produced. When every gateway fails, a development mock charge is returned unless the fallback is disabled.
// @Tags         pix
// @Accept       json
// @Produce      json
// @Param        request  body      request.PixChargeRequest  true  "Checkout data"
// @Success      200      {object}  response.PixChargeResponse
// @Failure      400      {object}  pkg.HTTPError
// @Failure      500      {object}  pkg.HTTPError
// @Failure      502      {object}  pkg.HTTPError
// @Router       /v1/pix/charges [post]
// @Router       /api/gerar-pix [post]
func (h *PixChargeHandler) CreateCharge(c *gin.Context) {
	var req request.PixChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		telemetry.Logger.Info("[pix][handler] invalid body", zap.Error(err))
		appErr := pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest).
			WithDetails(err.Error(), nil)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	result, err := h.usecase.CreateCharge(c.Request.Context(), req.ToOrder())
	if err != nil {
		appErr := mapPixChargeError(err)
		telemetry.Logger.Warn("[pix][handler] create charge failed",
			zap.String("code", appErr.Code),
			zap.Int("status", appErr.HTTPStatus),
			zap.Error(err),
		)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}

	c.JSON(http.StatusOK, response.FromChargeResult(result))
}

func mapPixChargeError(err error) *pkg.AppError {
	var appErr *pkg.AppError
	switch {
	case errors.Is(err, usecase.ErrInvalidName), errors.Is(err, usecase.ErrInvalidCPF), errors.Is(err, usecase.ErrInvalidPrice):
		appErr = pkg.NewDomainError("INVALID_REQUEST", "Invalid request", err, http.StatusBadRequest)
		return appErr.WithDetails(err.Error(), nil)
	case errors.Is(err, usecase.ErrConfiguration):
		appErr = pkg.NewDomainError("CONFIGURATION_ERROR", "Payment service is not configured", err, http.StatusInternalServerError)
	case errors.Is(err, usecase.ErrUpstreamsExhausted):
		appErr = pkg.NewDomainError("UPSTREAMS_EXHAUSTED", "Payment providers are unavailable", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrMockGeneration):
		appErr = pkg.NewDomainError("PIX_GENERATION_FAILED", "Could not generate the PIX code", err, http.StatusInternalServerError)
	default:
		appErr = pkg.NewDomainError("INTERNAL_ERROR", "Erro interno no servidor", err, http.StatusInternalServerError)
	}
	return appErr.WithDetails(err.Error(), usecase.ChargeLogs(err))
}
