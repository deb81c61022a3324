package routes

import (
	"github.com/gin-gonic/gin"

	"zerovicio/internal/adapter/http/handlers"
)

const (
	PathLegacyGeneratePix = "/api/gerar-pix"
	PathPixCharges        = "/v1/pix/charges"
)

func addPixRoutes(router *gin.Engine, pixHandler *handlers.PixChargeHandler) {
	// Path used by the current landing page.
	router.POST(PathLegacyGeneratePix, pixHandler.CreateCharge)
	router.POST(PathPixCharges, pixHandler.CreateCharge)
}
