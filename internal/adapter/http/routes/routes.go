package routes

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "zerovicio/docs" // swagger spec
	"zerovicio/internal/adapter/http/handlers"
	"zerovicio/internal/adapter/persistence/repository"
	"zerovicio/internal/config"
	"zerovicio/internal/domain/pix"
	"zerovicio/internal/infrastructure/database"
	"zerovicio/internal/infrastructure/messaging"
	"zerovicio/internal/infrastructure/payments"
	"zerovicio/internal/infrastructure/qrcode"
	"zerovicio/internal/infrastructure/telemetry"
	"zerovicio/internal/usecase"
	"zerovicio/internal/usecase/interfaces"
)

const (
	defaultPort     = "8080"
	shutdownTimeout = 10 * time.Second
	webhookPath     = "/api/webhook"
)

// Run starts the server and blocks until SIGINT/SIGTERM, then drains
// in-flight requests and background writes.
func Run() {
	store, err := config.Load(config.GetenvDefault("CONFIG_FILE", config.DefaultConfigFile))
	if err != nil {
		telemetry.Logger.Fatal("[routes] failed to load config", zap.Error(err))
	}
	store.Watch()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, err := buildApp(ctx, store)
	if err != nil {
		telemetry.Logger.Fatal("[routes] failed to wire application", zap.Error(err))
	}

	port := config.GetenvDefault("PORT", defaultPort)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           NewRouter(handlers.NewPixChargeHandler(app.charges)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		telemetry.Logger.Info("[routes] server starting",
			zap.String("port", port),
			zap.Int("gateways", len(store.Strategies())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			telemetry.Logger.Fatal("[routes] failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	telemetry.Logger.Info("[routes] shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		telemetry.Logger.Error("[routes] server forced to shutdown", zap.Error(err))
	}
	if err := app.charges.Drain(shutdownCtx); err != nil {
		telemetry.Logger.Warn("[routes] background writes still pending", zap.Error(err))
	}
	app.close()
	telemetry.Logger.Info("[routes] server exited")
}

// NewRouter builds the gin engine with every public route.
func NewRouter(pixHandler *handlers.PixChargeHandler) *gin.Engine {
	router := gin.New()
	setMiddlewares(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	addPingRoutes(router)
	addPixRoutes(router, pixHandler)
	return router
}

func setMiddlewares(router *gin.Engine) {
	router.Use(telemetry.TracingMiddleware())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		telemetry.Logger.Error("[routes] recovered from panic", zap.Any("panic", recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}

type app struct {
	charges *usecase.PixChargeUseCase
	closers []func() error
}

func (a *app) close() {
	for _, c := range a.closers {
		if err := c(); err != nil {
			telemetry.Logger.Warn("[routes] close failed", zap.Error(err))
		}
	}
}

func buildApp(ctx context.Context, store *config.Store) (*app, error) {
	settings := store.Settings()
	a := &app{}

	generator, err := pix.NewGenerator(pix.CRCMode(settings.CRCMode))
	if err != nil {
		return nil, err
	}
	renderer := qrcode.NewRenderer(settings.QRRenderer)

	var mercadoPago payments.MercadoPagoCaller
	if token := strings.TrimSpace(os.Getenv("MERCADOPAGO_ACCESS_TOKEN")); token != "" {
		gw, err := payments.NewMercadoPagoGateway(token)
		if err != nil {
			telemetry.Logger.Warn("[routes] mercado pago gateway not configured", zap.Error(err))
		} else {
			mercadoPago = gw
		}
	}

	dispatcher := payments.NewDispatcher(store.Strategies, mercadoPago, renderer, callbackURL())

	var repo interfaces.ITransactionRepository
	if envBool("PERSISTENCE_ENABLED") {
		ddb, err := database.NewDynamoDBClientFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		table := repository.TransactionsTableName()
		if os.Getenv("DYNAMODB_ENDPOINT") != "" {
			if err := database.EnsureTable(ctx, ddb, table); err != nil {
				telemetry.Logger.Warn("[routes] ensure table failed", zap.String("table", table), zap.Error(err))
			}
		}
		repo = repository.NewTransactionDynamoRepository(ddb)
	} else {
		telemetry.Logger.Info("[routes] persistence disabled")
	}

	var publisher interfaces.ITransactionEventPublisher
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		p, err := messaging.NewKafkaPublisher(brokers, os.Getenv("KAFKA_TOPIC"))
		if err != nil {
			return nil, err
		}
		publisher = p
		a.closers = append(a.closers, p.Close)
	}

	a.charges = usecase.NewPixChargeUseCase(dispatcher, generator, renderer, repo, publisher, chargeSettings(store))
	return a, nil
}

func chargeSettings(store *config.Store) usecase.ChargeSettingsSource {
	return func() usecase.ChargeSettings {
		s := store.Settings()
		return usecase.ChargeSettings{
			MockEnabled:       s.MockEnabled,
			ExposeDiagnostics: s.ExposeDiagnostics,
			MerchantCity:      s.MerchantCity,
			ExpiresIn:         s.ExpiresIn,
			Warning:           s.Warning,
		}
	}
}

func callbackURL() string {
	base := strings.TrimRight(strings.TrimSpace(os.Getenv("PUBLIC_BASE_URL")), "/")
	if base == "" {
		return ""
	}
	return base + webhookPath
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}
