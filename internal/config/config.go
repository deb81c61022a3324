package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"zerovicio/internal/domain/entities"
	"zerovicio/internal/infrastructure/telemetry"
)

const (
	DefaultConfigFile   = "config/gateways.yaml"
	DefaultMerchantCity = "SAO PAULO"
	DefaultExpiresIn    = "24:00:00"
	DefaultWarning      = "MODO DESENVOLVIMENTO - configure um gateway de pagamento para produção"
)

var ErrDuplicateGateway = errors.New("duplicate gateway name")

type GatewayConfig struct {
	Name        string            `mapstructure:"name"`
	Kind        string            `mapstructure:"kind"`
	URL         string            `mapstructure:"url"`
	Headers     map[string]string `mapstructure:"headers"`
	Payload     string            `mapstructure:"payload"`
	Timeout     time.Duration     `mapstructure:"timeout"`
	RequiredEnv []string          `mapstructure:"required_env"`
	Enabled     *bool             `mapstructure:"enabled"`
}

type Pix struct {
	CRCMode      string `mapstructure:"crc_mode"`
	MerchantCity string `mapstructure:"merchant_city"`
}

type Fallback struct {
	MockEnabled       bool   `mapstructure:"mock_enabled"`
	ExposeDiagnostics bool   `mapstructure:"expose_diagnostics"`
	ExpiresIn         string `mapstructure:"expires_in"`
	Warning           string `mapstructure:"warning"`
}

type QR struct {
	Renderer string `mapstructure:"renderer"`
}

type Config struct {
	Pix      Pix             `mapstructure:"pix"`
	Fallback Fallback        `mapstructure:"fallback"`
	QR       QR              `mapstructure:"qr"`
	Gateways []GatewayConfig `mapstructure:"gateways"`
}

// Settings are the non-strategy values the charge flow reads per request.
type Settings struct {
	CRCMode           string
	MerchantCity      string
	MockEnabled       bool
	ExposeDiagnostics bool
	ExpiresIn         string
	Warning           string
	QRRenderer        string
}

// Store holds the current configuration. Strategies and Settings return
// immutable snapshots; a reload swaps them atomically.
type Store struct {
	v          *viper.Viper
	strategies atomic.Pointer[[]entities.GatewayStrategy]
	settings   atomic.Pointer[Settings]
}

// Load reads the YAML file at path. Keys can be overridden by env vars with
// dots replaced by underscores (PIX_CRC_MODE, QR_RENDERER, ...).
func Load(path string) (*Store, error) {
	if path == "" {
		path = DefaultConfigFile
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	s := &Store{v: v}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Watch reloads the file on change. Invalid reloads keep the previous snapshot.
func (s *Store) Watch() {
	s.v.OnConfigChange(func(e fsnotify.Event) {
		if err := s.reload(); err != nil {
			telemetry.Logger.Error("[config] reload rejected, keeping previous config",
				zap.String("file", e.Name),
				zap.Error(err),
			)
			return
		}
		telemetry.Logger.Info("[config] reloaded",
			zap.String("file", e.Name),
			zap.Int("gateways", len(s.Strategies())),
		)
	})
	s.v.WatchConfig()
}

func (s *Store) Strategies() []entities.GatewayStrategy {
	if p := s.strategies.Load(); p != nil {
		return *p
	}
	return nil
}

func (s *Store) Settings() Settings {
	if p := s.settings.Load(); p != nil {
		return *p
	}
	return Settings{}
}

func (s *Store) reload() error {
	var cfg Config
	if err := s.v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}

	strategies, err := BuildStrategies(cfg.Gateways)
	if err != nil {
		return err
	}
	settings := cfg.settings()

	s.strategies.Store(&strategies)
	s.settings.Store(&settings)
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("pix.crc_mode", "placeholder")
	v.SetDefault("pix.merchant_city", DefaultMerchantCity)
	v.SetDefault("fallback.mock_enabled", true)
	v.SetDefault("fallback.expose_diagnostics", false)
	v.SetDefault("fallback.expires_in", DefaultExpiresIn)
	v.SetDefault("fallback.warning", DefaultWarning)
	v.SetDefault("qr.renderer", "hosted")
}

func (c Config) settings() Settings {
	return Settings{
		CRCMode:           c.Pix.CRCMode,
		MerchantCity:      c.Pix.MerchantCity,
		MockEnabled:       c.Fallback.MockEnabled,
		ExposeDiagnostics: c.Fallback.ExposeDiagnostics,
		ExpiresIn:         c.Fallback.ExpiresIn,
		Warning:           c.Fallback.Warning,
		QRRenderer:        c.QR.Renderer,
	}
}

// BuildStrategies validates gateway entries and expands ${VAR} references in
// urls and header values. Order is preserved.
func BuildStrategies(gateways []GatewayConfig) ([]entities.GatewayStrategy, error) {
	seen := make(map[string]struct{}, len(gateways))
	out := make([]entities.GatewayStrategy, 0, len(gateways))

	for i, g := range gateways {
		name := strings.TrimSpace(g.Name)
		if name == "" {
			return nil, fmt.Errorf("gateway #%d: name is required", i+1)
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateGateway, name)
		}
		seen[name] = struct{}{}

		kind := entities.StrategyKind(strings.ToLower(strings.TrimSpace(g.Kind)))
		if kind == "" {
			kind = entities.StrategyKindHTTP
		}
		if kind != entities.StrategyKindHTTP && kind != entities.StrategyKindMercadoPago {
			return nil, fmt.Errorf("gateway %s: unknown kind %q", name, g.Kind)
		}

		headers := make(map[string]string, len(g.Headers))
		for k, v := range g.Headers {
			headers[k] = os.ExpandEnv(v)
		}

		enabled := true
		if g.Enabled != nil {
			enabled = *g.Enabled
		}

		out = append(out, entities.GatewayStrategy{
			Name:        name,
			Kind:        kind,
			URL:         os.ExpandEnv(g.URL),
			Headers:     headers,
			Payload:     g.Payload,
			Timeout:     g.Timeout,
			RequiredEnv: g.RequiredEnv,
			Enabled:     enabled,
		})
	}
	return out, nil
}
