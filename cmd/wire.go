package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/tradebot/internal/adapters/catalog/schema"
	"github.com/bnema/tradebot/internal/adapters/inventory/webapi"
	statusadapter "github.com/bnema/tradebot/internal/adapters/render/status"
	tomlrepo "github.com/bnema/tradebot/internal/adapters/repo/toml"
	filestore "github.com/bnema/tradebot/internal/adapters/secrets/file"
	"github.com/bnema/tradebot/internal/adapters/tradeweb"
	"github.com/bnema/tradebot/internal/application/bot"
	"github.com/bnema/tradebot/internal/application/supervisor"
	"github.com/bnema/tradebot/internal/domain"
	"github.com/bnema/tradebot/internal/ports"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envPrefix = "TB"

	keyLogLevel      = "log.level"
	keyLogFormat     = "log.format"
	keySchemaURL     = "schema.url"
	keyInventoryURL  = "inventory.url"
	keyTradeURL      = "trade.url"
	keyTradeInterval = "trade.interval"
	keyAPIKey        = "api.key"

	logFormatJSON    = "json"
	logFormatConsole = "console"
)

type app struct {
	config         *viper.Viper
	repo           *tomlrepo.Repository
	secretStore    ports.SecretStore
	registry       *bot.Registry
	statusRenderer func([]supervisor.Status, statusadapter.RenderOptions) (string, error)
	httpClient     *http.Client
	now            func() time.Time
}

func wireApp() (*app, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := viper.New()
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault(keyLogLevel, "info")
	cfg.SetDefault(keyLogFormat, logFormatJSON)
	cfg.SetDefault(keySchemaURL, schema.DefaultURL)
	cfg.SetDefault(keyInventoryURL, webapi.DefaultURL)
	cfg.SetDefault(keyTradeURL, tradeweb.DefaultBaseURL)
	cfg.SetDefault(keyTradeInterval, 200*time.Millisecond)

	repo, err := tomlrepo.NewRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire identity repository: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	return &app{
		config:         cfg,
		repo:           repo,
		secretStore:    filestore.NewStore(filepath.Join(homeDir, ".tradebot", "secrets")),
		registry:       bot.DefaultRegistry(),
		statusRenderer: statusadapter.Render,
		httpClient:     &http.Client{Timeout: 60 * time.Second},
		now:            time.Now,
	}, nil
}

// newLogger reads the log keys at call time so persistent flags bound
// after wiring still apply.
func (a *app) newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(a.config.GetString(keyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("parse log level: %w", err)
	}

	var zcfg zap.Config
	switch format := a.config.GetString(keyLogFormat); format {
	case logFormatJSON:
		zcfg = zap.NewProductionConfig()
	case logFormatConsole:
		zcfg = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// apiKey prefers TB_API_KEY and falls back to the secret named by the
// settings file.
func (a *app) apiKey(ctx context.Context, settings domain.Settings) (string, error) {
	if key := strings.TrimSpace(a.config.GetString(keyAPIKey)); key != "" {
		return key, nil
	}
	if settings.APIKeyRef == "" {
		return "", errors.New("api key is not configured: set TB_API_KEY or api_key_ref")
	}

	key, err := a.secretStore.Get(ctx, settings.APIKeyRef)
	if err != nil {
		return "", fmt.Errorf("resolve api key %q: %w", settings.APIKeyRef, err)
	}
	return key, nil
}

func (a *app) catalog(ctx context.Context, logger *zap.Logger) (*schema.Client, domain.Settings, string, error) {
	settings, err := a.repo.Settings(ctx)
	if err != nil {
		return nil, domain.Settings{}, "", err
	}
	key, err := a.apiKey(ctx, settings)
	if err != nil {
		return nil, domain.Settings{}, "", err
	}

	client, err := schema.New(schema.Options{
		URL:        a.config.GetString(keySchemaURL),
		APIKey:     key,
		HTTPClient: a.httpClient,
		Logger:     logger,
	})
	if err != nil {
		return nil, domain.Settings{}, "", err
	}
	return client, settings, key, nil
}
