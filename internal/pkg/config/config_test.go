package config_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/stock-ledger/internal/pkg/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")

		cfg, err := config.Load(discardLogger())
		require.NoError(t, err)

		assert.Equal(t, "stock-ledger", cfg.App.Name)
		assert.Equal(t, "stock_ledger", cfg.Database.Name)
		assert.Equal(t, 5, cfg.Ledger.LowStockThreshold)
		assert.Equal(t, time.Duration(0), cfg.Ledger.SupplierCacheTTL)
		assert.Equal(t, "local", cfg.Export.Storage)
		assert.Equal(t, map[string]int{"critical": 6, "default": 3, "low": 1}, cfg.Asynq.Queues)
		assert.Equal(t, "localhost:6379", cfg.Asynq.RedisAddr)
	})

	t.Run("environment_overrides", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		t.Setenv("DB_HOST", "db.internal")
		t.Setenv("DB_MAX_CONNECTIONS", "40")
		t.Setenv("LEDGER_LOW_STOCK_THRESHOLD", "0")
		t.Setenv("LEDGER_PRODUCT_CACHE_TTL", "30s")
		t.Setenv("AUTH_ENABLED", "true")
		t.Setenv("NOTIFY_TO", "ops@example.com, buyer@example.com")

		cfg, err := config.Load(discardLogger())
		require.NoError(t, err)

		assert.Equal(t, "db.internal", cfg.Database.Host)
		assert.Equal(t, int32(40), cfg.Database.MaxConnections)
		assert.Equal(t, 0, cfg.Ledger.LowStockThreshold)
		assert.Equal(t, 30*time.Second, cfg.Ledger.ProductCacheTTL)
		assert.True(t, cfg.Security.AuthEnabled)
		assert.Equal(t, []string{"ops@example.com", "buyer@example.com"}, cfg.Notifications.To)
	})

	t.Run("invalid_export_storage", func(t *testing.T) {
		t.Setenv("APP_ENV", "test")
		t.Setenv("EXPORT_STORAGE", "ftp")

		_, err := config.Load(discardLogger())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "export storage")
	})
}

func validConfig() *config.Config {
	return &config.Config{
		App:      config.AppConfig{Name: "stock-ledger", Environment: "test"},
		Database: config.DatabaseConfig{Host: "localhost", Port: "5432", User: "ledger", Name: "stock_ledger", MaxConnections: 10, MinConnections: 2},
		Redis:    config.RedisConfig{Host: "localhost", PoolSize: 5},
		FileProcessing: config.FileProcessingConfig{
			PDFMaxSizeMB: 20, ExcelMaxSizeMB: 20, TempDir: "/tmp/stock-ledger",
			TempFileMaxAge: 24 * time.Hour, CleanupInterval: time.Hour,
		},
		Ledger:   config.LedgerConfig{DefaultPageSize: 50, MaxPageSize: 500, LowStockThreshold: 5},
		Export:   config.ExportConfig{Storage: "local", LocalDir: "./exports", MaxRows: 1000},
		Security: config.SecurityConfig{RateLimitRequests: 100, RateLimitDuration: time.Minute, JWTIssuer: "stock-ledger"},
		Server:   config.ServerConfig{Port: "8080"},
	}
}

func TestBasicValidator(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr error
		errText string
	}{
		{name: "valid", mutate: func(*config.Config) {}},
		{
			name:    "missing_db_host",
			mutate:  func(c *config.Config) { c.Database.Host = "" },
			wantErr: config.ErrMissingRequiredConfig,
		},
		{
			name:    "placeholder_db_name",
			mutate:  func(c *config.Config) { c.Database.Name = "MISSING_DB_NAME" },
			wantErr: config.ErrMissingRequiredConfig,
		},
		{
			name:    "pool_bounds",
			mutate:  func(c *config.Config) { c.Database.MinConnections = 20 },
			errText: "max_connections",
		},
		{
			name:    "page_sizes",
			mutate:  func(c *config.Config) { c.Ledger.MaxPageSize = 10 },
			errText: "page sizes",
		},
		{
			name:    "s3_without_bucket",
			mutate:  func(c *config.Config) { c.Export.Storage = "s3" },
			wantErr: config.ErrMissingRequiredConfig,
		},
		{
			name:   "s3_with_bucket",
			mutate: func(c *config.Config) { c.Export.Storage = "s3"; c.AWS.S3Bucket = "ledger-exports" },
		},
		{
			name:    "export_row_cap",
			mutate:  func(c *config.Config) { c.Export.MaxRows = 0 },
			errText: "max_rows",
		},
		{
			name:   "zero_low_stock_threshold",
			mutate: func(c *config.Config) { c.Ledger.LowStockThreshold = 0 },
		},
		{
			name:    "negative_cache_ttl",
			mutate:  func(c *config.Config) { c.Ledger.SupplierCacheTTL = -time.Second },
			errText: "cache ttls",
		},
		{
			name:    "missing_temp_dir",
			mutate:  func(c *config.Config) { c.FileProcessing.TempDir = "" },
			wantErr: config.ErrMissingRequiredConfig,
		},
		{
			name:    "cleanup_without_max_age",
			mutate:  func(c *config.Config) { c.FileProcessing.TempFileMaxAge = 0 },
			errText: "temp_file_max_age",
		},
		{
			name: "smtp_without_recipients",
			mutate: func(c *config.Config) {
				c.Notifications.SMTPHost = "smtp.example.com"
				c.Notifications.From = "ledger@example.com"
			},
			wantErr: config.ErrMissingRequiredConfig,
		},
		{
			name:    "rate_limit_without_window",
			mutate:  func(c *config.Config) { c.Security.RateLimitDuration = 0 },
			errText: "rate_limit_duration",
		},
		{
			name:    "auth_without_secret",
			mutate:  func(c *config.Config) { c.Security.AuthEnabled = true; c.Security.JWTExpiration = time.Hour },
			wantErr: config.ErrMissingRequiredConfig,
		},
		{
			name:    "zero_queue_priority",
			mutate:  func(c *config.Config) { c.Asynq.Queues = map[string]int{"default": 0} },
			errText: "priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := (&config.BasicValidator{}).Validate(cfg)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.errText != "":
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errText)
			default:
				assert.NoError(t, err)
			}
		})
	}
}

func TestProductionValidation(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = "production"
	cfg.Database.SSLMode = "require"
	cfg.Security.SecureHeaders = true
	cfg.Security.AuthEnabled = true
	cfg.Security.JWTExpiration = time.Hour
	cfg.Security.AllowedOrigins = []string{"https://ledger.example.com"}
	cfg.Security.JWTSecret = "0123456789abcdef0123456789abcdef"

	require.NoError(t, cfg.Validate())

	t.Run("default_secret_rejected", func(t *testing.T) {
		c := *cfg
		c.Security.JWTSecret = "development-secret-change-in-production"
		assert.Error(t, c.Validate())
	})

	t.Run("wildcard_origin_rejected", func(t *testing.T) {
		c := *cfg
		c.Security.AllowedOrigins = []string{"*"}
		assert.Error(t, c.Validate())
	})

	t.Run("auth_required", func(t *testing.T) {
		c := *cfg
		c.Security.AuthEnabled = false
		assert.Error(t, c.Validate())
	})

	t.Run("short_secret_rejected", func(t *testing.T) {
		c := *cfg
		c.Security.JWTSecret = "too-short"
		assert.ErrorContains(t, c.Validate(), "at least 32")
	})

	t.Run("ssl_required", func(t *testing.T) {
		c := *cfg
		c.Database.SSLMode = "disable"
		assert.ErrorContains(t, c.Validate(), "SSL")
	})

	t.Run("placeholder_smtp_password", func(t *testing.T) {
		c := *cfg
		c.Notifications.SMTPPassword = "MISSING_SMTP_PASSWORD"
		assert.ErrorIs(t, c.Validate(), config.ErrMissingRequiredConfig)
	})

	t.Run("tls_needs_files", func(t *testing.T) {
		c := *cfg
		c.Server.TLSEnabled = true
		assert.ErrorIs(t, c.Validate(), config.ErrMissingRequiredConfig)
	})

	t.Run("wildcard_allowed_outside_production", func(t *testing.T) {
		c := *cfg
		c.App.Environment = "staging"
		c.Security.AllowedOrigins = []string{"*"}
		assert.NoError(t, c.Validate())
	})
}

type fakeSecrets struct {
	values map[string]string
	err    error
}

func (f *fakeSecrets) GetSecret(ctx context.Context, key string) (string, error) {
	return f.values[key], f.err
}

func (f *fakeSecrets) GetSecrets(ctx context.Context, keys []string) (map[string]string, error) {
	return f.values, f.err
}

func (f *fakeSecrets) RefreshSecrets(ctx context.Context) error { return nil }

func TestApplySecrets(t *testing.T) {
	t.Run("overlays_present_keys", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.Password = "from-env"
		cfg.Security.JWTSecret = "from-env"

		err := config.ApplySecrets(context.Background(), cfg, &fakeSecrets{values: map[string]string{
			config.SecretJWTSecret:     "from-secrets",
			config.SecretRedisPassword: "redis-pass",
		}})
		require.NoError(t, err)

		assert.Equal(t, "from-env", cfg.Database.Password)
		assert.Equal(t, "from-secrets", cfg.Security.JWTSecret)
		assert.Equal(t, "redis-pass", cfg.Redis.Password)
		assert.Equal(t, "redis-pass", cfg.Asynq.RedisPassword)
	})

	t.Run("provider_error", func(t *testing.T) {
		err := config.ApplySecrets(context.Background(), validConfig(), &fakeSecrets{err: errors.New("denied")})
		assert.EqualError(t, err, "denied")
	})
}

func TestEnvSecretsManager(t *testing.T) {
	t.Setenv("JWT_SECRET", "env-secret")
	sm := config.NewEnvSecretsManager()

	val, err := sm.GetSecret(context.Background(), "JWT_SECRET")
	require.NoError(t, err)
	assert.Equal(t, "env-secret", val)

	_, err = sm.GetSecret(context.Background(), "NOT_SET_ANYWHERE")
	assert.Error(t, err)
}
