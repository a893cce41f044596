// internal/pkg/config/validators.go
package config

import (
	"fmt"
	"reflect"
	"strings"
)

const (
	minJWTSecretLength = 32
	defaultJWTSecret   = "development-secret-change-in-production"
	placeholderPrefix  = "MISSING_"
)

// check inspects one section of the configuration
type check func(cfg *Config) error

func runChecks(cfg *Config, checks ...check) error {
	for _, c := range checks {
		if err := c(cfg); err != nil {
			return err
		}
	}
	return nil
}

// BasicValidator checks that every process can start with cfg
type BasicValidator struct{}

// Validate runs the checks that apply in every environment
func (v *BasicValidator) Validate(cfg *Config) error {
	return runChecks(cfg,
		func(c *Config) error { return validateRequiredFields(c) },
		checkPools,
		checkLedger,
		checkExport,
		checkImports,
		checkNotifications,
		checkRateLimit,
		checkAuth,
	)
}

func checkPools(cfg *Config) error {
	if cfg.Database.MaxConnections <= 0 || cfg.Database.MaxConnections < cfg.Database.MinConnections {
		return fmt.Errorf("database: max_connections must be positive and >= min_connections")
	}
	if cfg.Redis.PoolSize <= 0 {
		return fmt.Errorf("redis: pool_size must be positive")
	}
	if cfg.Asynq.Concurrency < 0 {
		return fmt.Errorf("asynq: concurrency cannot be negative")
	}
	for name, prio := range cfg.Asynq.Queues {
		if prio <= 0 {
			return fmt.Errorf("asynq: queue %q needs a positive priority", name)
		}
	}
	return nil
}

// Movements are ledgered even when the low stock alert is off, so a zero
// threshold is allowed.
func checkLedger(cfg *Config) error {
	l := cfg.Ledger
	if l.DefaultPageSize <= 0 || l.MaxPageSize < l.DefaultPageSize {
		return fmt.Errorf("ledger: page sizes must satisfy 0 < default <= max, got %d and %d", l.DefaultPageSize, l.MaxPageSize)
	}
	if l.LowStockThreshold < 0 {
		return fmt.Errorf("ledger: low_stock_threshold cannot be negative")
	}
	if l.ProductCacheTTL < 0 || l.SupplierCacheTTL < 0 {
		return fmt.Errorf("ledger: cache ttls cannot be negative")
	}
	return nil
}

func checkExport(cfg *Config) error {
	e := cfg.Export
	switch e.Storage {
	case "s3":
		if cfg.AWS.S3Bucket == "" {
			return fmt.Errorf("%w: AWS S3 bucket for export storage", ErrMissingRequiredConfig)
		}
	case "local":
		if e.LocalDir == "" {
			return fmt.Errorf("%w: export local directory", ErrMissingRequiredConfig)
		}
	default:
		return fmt.Errorf("export storage must be local or s3, got %q", e.Storage)
	}
	if e.MaxRows <= 0 {
		return fmt.Errorf("export: max_rows must be positive")
	}
	return nil
}

func checkImports(cfg *Config) error {
	f := cfg.FileProcessing
	if f.PDFMaxSizeMB <= 0 || f.ExcelMaxSizeMB <= 0 {
		return fmt.Errorf("imports: upload size limits must be positive")
	}
	if f.TempDir == "" {
		return fmt.Errorf("%w: import temp directory", ErrMissingRequiredConfig)
	}
	if f.CleanupInterval > 0 && f.TempFileMaxAge <= 0 {
		return fmt.Errorf("imports: temp_file_max_age must be positive when cleanup is scheduled")
	}
	return nil
}

// An empty SMTP host turns mail off; alerts are then only logged
func checkNotifications(cfg *Config) error {
	n := cfg.Notifications
	if n.SMTPHost == "" {
		return nil
	}
	if n.From == "" || len(n.To) == 0 {
		return fmt.Errorf("%w: notification sender and recipients for SMTP host %s", ErrMissingRequiredConfig, n.SMTPHost)
	}
	return nil
}

func checkRateLimit(cfg *Config) error {
	if cfg.Security.RateLimitRequests <= 0 || cfg.Security.RateLimitDuration <= 0 {
		return fmt.Errorf("rate limit needs positive rate_limit_requests and rate_limit_duration")
	}
	return nil
}

func checkAuth(cfg *Config) error {
	s := cfg.Security
	if !s.AuthEnabled {
		return nil
	}
	if s.JWTSecret == "" {
		return fmt.Errorf("%w: JWT secret while AUTH_ENABLED is set", ErrMissingRequiredConfig)
	}
	if s.JWTExpiration <= 0 {
		return fmt.Errorf("JWT expiration must be positive")
	}
	return nil
}

// ProductionValidator refuses development shortcuts in production
type ProductionValidator struct{}

// Validate runs the production-only checks
func (v *ProductionValidator) Validate(cfg *Config) error {
	return runChecks(cfg, checkPlaceholders, checkTransport, checkAPISurface)
}

func checkPlaceholders(cfg *Config) error {
	secrets := map[string]string{
		"database password": cfg.Database.Password,
		"JWT secret":        cfg.Security.JWTSecret,
		"SMTP password":     cfg.Notifications.SMTPPassword,
	}
	for name, value := range secrets {
		if strings.HasPrefix(value, placeholderPrefix) {
			return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, name)
		}
	}
	return nil
}

func checkTransport(cfg *Config) error {
	if cfg.Database.SSLMode == "" || cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production database connections must use SSL")
	}
	if cfg.Server.TLSEnabled && (cfg.Server.TLSCertFile == "" || cfg.Server.TLSKeyFile == "") {
		return fmt.Errorf("%w: TLS cert and key files", ErrMissingRequiredConfig)
	}
	return nil
}

// The ledger API mutates stock, so production never serves it anonymously
func checkAPISurface(cfg *Config) error {
	if !cfg.Security.AuthEnabled {
		return fmt.Errorf("production requires AUTH_ENABLED")
	}
	if !cfg.Security.SecureHeaders {
		return fmt.Errorf("production requires SECURE_HEADERS")
	}
	if len(cfg.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("%w: ALLOWED_ORIGINS", ErrMissingRequiredConfig)
	}
	return nil
}

// SecurityValidator checks token and origin settings
type SecurityValidator struct{}

// Validate rejects weak JWT settings and wildcard origins in production
func (v *SecurityValidator) Validate(cfg *Config) error {
	s := cfg.Security
	if s.AuthEnabled {
		if s.JWTSecret == defaultJWTSecret {
			return fmt.Errorf("the development JWT secret cannot sign production tokens")
		}
		if len(s.JWTSecret) < minJWTSecretLength {
			return fmt.Errorf("JWT secret must be at least %d characters", minJWTSecretLength)
		}
		if s.JWTIssuer == "" {
			return fmt.Errorf("%w: JWT issuer", ErrMissingRequiredConfig)
		}
	}

	if cfg.IsProduction() {
		for _, origin := range s.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf("wildcard origin (*) not allowed in production")
			}
		}
	}
	return nil
}

// validateRequiredFields walks cfg and fails on the first empty field
// tagged required:"true"
func validateRequiredFields(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	return validateStruct(v, "")
}

func validateStruct(v reflect.Value, prefix string) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field, meta := v.Field(i), t.Field(i)
		path := meta.Name
		if prefix != "" {
			path = prefix + "." + path
		}

		if meta.Tag.Get("required") == "true" && isUnset(field) {
			return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, path)
		}
		if field.Kind() == reflect.Struct {
			if err := validateStruct(field, path); err != nil {
				return err
			}
		}
	}
	return nil
}

// isUnset treats placeholder strings as missing
func isUnset(v reflect.Value) bool {
	if v.Kind() == reflect.String {
		return v.String() == "" || strings.HasPrefix(v.String(), placeholderPrefix)
	}
	return v.IsZero()
}
