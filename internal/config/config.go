package config

import (
	"os"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// ConfigFileEnv names the variable that points at an optional YAML config file.
const ConfigFileEnv = "CONFIG_FILE"

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

// envKeys maps the supported environment variables to config paths.
var envKeys = map[string]string{
	"DATABASE_URL":                "database.url",
	"DB_MAX_OPEN_CONNS":           "database.max_open_conns",
	"DB_MAX_IDLE_CONNS":           "database.max_idle_conns",
	"DB_CONN_MAX_LIFETIME":        "database.conn_max_lifetime",
	"DB_APPLY_SCHEMA":             "database.apply_schema",
	"JWT_SECRET":                  "auth.jwt_secret",
	"PORT":                        "http.port",
	"CORS_ALLOWED_ORIGINS":        "http.cors_allowed_origins",
	"HTTP_SHUTDOWN_TIMEOUT":       "http.shutdown_timeout",
	"LOG_LEVEL":                   "log.level",
	"LOG_PRETTY":                  "log.pretty",
	"OTEL_EXPORTER_OTLP_ENDPOINT": "tracing.endpoint",
	"OTEL_EXPORTER_OTLP_INSECURE": "tracing.insecure",
	"OTEL_SERVICE_NAME":           "tracing.service_name",
	"LOW_STOCK_THRESHOLD":         "inventory.low_stock_threshold",
}

type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	HTTP      HTTPConfig      `koanf:"http"`
	Log       LogConfig       `koanf:"log"`
	Tracing   TracingConfig   `koanf:"tracing"`
	Inventory InventoryConfig `koanf:"inventory"`
}

type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ApplySchema     bool          `koanf:"apply_schema"`
}

type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret"`
}

type HTTPConfig struct {
	Port               int           `koanf:"port"`
	CORSAllowedOrigins []string      `koanf:"cors_allowed_origins"`
	ShutdownTimeout    time.Duration `koanf:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// TracingConfig leaves tracing off while Endpoint is empty.
type TracingConfig struct {
	Endpoint    string `koanf:"endpoint"`
	Insecure    bool   `koanf:"insecure"`
	ServiceName string `koanf:"service_name"`
}

type InventoryConfig struct {
	LowStockThreshold int `koanf:"low_stock_threshold"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			ApplySchema:     true,
		},
		HTTP: HTTPConfig{
			Port:               5000,
			CORSAllowedOrigins: []string{"http://localhost:3000"},
			ShutdownTimeout:    15 * time.Second,
		},
		Log:       LogConfig{Level: "info"},
		Tracing:   TracingConfig{ServiceName: "snack-factory-api", Insecure: true},
		Inventory: InventoryConfig{LowStockThreshold: 10},
	}
}

// Load layers defaults, the YAML file at path (or $CONFIG_FILE) and the environment.
// A missing file is only an error when a path was given explicitly.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = os.Getenv(ConfigFileEnv)
		explicit = path != ""
	}
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, errors.Wrapf(err, "read config file %s failed", path)
			}
		} else if explicit {
			return nil, errors.Wrapf(err, "config file %s", path)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		TransformFunc: func(key, value string) (string, any) {
			path, ok := envKeys[key]
			if !ok || strings.TrimSpace(value) == "" {
				return "", nil
			}
			return path, strings.TrimSpace(value)
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			TagName:          "koanf",
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}); err != nil {
		return nil, errors.Wrap(err, "unmarshal config failed")
	}

	cfg.HTTP.CORSAllowedOrigins = trimAll(cfg.HTTP.CORSAllowedOrigins)
	return cfg, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ValidateDatabase checks what every process that opens the database needs.
func (c *Config) ValidateDatabase() error {
	if strings.TrimSpace(c.Database.URL) == "" {
		return ErrMissingDatabaseURL
	}
	if c.Database.MaxOpenConns < 1 {
		return errors.Errorf("DB_MAX_OPEN_CONNS must be positive, got %d", c.Database.MaxOpenConns)
	}
	return nil
}

// Validate checks everything the API server needs to start.
func (c *Config) Validate() error {
	if err := c.ValidateDatabase(); err != nil {
		return err
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return errors.Errorf("PORT must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Inventory.LowStockThreshold < 0 {
		return errors.Errorf("LOW_STOCK_THRESHOLD must not be negative, got %d", c.Inventory.LowStockThreshold)
	}
	return nil
}
