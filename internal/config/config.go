package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Store drivers
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

// HTTP holds listener and request-shaping settings
type HTTP struct {
	Port        string `yaml:"port"`
	APIPrefix   string `yaml:"api_prefix"`
	CORSOrigins string `yaml:"cors_origins"`
	TrustProxy  bool   `yaml:"trust_proxy"` // honor X-Forwarded-Proto/Host when building file URLs
}

// Auth holds token and password hashing settings
type Auth struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	TokenTTL   time.Duration `yaml:"token_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
}

// Store selects and configures the persistence backend
type Store struct {
	Driver         string `yaml:"driver"`
	DatabaseURL    string `yaml:"database_url"`
	TablePrefix    string `yaml:"table_prefix"`
	SearchLanguage string `yaml:"search_language"`
	MongoURI       string `yaml:"mongo_uri"`
	MongoDatabase  string `yaml:"mongo_database"`
	MongoCAFile    string `yaml:"mongo_ca_file"` // PEM bundle for TLS, e.g. DocumentDB
}

// Uploads configures where image files land and how they are served
type Uploads struct {
	Dir       string `yaml:"dir"`
	URLPrefix string `yaml:"url_prefix"`
	MaxMB     int64  `yaml:"max_mb"`
}

// MaxBytes returns the upload size limit in bytes
func (u Uploads) MaxBytes() int64 {
	return u.MaxMB << 20
}

// Log configures the optional log file
type Log struct {
	Dir      string `yaml:"dir"`
	MaxFiles int    `yaml:"max_files"`
}

type Config struct {
	Environment string  `yaml:"environment"`
	HTTP        HTTP    `yaml:"http"`
	Auth        Auth    `yaml:"auth"`
	Store       Store   `yaml:"store"`
	Uploads     Uploads `yaml:"uploads"`
	Log         Log     `yaml:"log"`
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE, and environment variables, in increasing order of precedence.
func Load() (*Config, error) {
	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if cfg.Store.TablePrefix == "" {
		cfg.Store.TablePrefix = getTablePrefix(cfg.Environment)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Environment: "dev",
		HTTP: HTTP{
			Port:        "5000",
			APIPrefix:   "/api/v1",
			CORSOrigins: "*",
		},
		Auth: Auth{
			TokenTTL:   30 * 24 * time.Hour,
			BcryptCost: 10,
		},
		Store: Store{
			Driver:         DriverMemory,
			SearchLanguage: "english",
			MongoURI:       "mongodb://localhost:27017",
			MongoDatabase:  "imagefolders",
		},
		Uploads: Uploads{
			Dir:       "./uploads",
			URLPrefix: "/uploads",
			MaxMB:     10,
		},
		Log: Log{
			MaxFiles: 10,
		},
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Environment = getEnv("ENVIRONMENT", c.Environment)

	c.HTTP.Port = getEnv("PORT", c.HTTP.Port)
	c.HTTP.APIPrefix = strings.TrimSuffix(getEnv("API_PREFIX", c.HTTP.APIPrefix), "/")
	c.HTTP.CORSOrigins = getEnv("CORS_ORIGINS", c.HTTP.CORSOrigins)
	c.HTTP.TrustProxy = getEnvBool("TRUST_PROXY", c.HTTP.TrustProxy)

	c.Auth.JWTSecret = getEnv("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.TokenTTL = getEnvDuration("JWT_EXPIRE", c.Auth.TokenTTL)
	c.Auth.BcryptCost = getEnvInt("BCRYPT_COST", c.Auth.BcryptCost)

	c.Store.Driver = getEnv("STORE_DRIVER", c.Store.Driver)
	c.Store.DatabaseURL = getEnv("DATABASE_URL", c.Store.DatabaseURL)
	c.Store.TablePrefix = getEnv("TABLE_PREFIX", c.Store.TablePrefix)
	c.Store.SearchLanguage = getEnv("SEARCH_LANGUAGE", c.Store.SearchLanguage)
	c.Store.MongoURI = getEnv("MONGODB_URI", c.Store.MongoURI)
	c.Store.MongoDatabase = getEnv("MONGODB_DATABASE", c.Store.MongoDatabase)
	c.Store.MongoCAFile = getEnv("MONGODB_CA_FILE", c.Store.MongoCAFile)

	c.Uploads.Dir = getEnv("FILE_UPLOAD_PATH", c.Uploads.Dir)
	c.Uploads.URLPrefix = strings.TrimSuffix(getEnv("UPLOADS_URL_PREFIX", c.Uploads.URLPrefix), "/")
	c.Uploads.MaxMB = int64(getEnvInt("MAX_FILE_UPLOAD", int(c.Uploads.MaxMB)))

	c.Log.Dir = getEnv("LOG_DIR", c.Log.Dir)
	c.Log.MaxFiles = getEnvInt("LOG_MAX_FILES", c.Log.MaxFiles)
}

// Validate reports configuration that would make the server unusable
func (c *Config) Validate() error {
	var errs []error

	if c.Auth.JWTSecret == "" {
		if c.Environment == "prod" {
			errs = append(errs, errors.New("JWT_SECRET is required in prod"))
		} else {
			c.Auth.JWTSecret = "dev-secret-change-me"
		}
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("JWT_EXPIRE must be positive"))
	}

	switch c.Store.Driver {
	case DriverMemory, DriverMongo:
	case DriverPostgres:
		if c.Store.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}

	if c.Uploads.MaxMB <= 0 {
		errs = append(errs, errors.New("MAX_FILE_UPLOAD must be positive"))
	}
	if !strings.HasPrefix(c.Uploads.URLPrefix, "/") {
		errs = append(errs, fmt.Errorf("UPLOADS_URL_PREFIX must start with '/': %q", c.Uploads.URLPrefix))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if i, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return i
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return d
	}
	return defaultValue
}
