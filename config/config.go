package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	Mode            string        `yaml:"mode"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver   string `yaml:"driver"`
	DSN      string `yaml:"dsn"`
	LogLevel string `yaml:"log_level"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	Database int    `yaml:"database"`
}

// BackendConfig points at the managed backend: its endpoint serves object
// storage and the public key authorizes uploads.
type BackendConfig struct {
	URL    string `yaml:"url"`
	APIKey string `yaml:"api_key"`
}

type StorageConfig struct {
	Driver        string `yaml:"driver"`
	LocalDir      string `yaml:"local_dir"`
	PublicBaseURL string `yaml:"public_base_url"`
}

type ImagesConfig struct {
	Domains []string `yaml:"domains"`
}

type AuthConfig struct {
	PrivateKeyPath string        `yaml:"private_key_path"`
	PublicKeyPath  string        `yaml:"public_key_path"`
	SessionTTL     time.Duration `yaml:"session_ttl"`
}

type CheckoutConfig struct {
	QuoteTTL time.Duration `yaml:"quote_ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// SlowRequest is the latency above which a request is logged as a warning.
	SlowRequest time.Duration `yaml:"slow_request"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Backend  BackendConfig  `yaml:"backend"`
	Storage  StorageConfig  `yaml:"storage"`
	Images   ImagesConfig   `yaml:"images"`
	Auth     AuthConfig     `yaml:"auth"`
	Checkout CheckoutConfig `yaml:"checkout"`
	Log      LogConfig      `yaml:"log"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":3000",
			Mode:            "release",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			AllowedOrigins:  []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:   "postgres",
			LogLevel: "warn",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Storage: StorageConfig{
			Driver:        "local",
			LocalDir:      "./uploads",
			PublicBaseURL: "http://localhost:3000/uploads",
		},
		Images: ImagesConfig{
			Domains: []string{"images.unsplash.com"},
		},
		Auth: AuthConfig{
			PrivateKeyPath: "jwt/private_key.pem",
			PublicKeyPath:  "jwt/public_key.pem",
			SessionTTL:     24 * time.Hour,
		},
		Checkout: CheckoutConfig{
			QuoteTTL: 30 * time.Minute,
		},
		Log: LogConfig{
			Level:       "info",
			Format:      "json",
			SlowRequest: time.Second,
		},
	}
}

// LoadConfig reads the yaml file on top of the defaults, then lets the
// environment (and a .env file, when present) override deployment values.
func LoadConfig(filename string) (Config, error) {
	config := Default()

	file, err := os.Open(filename)
	switch {
	case err == nil:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, fmt.Errorf("failed to decode %s: %w", filename, err)
		}
	case os.IsNotExist(err):
	default:
		return config, err
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return config, fmt.Errorf("failed to load .env: %w", err)
	}
	applyEnv(&config)

	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func applyEnv(config *Config) {
	config.Server.Addr = getEnv("SERVER_ADDR", config.Server.Addr)
	config.Server.Mode = getEnv("GIN_MODE", config.Server.Mode)
	config.Server.AllowedOrigins = getEnvAsList("ALLOWED_ORIGINS", config.Server.AllowedOrigins)
	config.Database.Driver = getEnv("DATABASE_DRIVER", config.Database.Driver)
	config.Database.DSN = getEnv("DATABASE_DSN", config.Database.DSN)
	config.Redis.Addr = getEnv("REDIS_ADDR", config.Redis.Addr)
	config.Redis.Password = getEnv("REDIS_PASSWORD", config.Redis.Password)
	config.Redis.Database = getEnvAsInt("REDIS_DB", config.Redis.Database)
	config.Backend.URL = getEnv("BACKEND_URL", config.Backend.URL)
	config.Backend.APIKey = getEnv("BACKEND_API_KEY", config.Backend.APIKey)
	config.Storage.Driver = getEnv("STORAGE_DRIVER", config.Storage.Driver)
	config.Images.Domains = getEnvAsList("IMAGE_DOMAINS", config.Images.Domains)
	config.Log.Level = getEnv("LOG_LEVEL", config.Log.Level)
}

func (c Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}

	switch c.Storage.Driver {
	case "local":
		if c.Storage.LocalDir == "" {
			return fmt.Errorf("storage.local_dir is required for the local driver")
		}
	case "remote":
		if c.Backend.URL == "" || c.Backend.APIKey == "" {
			return fmt.Errorf("backend url and api key are required for the remote storage driver")
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", c.Storage.Driver)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var list []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}
