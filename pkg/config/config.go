package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          string      `yaml:"port"`
	Env           string      `yaml:"env"`
	LogLevel      string      `yaml:"log_level"`
	PublicBaseURL string      `yaml:"public_base_url"`
	NATSURL       string      `yaml:"nats_url"`
	Store         StoreConfig `yaml:"store"`
	Media         MediaConfig `yaml:"media"`
	AI            AIConfig    `yaml:"ai"`
}

// StoreConfig selects the key-value backend: memory, mongo, postgres or redis.
type StoreConfig struct {
	Driver          string `yaml:"driver"`
	KeyPrefix       string `yaml:"key_prefix"`
	PostgresConnStr string `yaml:"-"`
	MongoURI        string `yaml:"-"`
	MongoDatabase   string `yaml:"mongo_database"`
	RedisURL        string `yaml:"redis_url"`
	RedisPassword   string `yaml:"-"`
	RedisDB         int    `yaml:"redis_db"`
}

// MediaConfig selects the upload backend: s3, firebase or local.
type MediaConfig struct {
	Driver                  string `yaml:"driver"`
	S3Bucket                string `yaml:"s3_bucket"`
	S3Region                string `yaml:"s3_region"`
	S3Endpoint              string `yaml:"s3_endpoint"`
	S3AccessKey             string `yaml:"-"`
	S3SecretKey             string `yaml:"-"`
	S3PublicBaseURL         string `yaml:"s3_public_base_url"`
	FirebaseCredentialsPath string `yaml:"firebase_credentials_path"`
	FirebaseStorageBucket   string `yaml:"firebase_storage_bucket"`
}

type AIConfig struct {
	APIKey       string        `yaml:"-"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads settings from the environment (and .env). When CONFIG_FILE names a YAML
// file, its values become the defaults that environment variables override.
// Secrets are only read from the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, assuming environment variables are set.")
	}

	cfg := &Config{
		Port:          "8080",
		Env:           "development",
		LogLevel:      "info",
		PublicBaseURL: "http://localhost:8080",
		Store: StoreConfig{
			Driver:        "memory",
			MongoDatabase: "orion",
			RedisURL:      "localhost:6379",
		},
		Media: MediaConfig{Driver: "local", S3Region: "us-east-1"},
		AI:    AIConfig{PollInterval: 5 * time.Second},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.Env = getEnv("ENV", cfg.Env)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.PublicBaseURL = getEnv("PUBLIC_BASE_URL", cfg.PublicBaseURL)
	cfg.NATSURL = getEnv("NATS_URL", cfg.NATSURL)

	cfg.Store.Driver = getEnv("STORE_DRIVER", cfg.Store.Driver)
	cfg.Store.KeyPrefix = getEnv("STORE_KEY_PREFIX", cfg.Store.KeyPrefix)
	cfg.Store.PostgresConnStr = getEnv("POSTGRES_CONN_STR", "")
	cfg.Store.MongoURI = getEnv("MONGO_URI", "")
	cfg.Store.MongoDatabase = getEnv("MONGO_DATABASE", cfg.Store.MongoDatabase)
	cfg.Store.RedisURL = getEnv("REDIS_URL", cfg.Store.RedisURL)
	cfg.Store.RedisPassword = getEnv("REDIS_PASSWORD", "")

	cfg.Media.Driver = getEnv("MEDIA_DRIVER", cfg.Media.Driver)
	cfg.Media.S3Bucket = getEnv("S3_BUCKET", cfg.Media.S3Bucket)
	cfg.Media.S3Region = getEnv("S3_REGION", cfg.Media.S3Region)
	cfg.Media.S3Endpoint = getEnv("S3_ENDPOINT", cfg.Media.S3Endpoint)
	cfg.Media.S3AccessKey = getEnv("S3_ACCESS_KEY", "")
	cfg.Media.S3SecretKey = getEnv("S3_SECRET_KEY", "")
	cfg.Media.S3PublicBaseURL = getEnv("S3_PUBLIC_BASE_URL", cfg.Media.S3PublicBaseURL)
	cfg.Media.FirebaseCredentialsPath = getEnv("FIREBASE_CREDENTIALS_PATH", cfg.Media.FirebaseCredentialsPath)
	cfg.Media.FirebaseStorageBucket = getEnv("FIREBASE_STORAGE_BUCKET", cfg.Media.FirebaseStorageBucket)

	cfg.AI.APIKey = getEnv("GEMINI_API_KEY", getEnv("API_KEY", ""))

	var err error
	if cfg.Store.RedisDB, err = getEnvInt("REDIS_DB", cfg.Store.RedisDB); err != nil {
		return nil, err
	}
	if cfg.AI.PollInterval, err = getEnvDuration("AI_POLL_INTERVAL", cfg.AI.PollInterval); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration such as 5s: %w", key, err)
	}
	return d, nil
}
