package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Session SessionConfig
	Auth    AuthConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	Minio   MinioConfig
}

type SessionConfig struct {
	CookieName string        `env:"SESSION_COOKIE_NAME, default=portal_session"`
	TTL        time.Duration `env:"SESSION_TTL,         default=12h"`
	// Secure marks the session cookie Secure; disable only for local HTTP.
	Secure bool `env:"SESSION_COOKIE_SECURE, default=true"`
}

type AuthConfig struct {
	BcryptCost int `env:"BCRYPT_COST, default=10"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=admin_portal"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type MinioConfig struct {
	Endpoint        string `env:"MINIO_ENDPOINT,   default=localhost:9000"`
	AccessKeyID     string `env:"MINIO_ACCESS_KEY"`
	SecretAccessKey string `env:"MINIO_SECRET_KEY"`
	Bucket          string `env:"MINIO_BUCKET,     default=user-photos"`
	UseSSL          bool   `env:"MINIO_USE_SSL,    default=false"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
