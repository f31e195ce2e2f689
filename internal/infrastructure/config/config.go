package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

// Config is the process-wide configuration, read once at startup and passed
// into components; nothing reads the environment after Load.
type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// FrontendEndpoint is where the OAuth callback redirects with the
	// issued token; BackendEndpoint is the public base of this service,
	// used to build the OAuth redirect URL.
	FrontendEndpoint string `env:"FRONTEND_ENDPOINT, default=http://localhost:3000"`
	BackendEndpoint  string `env:"BACKEND_ENDPOINT,  default=http://localhost:8080"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Google GoogleConfig
	Media  MediaConfig
	Email  EmailConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=promosynch"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type GoogleConfig struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
}

type MediaConfig struct {
	Endpoint      string `env:"MINIO_ENDPOINT,   default=localhost:9000"`
	AccessKey     string `env:"MINIO_ACCESS_KEY"`
	SecretKey     string `env:"MINIO_SECRET_KEY"`
	UseSSL        bool   `env:"MINIO_USE_SSL,    default=false"`
	Bucket        string `env:"MINIO_BUCKET,     default=promosynch"`
	PublicBaseURL string `env:"MEDIA_PUBLIC_URL, default=http://localhost:9000"`
}

type EmailConfig struct {
	BrevoAPIKey string `env:"BREVO_API_KEY"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
