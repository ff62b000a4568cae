package config

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET, required"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// Comma-separated list of allowed CORS origins. Empty in development
	// means allow everything.
	AllowedOrigins string `env:"ALLOWED_ORIGINS"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Google GoogleConfig
	Upload UploadConfig
}

type MongoConfig struct {
	URI             string `env:"MONGODB_URI, default=mongodb://localhost:27017"`
	Database        string `env:"MONGO_DB,    default=social_dashboard"`
	UsersCollection string `env:"DB_COLLECTION_USERS, default=Users"`
	PostsCollection string `env:"DB_COLLECTION_POSTS, default=Posts"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type GoogleConfig struct {
	ClientID string `env:"GOOGLE_CLIENT_ID"`
}

type UploadConfig struct {
	// Base endpoint of the image host, e.g.
	// https://api.cloudinary.com/v1_1/<cloud>/image/upload
	Endpoint string `env:"UPLOAD_ENDPOINT"`
	Preset   string `env:"UPLOAD_PRESET"`
}

// Load reads configuration from environment variables using go-envconfig.
// Secret values stay out of the log on failure; envconfig reports the
// variable name, not its content.
func Load(ctx context.Context, log zerolog.Logger) *Config {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	return &cfg
}

// CORSOrigins returns the configured origins, trimmed, empty entries dropped.
func (c *Config) CORSOrigins() []string {
	if strings.TrimSpace(c.AllowedOrigins) == "" {
		return nil
	}
	parts := strings.Split(c.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
