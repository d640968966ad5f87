package boot

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Env     string `env:"ENV,default=dev"`
	DataDir string `env:"DATA_DIR,default=./data"`
	Server  struct {
		UserAddr        string `env:"USER_SERVER_ADDR,default=:8080"`
		BookAddr        string `env:"BOOK_SERVER_ADDR,default=:8082"`
		UserMetricsAddr string `env:"USER_METRICS_ADDR,default=:9080"`
		BookMetricsAddr string `env:"BOOK_METRICS_ADDR,default=:9082"`
		Origins         string `env:"ALLOWED_ORIGINS,default=*"`
	}
	Sessions struct {
		Backend       string        `env:"SESSION_BACKEND,default=buntdb"`
		TTL           time.Duration `env:"SESSION_TTL,default=24h"`
		RedisAddr     string        `env:"REDIS_ADDR,default=localhost:6379"`
		RedisPassword string        `env:"REDIS_PASSWORD"`
	}
	Auth struct {
		TOTPIssuer       string `env:"TOTP_ISSUER,default=bookswap"`
		TOTPSkew         uint   `env:"TOTP_SKEW,default=1"`
		BcryptCost       int    `env:"BCRYPT_COST,default=10"`
		GeohashPrecision uint   `env:"GEOHASH_PRECISION,default=7"`
	}
	Catalog struct {
		BaseURL string `env:"CATALOG_BASE_URL,default=https://www.googleapis.com"`
	}
}

func Load() (*Config, error) {
	config := &Config{}
	if err := envconfig.Process(context.Background(), config); err != nil {
		return nil, fmt.Errorf("parsing env vars: %w", err)
	}
	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "prod"
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "dev"
}
