package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string `env:"ENV" env-default:"local"`
	DatabaseURL string `env:"DATABASE_URL" env-required:"true"`
	HTTP        HTTPConfig
	Secret      string `env:"SECRET" env-required:"true"`
	DisableAuth bool   `env:"DISABLE_AUTH" env-default:"false"`
	ImageStore  ImageStoreConfig
	Search      SearchConfig
}

type HTTPConfig struct {
	Port         int           `env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	// BaseURL используется для ссылок в JSON-LD разметке
	BaseURL string `env:"HTTP_BASE_URL" env-default:"http://localhost:8080"`
}

type ImageStoreConfig struct {
	Enabled   bool   `env:"IMAGE_STORE_ENABLE" env-default:"false"`
	Endpoint  string `env:"IMAGE_STORE_ENDPOINT"`
	Bucket    string `env:"IMAGE_STORE_BUCKET" env-default:"property-images"`
	AccessKey string `env:"IMAGE_STORE_ACCESS_KEY"`
	SecretKey string `env:"IMAGE_STORE_SECRET_KEY"`
	UseSSL    bool   `env:"IMAGE_STORE_USE_SSL" env-default:"false"`
}

// SearchConfig — конфигурация поискового сервиса.
type SearchConfig struct {
	// DefaultLimit — результатов на запрос, если лимит не задан
	DefaultLimit int `env:"SEARCH_DEFAULT_LIMIT" env-default:"10"`
	// SuggestLimit — строк на каждую из двух подсказочных выборок
	SuggestLimit int `env:"SEARCH_SUGGEST_LIMIT" env-default:"5"`
	// MinQueryLength — минимальная длина запроса для подсказок
	MinQueryLength int `env:"SEARCH_MIN_QUERY_LENGTH" env-default:"2"`
}

func MustLoad() *Config {
	// .env is optional; real environments set variables directly
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		panic("cannot read config from environment: " + err.Error())
	}
	return &cfg
}
