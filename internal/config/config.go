package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	Cache     CacheConfig
	Log       LogConfig
	Narrative NarrativeConfig
	Worker    WorkerConfig
	Catalog   CatalogConfig
}

type ServerConfig struct {
	Host        string
	Port        int
	Env         string
	CORSOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	NarrativeCacheTTL time.Duration
	JobTTL            time.Duration
}

type LogConfig struct {
	Level string
}

// NarrativeConfig - параметры OpenAI-совместимого API
type NarrativeConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	Temperature    float64
	MaxTokens      int
	RequestTimeout time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
	MaxRetries        int
	// ClaimMinIdle - через сколько неподтверждённое сообщение забирается другим consumer'ом
	ClaimMinIdle      time.Duration
}

type CatalogConfig struct {
	Path string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// .env не обязателен: переменные окружения читаются и без него
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),

			CORSOrigins: splitList(viper.GetString("API_CORS_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			NarrativeCacheTTL: time.Duration(viper.GetInt("NARRATIVE_CACHE_TTL")) * time.Second,
			JobTTL:            time.Duration(viper.GetInt("NARRATIVE_JOB_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Narrative: NarrativeConfig{
			BaseURL:        viper.GetString("LLM_BASE_URL"),
			APIKey:         viper.GetString("LLM_API_KEY"),
			Model:          viper.GetString("LLM_MODEL"),
			Temperature:    viper.GetFloat64("LLM_TEMPERATURE"),
			MaxTokens:      viper.GetInt("LLM_MAX_TOKENS"),
			RequestTimeout: time.Duration(viper.GetInt("LLM_REQUEST_TIMEOUT")) * time.Second,
			RateLimitRPS:   viper.GetFloat64("LLM_RATE_LIMIT_RPS"),
			RateLimitBurst: viper.GetInt("LLM_RATE_LIMIT_BURST"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
			MaxRetries:        viper.GetInt("WORKER_MAX_RETRIES"),
			ClaimMinIdle:      time.Duration(viper.GetInt("WORKER_CLAIM_MIN_IDLE")) * time.Second,
		},
		Catalog: CatalogConfig{
			Path: viper.GetString("CATALOG_PATH"),
		},
	}

	cfg.applyDefaults()

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Env == "" {
		c.Server.Env = "development"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Cache.NarrativeCacheTTL == 0 {
		c.Cache.NarrativeCacheTTL = time.Hour
	}
	if c.Cache.JobTTL == 0 {
		c.Cache.JobTTL = 24 * time.Hour
	}
	if c.Narrative.BaseURL == "" {
		c.Narrative.BaseURL = "https://api.openai.com/v1"
	}
	if c.Narrative.Model == "" {
		c.Narrative.Model = "gpt-3.5-turbo"
	}
	if c.Narrative.Temperature == 0 {
		c.Narrative.Temperature = 0.5
	}
	if c.Narrative.MaxTokens == 0 {
		c.Narrative.MaxTokens = 500
	}
	if c.Narrative.RequestTimeout == 0 {
		c.Narrative.RequestTimeout = 30 * time.Second
	}
	if c.Narrative.RateLimitRPS == 0 {
		c.Narrative.RateLimitRPS = 1
	}
	if c.Narrative.RateLimitBurst == 0 {
		c.Narrative.RateLimitBurst = 3
	}
	if c.Worker.ConsumerGroup == "" {
		c.Worker.ConsumerGroup = "narrative-workers"
	}
	if c.Worker.StreamReadTimeout == 0 {
		c.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}
	if c.Worker.MaxRetries == 0 {
		c.Worker.MaxRetries = 3
	}
	if c.Worker.ClaimMinIdle == 0 {
		c.Worker.ClaimMinIdle = 300 * time.Second
	}
}

// splitList разбирает значение вида "a, b,c"
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
