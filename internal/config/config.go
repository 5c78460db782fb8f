// Package config loads process configuration from the environment (and an
// optional .env file) through viper.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	App   AppConfig
	HTTP  HTTPConfig
	DB    DBConfig
	Redis RedisConfig
	JWT   JWTConfig
	Hash  HashConfig
	Cache CacheConfig
}

type AppConfig struct {
	Env      string // development, production
	LogLevel string
}

type HTTPConfig struct {
	Addr string
}

// DBConfig 若 DatabaseURL 有值則直接使用，否則以個別欄位組出 DSN
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	Name        string
	SSLMode     string
}

// ConnectionString returns DatabaseURL when set, otherwise the DSN built from the parts.
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: "sslmode=" + c.SSLMode,
	}
	return u.String()
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// JWTConfig holds the signing secret. It is read once at startup and never mutated.
type JWTConfig struct {
	Secret string
}

type HashConfig struct {
	Cost    int
	Workers int
}

type CacheConfig struct {
	FoodTTL time.Duration
}

// Load 讀取設定；環境變數優先於 .env 檔
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // 檔案不存在時忽略

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	cfg := &Config{
		App: AppConfig{
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		HTTP: HTTPConfig{
			Addr: v.GetString("HTTP_ADDR"),
		},
		DB: DBConfig{
			DatabaseURL: v.GetString("DATABASE_URL"),
			Host:        v.GetString("DB_HOST"),
			Port:        v.GetInt("DB_PORT"),
			User:        v.GetString("DB_USER"),
			Password:    v.GetString("DB_PASS"),
			Name:        v.GetString("DB_NAME"),
			SSLMode:     v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("SECRET"),
		},
		Hash: HashConfig{
			Cost:    v.GetInt("BCRYPT_COST"),
			Workers: v.GetInt("HASH_WORKERS"),
		},
		Cache: CacheConfig{
			FoodTTL: v.GetDuration("FOOD_CACHE_TTL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", ":3000")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "nadespensa")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("HASH_WORKERS", 2)
	v.SetDefault("FOOD_CACHE_TTL", "5m")
}

func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("config: SECRET is not set")
	}
	if c.DB.DatabaseURL == "" && (c.DB.Host == "" || c.DB.Name == "") {
		return errors.New("config: DATABASE_URL or DB_HOST/DB_NAME must be set")
	}
	if c.Redis.Addr == "" {
		return errors.New("config: REDIS_ADDR is not set")
	}
	if c.Hash.Cost < bcrypt.MinCost || c.Hash.Cost > bcrypt.MaxCost {
		return fmt.Errorf("config: BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	}
	if c.Hash.Workers <= 0 {
		return fmt.Errorf("config: invalid HASH_WORKERS %d", c.Hash.Workers)
	}
	if c.Cache.FoodTTL < 0 {
		return fmt.Errorf("config: invalid FOOD_CACHE_TTL %s", c.Cache.FoodTTL)
	}
	return nil
}
