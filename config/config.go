package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppConfigSection struct {
	Name           string
	Port           string
	Mode           string
	TrustedProxies []string
	CorsOrigins    []string
}

type DatabaseConfig struct {
	Driver          string
	Dsn             string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
	LogLevel        string
}

type RedisConfig struct {
	Addr     string
	DB       int
	Password string
	RankKey  string
}

type RabbitMQConfig struct {
	Url   string
	Queue string
}

type VoterConfig struct {
	Salt string
}

type ExtractionConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type Config struct {
	App        AppConfigSection
	Database   DatabaseConfig
	Redis      RedisConfig
	RabbitMQ   RabbitMQConfig
	Voter      VoterConfig
	Extraction ExtractionConfig
}

var AppConfig *Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "journify")
	v.SetDefault("app.port", "5000")
	v.SetDefault("app.mode", "release")
	v.SetDefault("app.trustedProxies", []string{})
	v.SetDefault("app.corsOrigins", []string{"*"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "journify.db")
	v.SetDefault("database.maxIdleConns", 10)
	v.SetDefault("database.maxOpenConns", 40)
	v.SetDefault("database.connMaxLifetime", 30*time.Minute)
	v.SetDefault("database.logLevel", "warn")

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.rankKey", "rank:entry:likes")

	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.queue", defaultLikeQueue)

	v.SetDefault("voter.salt", "")

	v.SetDefault("extraction.apiKey", "")
	v.SetDefault("extraction.model", "gpt-3.5-turbo")
	v.SetDefault("extraction.baseURL", "https://api.openai.com/v1")
	v.SetDefault("extraction.timeout", 30*time.Second)
}

// LoadConfig reads the YAML config at path, or config/config.yml when path
// is empty. A missing default file is not an error; defaults and
// JOURNIFY_* environment variables still apply.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("journify")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if cfg.Extraction.APIKey == "" {
		cfg.Extraction.APIKey = getEnvOrDefault("OPENAI_API_KEY", "")
	}
	return cfg, nil
}

// InitConfig loads the configuration and opens every backend into the
// global handles. Any failure is fatal.
func InitConfig(path string) {
	cfg, err := LoadConfig(path)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	AppConfig = cfg

	initDB()
	initRedis()
	initRabbit()
}

// getEnvOrDefault returns the environment value for key, or defaultValue when unset.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
