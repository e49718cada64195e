package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Port string
	Env  string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// AssistantConfig holds the upstream LLM settings. Model, temperature and
// token limit are fixed configuration to preserve the response character.
type AssistantConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
	MaxTokens   int
	Timeout     time.Duration
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	assistantTimeout, err := time.ParseDuration(viper.GetString("ASSISTANT_TIMEOUT"))
	if err != nil {
		assistantTimeout = 15 * time.Second
	}

	baseURL := viper.GetString("ASSISTANT_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	model := viper.GetString("ASSISTANT_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	temperature := viper.GetFloat64("ASSISTANT_TEMPERATURE")
	if temperature == 0 {
		temperature = 0.6
	}

	maxTokens := viper.GetInt("ASSISTANT_MAX_TOKENS")
	if maxTokens == 0 {
		maxTokens = 300
	}

	config := &Config{
		App: AppConfig{
			Port: viper.GetString("APP_PORT"),
			Env:  viper.GetString("APP_ENV"),
		},
		DB: DBConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			Name:     viper.GetString("DB_NAME"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Assistant: AssistantConfig{
			APIKey:      viper.GetString("ASSISTANT_API_KEY"),
			BaseURL:     baseURL,
			Model:       model,
			Temperature: temperature,
			MaxTokens:   maxTokens,
			Timeout:     assistantTimeout,
		},
	}

	return config, nil
}
