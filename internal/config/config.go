package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server struct {
		Port        string   `yaml:"port"`
		CORSOrigins []string `yaml:"cors_origins"`
	} `yaml:"server"`
	Log struct {
		Environment string `yaml:"environment"` // development | production
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Auth struct {
		Secret   string `yaml:"secret"`
		TokenTTL string `yaml:"token_ttl"`
	} `yaml:"auth"`
	Gemini struct {
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
		Timeout string `yaml:"timeout"`
	} `yaml:"gemini"`
	YouTube struct {
		APIKey  string `yaml:"api_key"`
		Timeout string `yaml:"timeout"`
	} `yaml:"youtube"`
	Cache struct {
		LessonTTL string `yaml:"lesson_ttl"`
		VideoTTL  string `yaml:"video_ttl"`
	} `yaml:"cache"`
	Chat struct {
		HistorySize int    `yaml:"history_size"`
		HistoryTTL  string `yaml:"history_ttl"`
	} `yaml:"chat"`
}

// Load reads YAML config from path, then applies environment overrides.
// A missing file is not an error: everything can come from the environment.
func Load(path string) (Config, error) {
	// Local development convenience; absent .env files are ignored.
	_ = godotenv.Load()

	cfg := Config{}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	} else if !os.IsNotExist(err) {
		return cfg, err
	}

	overrideString(&cfg.Server.Port, "PORT")
	overrideString(&cfg.Redis.Addr, "REDIS_ADDR")
	overrideString(&cfg.Redis.Password, "REDIS_PASSWORD")
	overrideString(&cfg.Postgres.URL, "DATABASE_URL")
	overrideString(&cfg.Auth.Secret, "SECRET_KEY")
	overrideString(&cfg.Gemini.APIKey, "GEMINI_API_KEY")
	overrideString(&cfg.Gemini.Model, "GEMINI_MODEL")
	overrideString(&cfg.YouTube.APIKey, "YOUTUBE_API_KEY")
	overrideString(&cfg.Log.Environment, "ENVIRONMENT")
	return cfg, nil
}

func overrideString(dst *string, env string) {
	if v := os.Getenv(env); v != "" {
		*dst = v
	}
}

// TTLDuration parses a duration string or returns the fallback if empty or invalid.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
