package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	Addr string

	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret string

	OpenAIKey     string
	OpenAIModel   string
	OpenAIBaseURL string
}

func Load() (*Config, error) {
	port, err := strconv.Atoi(os.Getenv("DB_PORT"))
	if err != nil {
		port = 5432 // fallback
	}

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = "gpt-4o-mini"
	}

	cfg := &Config{
		Addr: addr,

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     port,
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		OpenAIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   model,
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),
	}

	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if cfg.DBName == "" {
		return nil, errors.New("DB_NAME is required")
	}

	return cfg, nil
}

func (c *Config) ConnString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
