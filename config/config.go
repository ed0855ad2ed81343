package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the process configuration, populated from the environment.
type Config struct {
	Port               string   `envconfig:"PORT" default:"8080"`
	AWSRegion          string   `envconfig:"AWS_REGION" default:"us-east-1"`
	ModerationEndpoint string   `envconfig:"MODERATION_API_URL"`
	ModerationAPIKey   string   `envconfig:"MODERATION_API_KEY"`
	AllowedOrigins     []string `envconfig:"ALLOWED_ORIGINS" default:"*"`
}

// Load reads .env (if present) and the environment into a Config.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	return &cfg
}
