package main

import (
	"errors"
	"fmt"
	"strings"

	"vsol_site/internal/notification"
	"vsol_site/internal/repository"

	"github.com/spf13/viper"
)

const (
	configPath   = "./"
	configName   = "config"
	configFormat = "yaml"
)

type Config struct {
	Environment string              `yaml:"environment"`
	Server      ServerConfig        `yaml:"server"`
	Database    repository.Config   `yaml:"database"`
	Email       notification.Config `yaml:"email"`
	Admin       AdminConfig         `yaml:"admin"`
	StaticDir   string              `yaml:"staticDir"`
	LogLevel    string              `yaml:"logLevel"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type AdminConfig struct {
	APIKey string `yaml:"apiKey"`
}

// LoadConfig reads config.yaml when present; env vars (APP_ prefix)
// override, and every option has a default so a bare binary still runs.
func LoadConfig() (*Config, error) {
	viper.SetConfigName(configName)
	viper.AddConfigPath(configPath)
	viper.SetConfigType(configFormat)

	viper.SetDefault("environment", "development")
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", "8081")
	viper.SetDefault("database.path", "./data/vsol.db")
	viper.SetDefault("email.sendgridApiKey", "")
	viper.SetDefault("email.adminEmail", "rommel@vsol.software")
	viper.SetDefault("email.referralNotificationEnabled", true)
	viper.SetDefault("admin.apiKey", "")
	viper.SetDefault("staticDir", "./public")
	viper.SetDefault("logLevel", "info")

	viper.AutomaticEnv()
	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
