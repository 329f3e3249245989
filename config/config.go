package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen   string `yaml:"listen"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	JWTSecret string `yaml:"jwt_secret"`
}

// Load reads an optional yaml config file and applies environment
// overrides. Environment wins so deployments can keep secrets out of files.
func Load(path string) (*Config, error) {
	cfg := &Config{Listen: ":8000"}
	cfg.Database.Driver = "mysql"
	cfg.Database.DSN = "admin:12345678@tcp(127.0.0.1:3306)/sharetech?charset=utf8mb4&parseTime=True&loc=Local"

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Listen = v
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("DB_DSN"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.JWTSecret = v
	}
	return cfg, nil
}
