// Package config loads worker configuration from defaults, an optional yaml
// file, and WEFT_* environment overrides, in that order.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Redis is the connection shared by the queue and the store.
type Redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// Queue controls the job consumer.
type Queue struct {
	Name        string `yaml:"name"`
	Concurrency int    `yaml:"concurrency"`
}

// HTTP is the worker's health/metrics listener.
type HTTP struct {
	Addr string `yaml:"addr"`
}

// Config is the full worker configuration.
type Config struct {
	Redis    Redis  `yaml:"redis"`
	Queue    Queue  `yaml:"queue"`
	HTTP     HTTP   `yaml:"http"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the baseline configuration: one job in flight, local
// redis.
func Default() Config {
	return Config{
		Redis:    Redis{Addr: "localhost:6379"},
		Queue:    Queue{Name: "workflow-execution", Concurrency: 1},
		HTTP:     HTTP{Addr: ":2112"},
		LogLevel: "info",
	}
}

// Load builds the configuration. path may be empty (no file).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.Queue.Concurrency < 1 {
		cfg.Queue.Concurrency = 1
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	setString(&cfg.Redis.Addr, "WEFT_REDIS_ADDR")
	setString(&cfg.Redis.Password, "WEFT_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "WEFT_REDIS_DB")
	setString(&cfg.Queue.Name, "WEFT_QUEUE_NAME")
	setInt(&cfg.Queue.Concurrency, "WEFT_QUEUE_CONCURRENCY")
	setString(&cfg.HTTP.Addr, "WEFT_HTTP_ADDR")
	setString(&cfg.LogLevel, "WEFT_LOG_LEVEL")
}

func setString(target *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*target = v
	}
}

func setInt(target *int, key string) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			*target = n
		}
	}
}
