package config

import (
	"fmt"
	"os"
	"strconv"
)

type ServerConfig struct {
	Port           int
	WorkerPoolSize int
}

func GetServerConfig() (*ServerConfig, error) {
	port, err := intEnvOrDefault("PORT", 8000)
	if err != nil {
		return nil, err
	}

	poolSize, err := intEnvOrDefault("WORKER_POOL_SIZE", 32)
	if err != nil {
		return nil, err
	}

	return &ServerConfig{
		Port:           port,
		WorkerPoolSize: poolSize,
	}, nil
}

func intEnvOrDefault(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return value, nil
}
