package config

import (
	"fmt"
	"os"
)

type OpenAIConfig struct {
	ApiUrl      string
	ApiKey      string
	ChatModel   string
	ImageModel  string
	SpeechModel string
}

func GetOpenAIConfig() (*OpenAIConfig, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY must be set")
	}

	return &OpenAIConfig{
		ApiUrl:      getEnvOrDefault("OPENAI_API_URL", "https://api.openai.com/v1"),
		ApiKey:      apiKey,
		ChatModel:   getEnvOrDefault("OPENAI_CHAT_MODEL", "gpt-4-turbo-preview"),
		ImageModel:  getEnvOrDefault("OPENAI_IMAGE_MODEL", "dall-e-3"),
		SpeechModel: getEnvOrDefault("OPENAI_SPEECH_MODEL", "tts-1-hd"),
	}, nil
}

func getEnvOrDefault(key string, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
