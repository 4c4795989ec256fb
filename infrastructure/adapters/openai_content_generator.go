package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"web-video-creator/application/ports/outbound"
	"web-video-creator/config"
	"web-video-creator/domain"
)

const systemPrompt = "You are a creative storyteller and scriptwriter."

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type imageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	Number         int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	Style          string `json:"style,omitempty"`
	ResponseFormat string `json:"response_format"`
}

type imageGenerationResponse struct {
	Data []struct {
		B64Json string `json:"b64_json"`
	} `json:"data"`
}

type speechRequest struct {
	Model string  `json:"model"`
	Input string  `json:"input"`
	Voice string  `json:"voice"`
	Speed float64 `json:"speed"`
}

type openAIContentGenerator struct {
	ContentFetcher
	logger       outbound.LoggerPort
	openAIConfig *config.OpenAIConfig
}

func NewOpenAIContentGenerator(contentFetcher ContentFetcher, openAIConfig *config.OpenAIConfig, logger outbound.LoggerPort) outbound.ContentGeneratorPort {
	return &openAIContentGenerator{
		ContentFetcher: contentFetcher,
		logger:         logger,
		openAIConfig:   openAIConfig,
	}
}

func (o *openAIContentGenerator) CompleteText(ctx context.Context, prompt string, maxTokens int) (string, error) {
	reqBody := chatCompletionRequest{
		Model: o.openAIConfig.ChatModel,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	}

	rawRes, err := o.post(ctx, "/chat/completions", reqBody)
	if err != nil {
		return "", &domain.ExternalServiceError{Stage: domain.StageTextCompletion, Cause: err}
	}

	var completion chatCompletionResponse
	if err := json.Unmarshal(rawRes, &completion); err != nil {
		o.logger.Error(err, "Failed to unmarshal the completion response")
		return "", &domain.ExternalServiceError{Stage: domain.StageTextCompletion, Cause: err}
	}
	if len(completion.Choices) == 0 {
		err := fmt.Errorf("completion response contains no choices")
		o.logger.Error(err, "Malformed completion response")
		return "", &domain.ExternalServiceError{Stage: domain.StageTextCompletion, Cause: err}
	}

	return completion.Choices[0].Message.Content, nil
}

func (o *openAIContentGenerator) SynthesizeImage(ctx context.Context, prompt string, style string) ([]byte, error) {
	reqBody := imageGenerationRequest{
		Model:          o.openAIConfig.ImageModel,
		Prompt:         prompt,
		Number:         1,
		Size:           "1024x1024",
		Quality:        "standard",
		Style:          style,
		ResponseFormat: "b64_json",
	}

	rawRes, err := o.post(ctx, "/images/generations", reqBody)
	if err != nil {
		return nil, &domain.ExternalServiceError{Stage: domain.StageImageSynthesis, Cause: err}
	}

	var imageRes imageGenerationResponse
	if err := json.Unmarshal(rawRes, &imageRes); err != nil {
		o.logger.Error(err, "Failed to unmarshal the image response")
		return nil, &domain.ExternalServiceError{Stage: domain.StageImageSynthesis, Cause: err}
	}
	if len(imageRes.Data) == 0 {
		err := fmt.Errorf("image response contains no data")
		o.logger.Error(err, "Malformed image response")
		return nil, &domain.ExternalServiceError{Stage: domain.StageImageSynthesis, Cause: err}
	}

	decodedImage, err := base64.StdEncoding.DecodeString(imageRes.Data[0].B64Json)
	if err != nil {
		o.logger.Error(err, "Failed to decode the image payload")
		return nil, &domain.ExternalServiceError{Stage: domain.StageImageSynthesis, Cause: err}
	}

	return decodedImage, nil
}

func (o *openAIContentGenerator) SynthesizeSpeech(ctx context.Context, text string, voice string) ([]byte, error) {
	reqBody := speechRequest{
		Model: o.openAIConfig.SpeechModel,
		Input: text,
		Voice: voice,
		Speed: 1.0,
	}

	audio, err := o.post(ctx, "/audio/speech", reqBody)
	if err != nil {
		return nil, &domain.ExternalServiceError{Stage: domain.StageSpeechSynthesis, Cause: err}
	}

	return audio, nil
}

func (o *openAIContentGenerator) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	jsonPayload, err := json.Marshal(body)
	if err != nil {
		o.logger.Error(err, "Failed to marshal the request body")
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.openAIConfig.ApiUrl+path, bytes.NewBuffer(jsonPayload))
	if err != nil {
		o.logger.Error(err, "Failed to create the HTTP request")
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+o.openAIConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return o.FetchContent(req)
}
