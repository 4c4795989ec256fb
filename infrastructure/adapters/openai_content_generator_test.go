package adapters

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"web-video-creator/config"
	"web-video-creator/domain"
)

func generatorAgainst(server *httptest.Server) *openAIContentGenerator {
	logger := NewZerologWrapper()
	return NewOpenAIContentGenerator(NewContentFetcher(logger), &config.OpenAIConfig{
		ApiUrl:      server.URL,
		ApiKey:      "test-key",
		ChatModel:   "gpt-4-turbo-preview",
		ImageModel:  "dall-e-3",
		SpeechModel: "tts-1-hd",
	}, logger).(*openAIContentGenerator)
}

func TestOpenAIContentGenerator_CompleteText(t *testing.T) {
	var gotReq chatCompletionRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Error("missing bearer token")
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatal("failed to decode request:", err)
		}
		_ = json.NewEncoder(w).Encode(chatCompletionResponse{
			Choices: []struct {
				Message chatMessage `json:"message"`
			}{{Message: chatMessage{Role: "assistant", Content: "Once upon a time."}}},
		})
	}))
	defer server.Close()

	generator := generatorAgainst(server)

	text, err := generator.CompleteText(context.Background(), "tell a story", 500)
	if err != nil {
		t.Fatal("CompleteText returned an error:", err)
	}
	if text != "Once upon a time." {
		t.Errorf("unexpected text: %q", text)
	}
	if gotReq.MaxTokens != 500 {
		t.Errorf("expected max_tokens 500, got %d", gotReq.MaxTokens)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Errorf("expected system+user messages, got %+v", gotReq.Messages)
	}
}

func TestOpenAIContentGenerator_CompleteText_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"rate limited"}}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	generator := generatorAgainst(server)

	_, err := generator.CompleteText(context.Background(), "tell a story", 500)

	var extErr *domain.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if extErr.Stage != domain.StageTextCompletion {
		t.Errorf("expected text-completion stage, got %q", extErr.Stage)
	}
}

func TestOpenAIContentGenerator_CompleteText_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	generator := generatorAgainst(server)

	_, err := generator.CompleteText(context.Background(), "tell a story", 500)

	var extErr *domain.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError for empty choices, got %v", err)
	}
}

func TestOpenAIContentGenerator_SynthesizeImage(t *testing.T) {
	imageBytes := []byte{0x89, 'P', 'N', 'G'}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/images/generations" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req imageGenerationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal("failed to decode request:", err)
		}
		if req.ResponseFormat != "b64_json" {
			t.Errorf("expected b64_json response format, got %q", req.ResponseFormat)
		}
		_ = json.NewEncoder(w).Encode(imageGenerationResponse{
			Data: []struct {
				B64Json string `json:"b64_json"`
			}{{B64Json: base64.StdEncoding.EncodeToString(imageBytes)}},
		})
	}))
	defer server.Close()

	generator := generatorAgainst(server)

	got, err := generator.SynthesizeImage(context.Background(), "a lighthouse", "vivid")
	if err != nil {
		t.Fatal("SynthesizeImage returned an error:", err)
	}
	if string(got) != string(imageBytes) {
		t.Errorf("decoded image mismatch: %v", got)
	}
}

func TestOpenAIContentGenerator_SynthesizeImage_BadBase64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"b64_json":"%%% not base64 %%%"}]}`))
	}))
	defer server.Close()

	generator := generatorAgainst(server)

	_, err := generator.SynthesizeImage(context.Background(), "a lighthouse", "vivid")

	var extErr *domain.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if extErr.Stage != domain.StageImageSynthesis {
		t.Errorf("expected image-synthesis stage, got %q", extErr.Stage)
	}
}

func TestOpenAIContentGenerator_SynthesizeSpeech(t *testing.T) {
	audio := []byte("mp3-bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/audio/speech" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		var req speechRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal("failed to decode request:", err)
		}
		if req.Voice != "alloy" {
			t.Errorf("expected voice alloy, got %q", req.Voice)
		}
		_, _ = w.Write(audio)
	}))
	defer server.Close()

	generator := generatorAgainst(server)

	got, err := generator.SynthesizeSpeech(context.Background(), "hello", "alloy")
	if err != nil {
		t.Fatal("SynthesizeSpeech returned an error:", err)
	}
	if string(got) != string(audio) {
		t.Errorf("audio mismatch: %q", got)
	}
}

func TestOpenAIContentGenerator_SynthesizeSpeech_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer server.Close()

	generator := generatorAgainst(server)

	_, err := generator.SynthesizeSpeech(context.Background(), "hello", "alloy")

	var extErr *domain.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError, got %v", err)
	}
	if extErr.Stage != domain.StageSpeechSynthesis {
		t.Errorf("expected speech-synthesis stage, got %q", extErr.Stage)
	}
}
