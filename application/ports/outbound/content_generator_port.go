package outbound

import "context"

// ContentGeneratorPort is the capability set expected from an AI content
// provider. Every method fails with *domain.ExternalServiceError on network
// failure, non-2xx response or malformed response body.
type ContentGeneratorPort interface {
	CompleteText(ctx context.Context, prompt string, maxTokens int) (string, error)
	SynthesizeImage(ctx context.Context, prompt string, style string) ([]byte, error)
	SynthesizeSpeech(ctx context.Context, text string, voice string) ([]byte, error)
}
