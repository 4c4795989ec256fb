package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"web-video-creator/application/ports/inbound"
	"web-video-creator/application/ports/outbound"
	"web-video-creator/domain"
)

type sceneProcessor struct {
	logger           outbound.LoggerPort
	segmenter        inbound.StorySegmenterPort
	contentGenerator outbound.ContentGeneratorPort
}

func NewSceneProcessor(segmenter inbound.StorySegmenterPort, contentGenerator outbound.ContentGeneratorPort, logger outbound.LoggerPort) inbound.SceneProcessorPort {
	return &sceneProcessor{
		logger:           logger,
		segmenter:        segmenter,
		contentGenerator: contentGenerator,
	}
}

// Process runs the three generation stages in order: script, image, speech.
// The audio narrates the generated script, not the raw scene text.
func (p *sceneProcessor) Process(ctx context.Context, params inbound.ProcessSceneParams) (domain.Scene, error) {
	if err := os.MkdirAll(params.ArtifactDir, 0755); err != nil {
		return domain.Scene{}, err
	}

	script, err := p.segmenter.ScriptForScene(ctx, params.Text, params.Style)
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to generate scene script", map[string]interface{}{
			"scene": params.Number,
		})
		return domain.Scene{}, err
	}

	imagePath, err := p.generateImage(ctx, params)
	if err != nil {
		return domain.Scene{}, err
	}

	audioPath, err := p.generateAudio(ctx, params, script)
	if err != nil {
		return domain.Scene{}, err
	}

	return domain.Scene{
		Number:       params.Number,
		OriginalText: params.Text,
		Script:       script,
		ImagePath:    imagePath,
		AudioPath:    audioPath,
	}, nil
}

func (p *sceneProcessor) generateImage(ctx context.Context, params inbound.ProcessSceneParams) (string, error) {
	imagePrompt, err := p.segmenter.ImagePromptForScene(ctx, params.Text, params.Style)
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to generate image prompt", map[string]interface{}{
			"scene": params.Number,
		})
		return "", err
	}

	imageBytes, err := p.contentGenerator.SynthesizeImage(ctx, imagePrompt, params.Style)
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to synthesize scene image", map[string]interface{}{
			"scene": params.Number,
		})
		return "", err
	}

	imagePath := filepath.Join(params.ArtifactDir, fmt.Sprintf("scene_%d.png", params.Number))
	if err := os.WriteFile(imagePath, imageBytes, 0644); err != nil {
		p.logger.Error(err, "Failed to write scene image")
		return "", err
	}

	return imagePath, nil
}

func (p *sceneProcessor) generateAudio(ctx context.Context, params inbound.ProcessSceneParams, script string) (string, error) {
	audioBytes, err := p.contentGenerator.SynthesizeSpeech(ctx, script, params.Voice)
	if err != nil {
		p.logger.ErrorWithFields(err, "Failed to synthesize scene audio", map[string]interface{}{
			"scene": params.Number,
		})
		return "", err
	}

	audioPath := filepath.Join(params.ArtifactDir, fmt.Sprintf("scene_%d.mp3", params.Number))
	if err := os.WriteFile(audioPath, audioBytes, 0644); err != nil {
		p.logger.Error(err, "Failed to write scene audio")
		return "", err
	}

	return audioPath, nil
}
