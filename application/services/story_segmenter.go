package services

import (
	"context"
	"fmt"
	"strings"
	"web-video-creator/application/ports/inbound"
	"web-video-creator/application/ports/outbound"
)

const (
	segmentationMaxTokens = 500
	scriptMaxTokens       = 150
	imagePromptMaxTokens  = 100
)

type storySegmenter struct {
	logger           outbound.LoggerPort
	contentGenerator outbound.ContentGeneratorPort
}

func NewStorySegmenter(contentGenerator outbound.ContentGeneratorPort, logger outbound.LoggerPort) inbound.StorySegmenterPort {
	return &storySegmenter{
		logger:           logger,
		contentGenerator: contentGenerator,
	}
}

func (s *storySegmenter) SegmentStory(ctx context.Context, story string) ([]string, error) {
	prompt := fmt.Sprintf("Break the following story into 3-7 distinct scenes for video creation. Each scene should:\n"+
		"1. Be a self-contained narrative moment\n"+
		"2. Have clear visual potential\n"+
		"3. Be 1-3 sentences long\n"+
		"4. Progress the story naturally\n\n"+
		"Return ONLY the scenes, one per line, numbered:\n\n"+
		"Story: %s", story)

	response, err := s.contentGenerator.CompleteText(ctx, prompt, segmentationMaxTokens)
	if err != nil {
		s.logger.Error(err, "Failed to segment story")
		return nil, err
	}

	scenes := parseSceneLines(response)
	if len(scenes) == 0 {
		// Unusable reply; the whole story becomes the single scene.
		s.logger.Warn("Segmentation reply parsed to zero scenes, falling back to the full story")
		return []string{story}, nil
	}

	return scenes, nil
}

// parseSceneLines keeps non-blank, non-comment lines and strips a leading
// "<digits>. " enumeration from each.
func parseSceneLines(response string) []string {
	scenes := make([]string, 0)
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if before, after, found := strings.Cut(line, ". "); found && isDigits(before) {
			line = after
		}
		scenes = append(scenes, line)
	}
	return scenes
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func (s *storySegmenter) ScriptForScene(ctx context.Context, sceneText string, style string) (string, error) {
	prompt := fmt.Sprintf("Create a concise, engaging narration script for this scene. The script should:\n"+
		"1. Be 15-30 seconds when spoken (about 30-70 words)\n"+
		"2. Use vivid, descriptive language\n"+
		"3. Match a %s style\n"+
		"4. Be suitable for voice-over narration\n"+
		"5. Enhance the visual storytelling\n\n"+
		"Scene: %s\n\n"+
		"Return ONLY the narration script:", style, sceneText)

	script, err := s.contentGenerator.CompleteText(ctx, prompt, scriptMaxTokens)
	if err != nil {
		s.logger.Error(err, "Failed to generate scene script")
		return "", err
	}

	return strings.TrimSpace(script), nil
}

func (s *storySegmenter) ImagePromptForScene(ctx context.Context, sceneText string, style string) (string, error) {
	prompt := fmt.Sprintf("Create a detailed, visual prompt for an image generation model for this scene:\n\n"+
		"Scene: %s\n"+
		"Style: %s\n\n"+
		"The prompt should:\n"+
		"1. Be descriptive and specific about visual elements\n"+
		"2. Include lighting, composition, and mood details\n"+
		"3. Specify the %s style\n"+
		"4. Be suitable for a video frame\n"+
		"5. Be under 400 characters\n\n"+
		"Return ONLY the image generation prompt:", sceneText, style, style)

	imagePrompt, err := s.contentGenerator.CompleteText(ctx, prompt, imagePromptMaxTokens)
	if err != nil {
		s.logger.Error(err, "Failed to generate image prompt")
		return "", err
	}

	return strings.TrimSpace(imagePrompt), nil
}
