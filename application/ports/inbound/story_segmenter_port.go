package inbound

import "context"

// StorySegmenterPort holds the prompt-level operations layered on text
// completion.
type StorySegmenterPort interface {
	// SegmentStory breaks a story into 3-7 scene texts. It never returns an
	// empty slice on success: if the provider reply parses to nothing, the
	// whole story becomes the single scene.
	SegmentStory(ctx context.Context, story string) ([]string, error)

	// ScriptForScene derives a 30-70 word narration script in the given style.
	ScriptForScene(ctx context.Context, sceneText string, style string) (string, error)

	// ImagePromptForScene derives an image-generation prompt for the scene,
	// passed verbatim to image synthesis.
	ImagePromptForScene(ctx context.Context, sceneText string, style string) (string, error)
}
