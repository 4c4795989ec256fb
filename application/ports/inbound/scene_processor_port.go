package inbound

import (
	"context"

	"web-video-creator/domain"
)

type ProcessSceneParams struct {
	Number      int
	Text        string
	Style       string
	Voice       string
	ArtifactDir string
}

// SceneProcessorPort turns one scene text into a fully populated Scene:
// narration script, image artifact and audio artifact under ArtifactDir.
// Any stage failure aborts the whole scene.
type SceneProcessorPort interface {
	Process(ctx context.Context, params ProcessSceneParams) (domain.Scene, error)
}
