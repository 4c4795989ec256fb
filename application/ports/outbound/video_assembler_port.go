package outbound

import (
	"context"

	"web-video-creator/domain"
)

// VideoAssemblerPort turns ordered scene artifacts into a single video file.
// Failures carry *domain.AssemblyError; intermediate clips and the concat
// manifest are removed whether assembly succeeds or not.
type VideoAssemblerPort interface {
	Assemble(ctx context.Context, scenes []domain.Scene, outputPath string) (string, error)

	// OverlayMusic mixes a background track into a finished video at the
	// given volume. Not part of the main pipeline.
	OverlayMusic(ctx context.Context, videoPath string, musicPath string, outputPath string, volume float64) (string, error)
}
