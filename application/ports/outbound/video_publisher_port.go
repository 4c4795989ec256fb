package outbound

import "context"

// VideoPublisherPort uploads a finished video to remote storage. The local
// file stays in place and remains the download source.
type VideoPublisherPort interface {
	Publish(ctx context.Context, jobID string, videoPath string) (key string, err error)
}
