package inbound

import "web-video-creator/domain"

type CreateJobParams struct {
	Story string
	Style string
	Voice string
}

// JobOrchestratorPort owns job lifecycles: creation schedules the background
// orchestration unit and returns immediately, deletion removes the job and
// its on-disk artifacts.
type JobOrchestratorPort interface {
	CreateJob(params CreateJobParams) (string, error)
	GetJob(id string) (domain.Job, error)

	// VideoFile resolves the finished video's path on disk. Fails with
	// domain.ErrJobNotFound for unknown jobs and domain.ErrVideoNotReady
	// before completion.
	VideoFile(id string) (string, error)

	DeleteJob(id string) error
}
