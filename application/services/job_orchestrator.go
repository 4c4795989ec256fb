package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"web-video-creator/application/ports/inbound"
	"web-video-creator/application/ports/outbound"
	"web-video-creator/config"
	"web-video-creator/domain"

	"github.com/google/uuid"
)

const (
	defaultStyle = "cinematic"
	defaultVoice = "alloy"

	progressSegmented  = 20.0
	progressAssembling = 80.0
	progressDone       = 100.0
)

type jobOrchestrator struct {
	baseCtx        context.Context
	logger         outbound.LoggerPort
	workerPool     outbound.TaskDispatcher
	store          outbound.JobStorePort
	segmenter      inbound.StorySegmenterPort
	sceneProcessor inbound.SceneProcessorPort
	assembler      outbound.VideoAssemblerPort
	publisher      outbound.VideoPublisherPort
	mediaConfig    *config.MediaConfig
}

// NewJobOrchestrator wires the pipeline together. baseCtx bounds every
// orchestration unit's lifetime; canceling it aborts in-flight jobs between
// stages. publisher may be nil when remote publishing is not configured.
func NewJobOrchestrator(
	baseCtx context.Context,
	store outbound.JobStorePort,
	segmenter inbound.StorySegmenterPort,
	sceneProcessor inbound.SceneProcessorPort,
	assembler outbound.VideoAssemblerPort,
	publisher outbound.VideoPublisherPort,
	mediaConfig *config.MediaConfig,
	workerPool outbound.TaskDispatcher,
	logger outbound.LoggerPort) inbound.JobOrchestratorPort {
	return &jobOrchestrator{
		baseCtx:        baseCtx,
		logger:         logger,
		workerPool:     workerPool,
		store:          store,
		segmenter:      segmenter,
		sceneProcessor: sceneProcessor,
		assembler:      assembler,
		publisher:      publisher,
		mediaConfig:    mediaConfig,
	}
}

func (o *jobOrchestrator) CreateJob(params inbound.CreateJobParams) (string, error) {
	if strings.TrimSpace(params.Story) == "" {
		return "", domain.ErrEmptyStory
	}
	if params.Style == "" {
		params.Style = defaultStyle
	}
	if params.Voice == "" {
		params.Voice = defaultVoice
	}

	jobID := uuid.NewString()
	o.store.Create(domain.NewJob(jobID))

	err := o.workerPool.Submit(func() {
		o.runJob(o.baseCtx, jobID, params)
	})
	if err != nil {
		o.logger.Error(err, "Failed to submit job to worker pool")
		o.store.Delete(jobID)
		return "", err
	}

	return jobID, nil
}

// runJob is the orchestration unit: a single forward pass through the job
// state machine. It is the only writer of this job's fields; it mutates a
// private copy and publishes snapshots through the store.
func (o *jobOrchestrator) runJob(ctx context.Context, jobID string, params inbound.CreateJobParams) {
	job, ok := o.store.Get(jobID)
	if !ok {
		// Deleted before the unit started.
		return
	}

	job.Status = domain.JobProcessing
	job.Progress = 0
	job.Message = "Breaking story into scenes..."
	o.store.Save(job)

	sceneTexts, err := o.segmenter.SegmentStory(ctx, params.Story)
	if err != nil {
		o.fail(job, err)
		return
	}

	total := len(sceneTexts)
	job.Progress = progressSegmented
	job.Message = fmt.Sprintf("Generated %d scenes. Processing scenes...", total)
	o.store.Save(job)

	artifactDir := filepath.Join(o.mediaConfig.TempDir, jobID)
	for i, text := range sceneTexts {
		if err := ctx.Err(); err != nil {
			o.fail(job, err)
			return
		}

		job.Message = fmt.Sprintf("Processing scene %d/%d...", i+1, total)
		o.store.Save(job)

		scene, err := o.sceneProcessor.Process(ctx, inbound.ProcessSceneParams{
			Number:      i + 1,
			Text:        text,
			Style:       params.Style,
			Voice:       params.Voice,
			ArtifactDir: artifactDir,
		})
		if err != nil {
			o.fail(job, err)
			return
		}

		job.Scenes = append(job.Scenes, scene)
		job.Progress = progressSegmented + 60.0*float64(i+1)/float64(total)
		o.store.Save(job)
	}

	if err := ctx.Err(); err != nil {
		o.fail(job, err)
		return
	}

	job.Progress = progressAssembling
	job.Message = "Creating final video..."
	o.store.Save(job)

	outputPath := o.videoPath(jobID)
	if _, err := o.assembler.Assemble(ctx, job.Scenes, outputPath); err != nil {
		o.fail(job, err)
		return
	}

	if o.publisher != nil {
		if _, err := o.publisher.Publish(ctx, jobID, outputPath); err != nil {
			o.fail(job, err)
			return
		}
	}

	job.Status = domain.JobCompleted
	job.Progress = progressDone
	job.Message = "Video created successfully!"
	job.VideoURL = "/download/" + jobID
	o.store.Save(job)

	o.logger.InfoWithFields("Job completed", map[string]interface{}{
		"job_id": jobID,
		"scenes": total,
	})
}

// fail moves the job to its terminal failed state. Scenes processed so far
// stay on the record for diagnosis.
func (o *jobOrchestrator) fail(job domain.Job, err error) {
	o.logger.ErrorWithFields(err, "Job failed", map[string]interface{}{
		"job_id": job.ID,
	})
	job.Status = domain.JobFailed
	job.Message = fmt.Sprintf("Error: %v", err)
	o.store.Save(job)
}

func (o *jobOrchestrator) GetJob(id string) (domain.Job, error) {
	job, ok := o.store.Get(id)
	if !ok {
		return domain.Job{}, domain.ErrJobNotFound
	}
	return job, nil
}

func (o *jobOrchestrator) VideoFile(id string) (string, error) {
	job, ok := o.store.Get(id)
	if !ok {
		return "", domain.ErrJobNotFound
	}
	if job.Status != domain.JobCompleted {
		return "", domain.ErrVideoNotReady
	}
	return o.videoPath(id), nil
}

// DeleteJob removes the job record together with its artifacts. Deleting an
// unknown id reports not-found without touching the filesystem.
func (o *jobOrchestrator) DeleteJob(id string) error {
	if !o.store.Delete(id) {
		return domain.ErrJobNotFound
	}

	if err := os.Remove(o.videoPath(id)); err != nil && !os.IsNotExist(err) {
		o.logger.Error(err, "Failed to remove video file")
	}
	if err := os.RemoveAll(filepath.Join(o.mediaConfig.TempDir, id)); err != nil {
		o.logger.Error(err, "Failed to remove artifact directory")
	}

	return nil
}

func (o *jobOrchestrator) videoPath(id string) string {
	return filepath.Join(o.mediaConfig.OutputDir, id+".mp4")
}
