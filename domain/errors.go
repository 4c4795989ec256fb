package domain

import (
	"errors"
	"fmt"
)

var (
	ErrJobNotFound   = errors.New("job not found")
	ErrVideoNotReady = errors.New("video not ready")
	ErrEmptyStory    = errors.New("story must not be empty")
)

// Stages of content generation, used to attribute provider failures.
const (
	StageTextCompletion  = "text-completion"
	StageImageSynthesis  = "image-synthesis"
	StageSpeechSynthesis = "speech-synthesis"
)

// ExternalServiceError marks a failure of the AI provider: network error,
// non-2xx response or a response body that could not be decoded.
type ExternalServiceError struct {
	Stage string
	Cause error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("external service error at %s: %v", e.Stage, e.Cause)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Cause
}

// ProcessError marks a subprocess that launched but exited non-zero.
// Stderr carries the tool's diagnostic output.
type ProcessError struct {
	Command  string
	ExitCode int
	Stderr   string
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("%s exited with code %d: %s", e.Command, e.ExitCode, e.Stderr)
}

// LaunchError marks a subprocess that could not be started at all.
type LaunchError struct {
	Command string
	Cause   error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %v", e.Command, e.Cause)
}

func (e *LaunchError) Unwrap() error {
	return e.Cause
}

// Assembly steps, used to attribute toolchain failures.
const (
	StepProbeDuration = "probe-duration"
	StepSceneClip     = "scene-clip"
	StepConcatenate   = "concatenate"
	StepOverlayMusic  = "overlay-music"
)

// AssemblyError wraps a ProcessError or LaunchError raised while turning
// scene artifacts into the final video.
type AssemblyError struct {
	Step  string
	Cause error
}

func (e *AssemblyError) Error() string {
	return fmt.Sprintf("video assembly failed at %s: %v", e.Step, e.Cause)
}

func (e *AssemblyError) Unwrap() error {
	return e.Cause
}
