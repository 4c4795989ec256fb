package adapters

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"web-video-creator/application/ports/outbound"
	"web-video-creator/domain"
)

type execProcessRunner struct {
	logger outbound.LoggerPort
}

func NewExecProcessRunner(logger outbound.LoggerPort) outbound.ProcessRunnerPort {
	return &execProcessRunner{
		logger: logger,
	}
}

func (r *execProcessRunner) Run(ctx context.Context, command string, args []string, workDir string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger.DebugWithFields("Running external process", map[string]interface{}{
		"command": command,
		"args":    strings.Join(args, " "),
	})

	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			procErr := &domain.ProcessError{
				Command:  command,
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
			}
			r.logger.ErrorWithFields(procErr, "External process exited non-zero", map[string]interface{}{
				"command":   command,
				"exit_code": exitErr.ExitCode(),
			})
			return stdout.Bytes(), stderr.Bytes(), procErr
		}

		launchErr := &domain.LaunchError{Command: command, Cause: err}
		r.logger.Error(launchErr, "Failed to launch external process")
		return nil, nil, launchErr
	}

	return stdout.Bytes(), stderr.Bytes(), nil
}
