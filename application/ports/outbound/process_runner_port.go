package outbound

import "context"

// ProcessRunnerPort runs one external process per call and blocks the
// calling goroutine until it exits. A non-zero exit yields
// *domain.ProcessError, an unlaunchable command *domain.LaunchError.
// Nothing is retried.
type ProcessRunnerPort interface {
	Run(ctx context.Context, command string, args []string, workDir string) (stdout []byte, stderr []byte, err error)
}
