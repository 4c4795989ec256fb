package adapters

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"web-video-creator/config"
	"web-video-creator/domain"
)

type recordedCall struct {
	command string
	args    []string
}

// fakeProcessRunner answers ffprobe calls with a canned duration, creates
// the output file of every ffmpeg call and remembers everything it ran.
type fakeProcessRunner struct {
	t         *testing.T
	calls     []recordedCall
	failOn    func(command string, args []string) error
	manifests []string
}

func (f *fakeProcessRunner) Run(ctx context.Context, command string, args []string, workDir string) ([]byte, []byte, error) {
	f.calls = append(f.calls, recordedCall{command: command, args: args})

	if f.failOn != nil {
		if err := f.failOn(command, args); err != nil {
			return nil, []byte("ffmpeg diagnostics"), err
		}
	}

	if command == "ffprobe" {
		return []byte(`{"format":{"duration":"3.50"}}`), nil, nil
	}

	// The last argument of every ffmpeg invocation is the output path.
	outputPath := args[len(args)-1]
	if err := os.WriteFile(outputPath, []byte("fake media"), 0644); err != nil {
		f.t.Fatal("failed to create fake output:", err)
	}

	// Remember manifest contents before the assembler deletes them.
	for i, arg := range args {
		if arg == "-i" && strings.HasSuffix(args[i+1], ".txt") {
			content, err := os.ReadFile(args[i+1])
			if err != nil {
				f.t.Fatal("failed to read manifest:", err)
			}
			f.manifests = append(f.manifests, string(content))
		}
	}

	return nil, nil, nil
}

func assemblerFixture(t *testing.T) (*fakeProcessRunner, *config.MediaConfig, []domain.Scene, string) {
	t.Helper()
	tmp := t.TempDir()

	mediaConfig := &config.MediaConfig{
		FFmpegBin:  "ffmpeg",
		FFprobeBin: "ffprobe",
		TempDir:    filepath.Join(tmp, "temp"),
		OutputDir:  filepath.Join(tmp, "outputs"),
	}

	scenes := []domain.Scene{
		{Number: 1, ImagePath: "/art/scene_1.png", AudioPath: "/art/scene_1.mp3"},
		{Number: 2, ImagePath: "/art/scene_2.png", AudioPath: "/art/scene_2.mp3"},
	}

	outputPath := filepath.Join(mediaConfig.OutputDir, "job-1.mp4")
	return &fakeProcessRunner{t: t}, mediaConfig, scenes, outputPath
}

func TestFFmpegAssembler_Assemble(t *testing.T) {
	runner, mediaConfig, scenes, outputPath := assemblerFixture(t)
	assembler := NewFFmpegAssembler(runner, mediaConfig, NewZerologWrapper())

	result, err := assembler.Assemble(context.Background(), scenes, outputPath)
	if err != nil {
		t.Fatal("Assemble returned an error:", err)
	}
	if result != outputPath {
		t.Errorf("expected %q, got %q", outputPath, result)
	}

	// probe, clip, probe, clip, concat
	if len(runner.calls) != 5 {
		t.Fatalf("expected 5 process calls, got %d", len(runner.calls))
	}
	if runner.calls[0].command != "ffprobe" || runner.calls[2].command != "ffprobe" {
		t.Error("each clip must be preceded by a duration probe")
	}

	clipArgs := strings.Join(runner.calls[1].args, " ")
	for _, want := range []string{"-loop 1", "-c:v libx264", "-t 3.5", "-pix_fmt yuv420p", "-vf scale=1920:1080", "-c:a aac"} {
		if !strings.Contains(clipArgs, want) {
			t.Errorf("clip invocation missing %q: %s", want, clipArgs)
		}
	}

	concatArgs := strings.Join(runner.calls[4].args, " ")
	for _, want := range []string{"-f concat", "-safe 0", "-c copy"} {
		if !strings.Contains(concatArgs, want) {
			t.Errorf("concat invocation missing %q: %s", want, concatArgs)
		}
	}
}

func TestFFmpegAssembler_ManifestListsClipsInOrder(t *testing.T) {
	runner, mediaConfig, scenes, outputPath := assemblerFixture(t)
	assembler := NewFFmpegAssembler(runner, mediaConfig, NewZerologWrapper())

	// Reverse input order; the assembler must sort by scene number.
	reversed := []domain.Scene{scenes[1], scenes[0]}
	if _, err := assembler.Assemble(context.Background(), reversed, outputPath); err != nil {
		t.Fatal("Assemble returned an error:", err)
	}

	if len(runner.manifests) != 1 {
		t.Fatalf("expected 1 manifest, got %d", len(runner.manifests))
	}
	lines := strings.Split(strings.TrimSpace(runner.manifests[0]), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 manifest lines, got %d", len(lines))
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "file '") || !strings.HasSuffix(line, "'") {
			t.Errorf("manifest line %d not quoted: %q", i, line)
		}
		if !strings.Contains(line, "scene_") {
			t.Errorf("manifest line %d does not reference a clip: %q", i, line)
		}
		if !filepath.IsAbs(strings.TrimSuffix(strings.TrimPrefix(line, "file '"), "'")) {
			t.Errorf("manifest line %d is not an absolute path: %q", i, line)
		}
	}
	if !strings.Contains(lines[0], "scene_1_") || !strings.Contains(lines[1], "scene_2_") {
		t.Errorf("manifest out of order: %v", lines)
	}
}

func TestFFmpegAssembler_CleansUpIntermediates(t *testing.T) {
	runner, mediaConfig, scenes, outputPath := assemblerFixture(t)
	assembler := NewFFmpegAssembler(runner, mediaConfig, NewZerologWrapper())

	if _, err := assembler.Assemble(context.Background(), scenes, outputPath); err != nil {
		t.Fatal("Assemble returned an error:", err)
	}

	leftovers, err := os.ReadDir(mediaConfig.TempDir)
	if err != nil {
		t.Fatal("failed to read temp dir:", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("expected empty temp dir, found %d entries", len(leftovers))
	}

	if _, err := os.Stat(outputPath); err != nil {
		t.Error("final video should survive cleanup:", err)
	}
}

func TestFFmpegAssembler_CleansUpOnConcatFailure(t *testing.T) {
	runner, mediaConfig, scenes, outputPath := assemblerFixture(t)
	runner.failOn = func(command string, args []string) error {
		for _, arg := range args {
			if arg == "concat" {
				return &domain.ProcessError{Command: "ffmpeg", ExitCode: 1, Stderr: "invalid stream"}
			}
		}
		return nil
	}
	assembler := NewFFmpegAssembler(runner, mediaConfig, NewZerologWrapper())

	_, err := assembler.Assemble(context.Background(), scenes, outputPath)

	var asmErr *domain.AssemblyError
	if !errors.As(err, &asmErr) {
		t.Fatalf("expected AssemblyError, got %v", err)
	}
	if asmErr.Step != domain.StepConcatenate {
		t.Errorf("expected concatenate step, got %q", asmErr.Step)
	}
	var procErr *domain.ProcessError
	if !errors.As(err, &procErr) {
		t.Error("expected the underlying ProcessError to be wrapped")
	}

	leftovers, readErr := os.ReadDir(mediaConfig.TempDir)
	if readErr != nil {
		t.Fatal("failed to read temp dir:", readErr)
	}
	if len(leftovers) != 0 {
		t.Errorf("intermediates must be removed on failure, found %d entries", len(leftovers))
	}
}

func TestFFmpegAssembler_ProbeFailure(t *testing.T) {
	runner, mediaConfig, scenes, outputPath := assemblerFixture(t)
	runner.failOn = func(command string, args []string) error {
		if command == "ffprobe" {
			return &domain.ProcessError{Command: "ffprobe", ExitCode: 1, Stderr: "no such file"}
		}
		return nil
	}
	assembler := NewFFmpegAssembler(runner, mediaConfig, NewZerologWrapper())

	_, err := assembler.Assemble(context.Background(), scenes, outputPath)

	var asmErr *domain.AssemblyError
	if !errors.As(err, &asmErr) {
		t.Fatalf("expected AssemblyError, got %v", err)
	}
	if asmErr.Step != domain.StepProbeDuration {
		t.Errorf("expected probe-duration step, got %q", asmErr.Step)
	}
}

func TestFFmpegAssembler_RejectsEmptySceneList(t *testing.T) {
	runner, mediaConfig, _, outputPath := assemblerFixture(t)
	assembler := NewFFmpegAssembler(runner, mediaConfig, NewZerologWrapper())

	if _, err := assembler.Assemble(context.Background(), nil, outputPath); err == nil {
		t.Fatal("expected an error for an empty scene list")
	}
	if len(runner.calls) != 0 {
		t.Error("no process should run for an empty scene list")
	}
}

func TestFFmpegAssembler_OverlayMusic(t *testing.T) {
	runner, mediaConfig, _, _ := assemblerFixture(t)
	assembler := NewFFmpegAssembler(runner, mediaConfig, NewZerologWrapper())

	out := filepath.Join(mediaConfig.OutputDir, "with-music.mp4")
	if err := os.MkdirAll(mediaConfig.OutputDir, 0755); err != nil {
		t.Fatal(err)
	}

	result, err := assembler.OverlayMusic(context.Background(), "video.mp4", "music.mp3", out, 0.3)
	if err != nil {
		t.Fatal("OverlayMusic returned an error:", err)
	}
	if result != out {
		t.Errorf("expected %q, got %q", out, result)
	}

	args := strings.Join(runner.calls[0].args, " ")
	if !strings.Contains(args, "volume=0.3") || !strings.Contains(args, "amix=inputs=2:duration=first") {
		t.Errorf("unexpected filter graph: %s", args)
	}
	if !strings.Contains(args, "-c:v copy") {
		t.Errorf("video stream should be copied: %s", args)
	}
}
