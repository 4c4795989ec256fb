package adapters

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"web-video-creator/application/ports/outbound"
	"web-video-creator/config"
	"web-video-creator/domain"

	"github.com/google/uuid"
)

type ffprobeOutput struct {
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type ffmpegAssembler struct {
	logger      outbound.LoggerPort
	runner      outbound.ProcessRunnerPort
	mediaConfig *config.MediaConfig
}

func NewFFmpegAssembler(runner outbound.ProcessRunnerPort, mediaConfig *config.MediaConfig, logger outbound.LoggerPort) outbound.VideoAssemblerPort {
	return &ffmpegAssembler{
		logger:      logger,
		runner:      runner,
		mediaConfig: mediaConfig,
	}
}

func (f *ffmpegAssembler) Assemble(ctx context.Context, scenes []domain.Scene, outputPath string) (string, error) {
	if len(scenes) == 0 {
		return "", &domain.AssemblyError{Step: domain.StepSceneClip, Cause: fmt.Errorf("no scenes provided")}
	}

	ordered := make([]domain.Scene, len(scenes))
	copy(ordered, scenes)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Number < ordered[j].Number })

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", &domain.AssemblyError{Step: domain.StepSceneClip, Cause: err}
	}
	if err := os.MkdirAll(f.mediaConfig.TempDir, 0755); err != nil {
		return "", &domain.AssemblyError{Step: domain.StepSceneClip, Cause: err}
	}

	clipPaths := make([]string, 0, len(ordered))
	defer func() {
		for _, clip := range clipPaths {
			if err := os.Remove(clip); err != nil && !os.IsNotExist(err) {
				f.logger.Error(err, "Failed to remove scene clip")
			}
		}
	}()

	for _, scene := range ordered {
		clipPath := filepath.Join(f.mediaConfig.TempDir, fmt.Sprintf("scene_%d_%s.mp4", scene.Number, uuid.NewString()))
		if err := f.createSceneClip(ctx, scene, clipPath); err != nil {
			return "", err
		}
		clipPaths = append(clipPaths, clipPath)
	}

	if err := f.concatenateClips(ctx, clipPaths, outputPath); err != nil {
		return "", err
	}

	return outputPath, nil
}

func (f *ffmpegAssembler) createSceneClip(ctx context.Context, scene domain.Scene, clipPath string) error {
	duration, err := f.probeAudioDuration(ctx, scene.AudioPath)
	if err != nil {
		return err
	}

	_, _, err = f.runner.Run(ctx, f.mediaConfig.FFmpegBin, []string{
		"-y",
		"-loop", "1",
		"-i", scene.ImagePath,
		"-i", scene.AudioPath,
		"-c:v", "libx264",
		"-t", strconv.FormatFloat(duration, 'f', -1, 64),
		"-pix_fmt", "yuv420p",
		"-vf", "scale=1920:1080",
		"-c:a", "aac",
		clipPath,
	}, "")
	if err != nil {
		f.logger.ErrorWithFields(err, "Failed to create scene clip", map[string]interface{}{
			"scene": scene.Number,
		})
		return &domain.AssemblyError{Step: domain.StepSceneClip, Cause: err}
	}

	return nil
}

func (f *ffmpegAssembler) probeAudioDuration(ctx context.Context, audioPath string) (float64, error) {
	stdout, _, err := f.runner.Run(ctx, f.mediaConfig.FFprobeBin, []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		audioPath,
	}, "")
	if err != nil {
		f.logger.Error(err, "Failed to probe audio duration")
		return 0, &domain.AssemblyError{Step: domain.StepProbeDuration, Cause: err}
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(stdout, &probe); err != nil {
		f.logger.Error(err, "Failed to parse ffprobe output")
		return 0, &domain.AssemblyError{Step: domain.StepProbeDuration, Cause: err}
	}

	duration, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		f.logger.Error(err, "Failed to parse audio duration")
		return 0, &domain.AssemblyError{Step: domain.StepProbeDuration, Cause: err}
	}

	return duration, nil
}

func (f *ffmpegAssembler) concatenateClips(ctx context.Context, clipPaths []string, outputPath string) error {
	manifestPath := filepath.Join(f.mediaConfig.TempDir, uuid.NewString()+".txt")
	if err := f.writeManifest(manifestPath, clipPaths); err != nil {
		f.logger.Error(err, "Failed to write concat manifest")
		return &domain.AssemblyError{Step: domain.StepConcatenate, Cause: err}
	}

	defer func() {
		if err := os.Remove(manifestPath); err != nil {
			f.logger.Error(err, "Failed to remove concat manifest")
		}
	}()

	_, _, err := f.runner.Run(ctx, f.mediaConfig.FFmpegBin, []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", manifestPath,
		"-c", "copy",
		outputPath,
	}, "")
	if err != nil {
		f.logger.Error(err, "Failed to concatenate scene clips")
		return &domain.AssemblyError{Step: domain.StepConcatenate, Cause: err}
	}

	return nil
}

func (f *ffmpegAssembler) writeManifest(manifestPath string, clipPaths []string) error {
	manifest, err := os.Create(manifestPath)
	if err != nil {
		return err
	}

	defer func(manifest *os.File) {
		err := manifest.Close()
		if err != nil {
			f.logger.Error(err, "Failed to close concat manifest")
		}
	}(manifest)

	writer := bufio.NewWriter(manifest)
	for _, clip := range clipPaths {
		absPath, err := filepath.Abs(clip)
		if err != nil {
			return err
		}
		// Single-quote per ffmpeg's concat demuxer convention; embedded
		// quotes become '\''.
		quoted := strings.ReplaceAll(absPath, "'", `'\''`)
		if _, err := writer.WriteString("file '" + quoted + "'\n"); err != nil {
			return err
		}
	}

	return writer.Flush()
}

func (f *ffmpegAssembler) OverlayMusic(ctx context.Context, videoPath string, musicPath string, outputPath string, volume float64) (string, error) {
	filterGraph := fmt.Sprintf("[1:a]volume=%g[music];[0:a][music]amix=inputs=2:duration=first", volume)

	_, _, err := f.runner.Run(ctx, f.mediaConfig.FFmpegBin, []string{
		"-y",
		"-i", videoPath,
		"-i", musicPath,
		"-filter_complex", filterGraph,
		"-c:v", "copy",
		"-c:a", "aac",
		outputPath,
	}, "")
	if err != nil {
		f.logger.Error(err, "Failed to overlay background music")
		return "", &domain.AssemblyError{Step: domain.StepOverlayMusic, Cause: err}
	}

	return outputPath, nil
}
