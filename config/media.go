package config

type MediaConfig struct {
	FFmpegBin  string
	FFprobeBin string
	TempDir    string
	OutputDir  string
}

func GetMediaConfig() (*MediaConfig, error) {
	return &MediaConfig{
		FFmpegBin:  getEnvOrDefault("FFMPEG_BIN", "ffmpeg"),
		FFprobeBin: getEnvOrDefault("FFPROBE_BIN", "ffprobe"),
		TempDir:    getEnvOrDefault("TEMP_DIR", "temp"),
		OutputDir:  getEnvOrDefault("OUTPUT_DIR", "outputs"),
	}, nil
}
