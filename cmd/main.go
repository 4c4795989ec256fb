package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"web-video-creator/application/ports/outbound"
	"web-video-creator/application/services"
	"web-video-creator/config"
	"web-video-creator/infrastructure/adapters"
	"web-video-creator/infrastructure/gin_interface/controllers"
	"web-video-creator/middleware"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, relying on process environment")
	}

	openAIConfig, err := config.GetOpenAIConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get OpenAI config")
	}

	mediaConfig, err := config.GetMediaConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get media config")
	}

	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	if err := os.MkdirAll(mediaConfig.TempDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create temp directory")
	}
	if err := os.MkdirAll(mediaConfig.OutputDir, 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create output directory")
	}

	zeroLogger := adapters.NewZerologWrapper()

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(serverConfig.WorkerPoolSize, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	baseCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	contentFetcher := adapters.NewContentFetcher(zeroLogger)
	contentGenerator := adapters.NewOpenAIContentGenerator(contentFetcher, openAIConfig, zeroLogger)

	processRunner := adapters.NewExecProcessRunner(zeroLogger)
	assembler := adapters.NewFFmpegAssembler(processRunner, mediaConfig, zeroLogger)

	// Remote publishing is optional; without S3 config the video stays
	// local-only.
	var publisher outbound.VideoPublisherPort
	if s3Config, err := config.GetS3Config(); err == nil {
		publisher, err = adapters.NewS3VideoPublisher(zeroLogger, s3Config)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create S3 publisher")
		}
	} else {
		zeroLogger.Info("S3 publishing disabled: " + err.Error())
	}

	jobStore := adapters.NewMemoryJobStore()
	segmenter := services.NewStorySegmenter(contentGenerator, zeroLogger)
	sceneProcessor := services.NewSceneProcessor(segmenter, contentGenerator, zeroLogger)

	orchestrator := services.NewJobOrchestrator(baseCtx, jobStore, segmenter, sceneProcessor,
		assembler, publisher, mediaConfig, workerPool, zeroLogger)

	videoJobsController := controllers.NewVideoJobsController(zeroLogger, orchestrator)

	router := gin.Default()

	if err := router.SetTrustedProxies(nil); err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	router.Use(middleware.CORSMiddleware())

	videoJobsController.RegisterRoutes(router)

	if err := router.Run(fmt.Sprintf(":%d", serverConfig.Port)); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
