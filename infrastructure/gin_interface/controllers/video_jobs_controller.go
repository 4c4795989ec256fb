package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"web-video-creator/application/ports/inbound"
	"web-video-creator/application/ports/outbound"
	"web-video-creator/domain"
	"web-video-creator/infrastructure/gin_interface/dto"

	"github.com/gin-gonic/gin"
)

type VideoJobsController interface {
	CreateVideo(c *gin.Context)
	JobStatus(c *gin.Context)
	DownloadVideo(c *gin.Context)
	DeleteJob(c *gin.Context)
	RegisterRoutes(g *gin.Engine)
}

type videoJobsController struct {
	logger       outbound.LoggerPort
	orchestrator inbound.JobOrchestratorPort
}

func NewVideoJobsController(logger outbound.LoggerPort, orchestrator inbound.JobOrchestratorPort) VideoJobsController {
	return &videoJobsController{
		logger:       logger,
		orchestrator: orchestrator,
	}
}

func (v *videoJobsController) CreateVideo(c *gin.Context) {
	var req dto.CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	jobID, err := v.orchestrator.CreateJob(inbound.CreateJobParams{
		Story: req.Story,
		Style: req.Style,
		Voice: req.Voice,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyStory) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		v.logger.Error(err, "Failed to create video job")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dto.CreateVideoResponse{
		JobID:   jobID,
		Message: "Video creation started",
	})
}

func (v *videoJobsController) JobStatus(c *gin.Context) {
	job, err := v.orchestrator.GetJob(c.Param("jobID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, job)
}

func (v *videoJobsController) DownloadVideo(c *gin.Context) {
	jobID := c.Param("jobID")

	videoPath, err := v.orchestrator.VideoFile(jobID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		case errors.Is(err, domain.ErrVideoNotReady):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Video not ready"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	if _, err := os.Stat(videoPath); err != nil {
		v.logger.Error(err, "Completed job has no video file on disk")
		c.JSON(http.StatusNotFound, gin.H{"error": "Video file not found"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="video_%s.mp4"`, jobID))
	c.Header("Content-Type", "video/mp4")
	c.File(videoPath)
}

func (v *videoJobsController) DeleteJob(c *gin.Context) {
	if err := v.orchestrator.DeleteJob(c.Param("jobID")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

func (v *videoJobsController) RegisterRoutes(g *gin.Engine) {
	g.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "AI Web Video Creator API", "version": "1.0.0"})
	})
	g.POST("/create-video", v.CreateVideo)
	g.GET("/status/:jobID", v.JobStatus)
	g.GET("/download/:jobID", v.DownloadVideo)
	g.DELETE("/job/:jobID", v.DeleteJob)
}
