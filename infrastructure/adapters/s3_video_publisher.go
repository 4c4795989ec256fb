package adapters

import (
	"context"
	"fmt"
	"os"
	"web-video-creator/application/ports/outbound"
	"web-video-creator/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

type s3VideoPublisher struct {
	logger   outbound.LoggerPort
	s3Svc    *s3.S3
	s3Config *config.S3Config
}

func NewS3VideoPublisher(logger outbound.LoggerPort, s3Config *config.S3Config) (outbound.VideoPublisherPort, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(s3Config.Region)})
	if err != nil {
		logger.Error(err, "Failed to create AWS session")
		return nil, err
	}
	return &s3VideoPublisher{
		logger:   logger,
		s3Svc:    s3.New(sess),
		s3Config: s3Config,
	}, nil
}

func (s *s3VideoPublisher) Publish(ctx context.Context, jobID string, videoPath string) (string, error) {
	file, err := os.Open(videoPath)
	if err != nil {
		s.logger.Error(err, "Failed to open video file for publishing")
		return "", err
	}

	defer func(file *os.File) {
		err := file.Close()
		if err != nil {
			s.logger.Error(err, "Failed to close video file")
		}
	}(file)

	key := fmt.Sprintf("videos/%s.mp4", jobID)

	putInput := &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        file,
		ContentType: aws.String("video/mp4"),
	}

	_, err = s.s3Svc.PutObjectWithContext(ctx, putInput)
	if err != nil {
		s.logger.Error(err, "Failed to upload video to S3")
		return "", err
	}

	s.logger.InfoWithFields("Published video to S3", map[string]interface{}{
		"bucket": s.s3Config.BucketName,
		"key":    key,
	})

	return key, nil
}
