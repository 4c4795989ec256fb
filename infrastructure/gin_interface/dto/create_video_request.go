package dto

type CreateVideoRequest struct {
	Story string `json:"story" binding:"required"`
	Style string `json:"style"`
	Voice string `json:"voice"`
}

type CreateVideoResponse struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}
