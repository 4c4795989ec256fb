package domain

type JobStatus string

const (
	JobStarted    JobStatus = "started"
	JobProcessing JobStatus = "processing"
	JobCompleted  JobStatus = "completed"
	JobFailed     JobStatus = "failed"
)

// Job tracks one story-to-video request through its lifecycle. A Job is
// mutated only by the orchestration unit that owns it; everyone else reads
// snapshots out of the store.
type Job struct {
	ID       string    `json:"job_id"`
	Status   JobStatus `json:"status"`
	Progress float64   `json:"progress"`
	Message  string    `json:"message"`
	VideoURL string    `json:"video_url,omitempty"`
	Scenes   []Scene   `json:"scenes"`
}

func NewJob(id string) Job {
	return Job{
		ID:      id,
		Status:  JobStarted,
		Message: "Processing story...",
		Scenes:  []Scene{},
	}
}

// Terminal reports whether no further status transitions can occur.
func (j Job) Terminal() bool {
	return j.Status == JobCompleted || j.Status == JobFailed
}

// Scene is one narrative fragment and the media derived from it. Number is
// 1-based and assigned at segmentation time.
type Scene struct {
	Number       int    `json:"scene_number"`
	OriginalText string `json:"original_text"`
	Script       string `json:"script"`
	ImagePath    string `json:"image_path"`
	AudioPath    string `json:"audio_path"`
}
