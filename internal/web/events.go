package web

import (
	"encoding/json"

	"github.com/blockedby/jobboard/internal/models"
)

// WebSocket event types
const (
	EventJobPosted = "job.posted"
)

// WSEvent represents a structured WebSocket message
type WSEvent struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// JobPostedPayload is the payload for EventJobPosted
type JobPostedPayload struct {
	JobID    string `json:"job_id"`
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
	JobType  string `json:"job_type"`
}

// JobPostedEvent creates a JSON message announcing a new job posting.
func JobPostedEvent(job *models.Job) []byte {
	evt := WSEvent{
		Type: EventJobPosted,
		Payload: JobPostedPayload{
			JobID:    job.ID,
			Title:    job.Title,
			Company:  job.CompanyName(),
			Location: job.Location,
			JobType:  string(job.JobType),
		},
	}
	b, _ := json.Marshal(evt)
	return b
}
