package responses

import "time"

// PatientEvent is the message published after a patient mutation commits.
type PatientEvent struct {
	EventID    string      `json:"event_id"`
	Type       string      `json:"type"`
	PatientID  string      `json:"patient_id"`
	Patient    interface{} `json:"patient,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

type SnapshotUpload struct {
	Bucket       string `json:"bucket"`
	ObjectName   string `json:"object_name"`
	PatientCount int    `json:"patient_count"`
}
