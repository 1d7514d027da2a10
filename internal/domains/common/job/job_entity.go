package job

import "encoding/json"

// Job envelope every queue message carries
type Job struct {
	Payload *JobPayload `json:"payload"`
}

// JobPayload payload wrapper
type JobPayload struct {
	Data *JobPayloadData `json:"data"`
}

// JobPayloadData routing fields plus the raw business data
type JobPayloadData struct {
	RequestID  string          `json:"request_id"`
	OrgID      string          `json:"org_id"`
	ActionType string          `json:"action_type"` // handler map key
	ID         string          `json:"id"`
	Data       json.RawMessage `json:"data"`
}

// Meta routing fields of one job
type Meta struct {
	RequestID  string `json:"request_id"`
	OrgID      string `json:"org_id"`
	ActionType string `json:"action_type"`
	ID         string `json:"id"`
}
