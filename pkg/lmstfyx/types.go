package lmstfyx

import (
	"context"

	"github.com/bitleak/lmstfy/client"
)

// Proc business entry point invoked by the processor for every job
type Proc func(ctx context.Context, job *client.Job) *JobResp

// JobRespStatus what the processor should do with the job afterwards
type JobRespStatus int

const (
	// JobRespStatusSuccess ack the job
	JobRespStatusSuccess JobRespStatus = iota
	// JobRespStatusRelease leave the job un-acked so lmstfy redelivers it after TTR
	JobRespStatusRelease
	// JobRespStatusBury ack and drop; the failure is permanent
	JobRespStatusBury
)

func (s JobRespStatus) String() string {
	switch s {
	case JobRespStatusSuccess:
		return "success"
	case JobRespStatusRelease:
		return "release"
	case JobRespStatusBury:
		return "bury"
	default:
		return "unknown"
	}
}

// JobResp processing outcome
type JobResp struct {
	Action JobRespStatus
	Data   []byte
}
