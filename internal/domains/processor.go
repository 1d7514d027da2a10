package domains

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bitleak/lmstfy/client"
	"github.com/google/uuid"

	"retailos/internal/domains/common/job"
	"retailos/internal/domains/common/response"
	"retailos/pkg/lmstfyx"
	"retailos/pkg/logger"
)

// GetProcess returns the proc injected into every processor: parse the job,
// route it by action_type, run the handler and map its outcome to a queue action
func GetProcess(log logger.FormatLogger, handlers HandlerMap) lmstfyx.Proc {
	return func(ctx context.Context, lmstfyJob *client.Job) (resp *lmstfyx.JobResp) {
		start := time.Now()

		meta, payload, err := parseJob(lmstfyJob.Data)
		if err != nil {
			log.Errorf(ctx, "[GetProcess] Bury job %s: %v", lmstfyJob.ID, err)
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}

		ctx = logger.WithTraceID(ctx, meta.RequestID)
		ctx = logger.WithActionType(ctx, meta.ActionType)

		newHandler, ok := handlers[meta.ActionType]
		if !ok {
			log.Errorf(ctx, "[GetProcess] No handler for action_type %q, bury job %s", meta.ActionType, lmstfyJob.ID)
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}

		defer func() {
			if r := recover(); r != nil {
				log.Errorf(ctx, "[GetProcess] Handler panic: %v", r)
				resp = &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
			}
			log.Infof(ctx, "[GetProcess] Job %s done: action=%s duration=%v", lmstfyJob.ID, resp.Action, time.Since(start))
		}()

		handler, err := newHandler(ctx, meta, payload)
		if err != nil {
			log.Errorf(ctx, "[GetProcess] Build handler failed: %v", err)
			return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
		}

		return doJobReport(ctx, handler.GetProcess(), log)
	}
}

func parseJob(raw []byte) (*job.Meta, json.RawMessage, error) {
	var j job.Job
	if err := json.Unmarshal(raw, &j); err != nil {
		return nil, nil, fmt.Errorf("json unmarshal failed: %w", err)
	}
	if j.Payload == nil || j.Payload.Data == nil {
		return nil, nil, fmt.Errorf("invalid job structure: payload.data is nil")
	}

	data := j.Payload.Data
	meta := &job.Meta{
		RequestID:  data.RequestID,
		OrgID:      data.OrgID,
		ActionType: data.ActionType,
		ID:         data.ID,
	}
	if meta.RequestID == "" {
		meta.RequestID = uuid.New().String()
	}
	return meta, data.Data, nil
}

// doJobReport success acks, a retryable error releases, anything else buries
func doJobReport(ctx context.Context, resp *response.Response, log logger.FormatLogger) *lmstfyx.JobResp {
	data, err := json.Marshal(resp)
	if err != nil {
		log.Errorf(ctx, "[doJobReport] Marshal response failed: %v", err)
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
	}

	switch {
	case resp.Error == nil:
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusSuccess, Data: data}
	case resp.Error.Retryable:
		log.Warnf(ctx, "[doJobReport] Retryable failure, leaving job for redelivery: %s", resp.Error.Message)
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusRelease, Data: data}
	default:
		log.Errorf(ctx, "[doJobReport] Permanent failure: %s", resp.Error.Message)
		return &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury, Data: data}
	}
}
