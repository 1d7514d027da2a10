package common

import (
	"context"
	"encoding/json"

	"retailos/internal/domains/common/job"
	"retailos/internal/domains/common/response"
)

// HandlerServProc builds the handler of one action type from a parsed job
type HandlerServProc func(ctx context.Context, meta *job.Meta, payload json.RawMessage) (HandlerServ, error)

// HandlerServ a ready-to-run job handler
type HandlerServ interface {
	GetProcess() *response.Response
}
