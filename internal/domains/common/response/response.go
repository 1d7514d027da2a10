package response

import (
	"retailos/internal/domains/common/job"
	"retailos/pkg/errorutil"
)

// Response outcome of one handler run
type Response struct {
	Error     *errorutil.Error `json:"error"`
	Result    interface{}      `json:"result"`
	Processed bool             `json:"processed"`
	Meta      *job.Meta        `json:"meta"`
}

// WrapResponse fills the response from the handler result and error
func (r *Response) WrapResponse(result interface{}, meta *job.Meta, err error) {
	r.Processed = err == nil
	r.Meta = meta
	r.Error = errorutil.Wrap(err)
	r.Result = result
}
