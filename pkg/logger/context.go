package logger

import "context"

type ctxKey string

const (
	keyTraceID    ctxKey = "trace_id"
	keyCustomerID ctxKey = "customer_id"
	keyRetailerID ctxKey = "retailer_id"
	keyActionType ctxKey = "action_type"
	keyWorkerID   ctxKey = "worker_id"
)

// WithTraceID attaches a trace id for log correlation
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, keyTraceID, traceID)
}

// TraceID returns the trace id carried by ctx, if any
func TraceID(ctx context.Context) string {
	v, _ := ctx.Value(keyTraceID).(string)
	return v
}

// WithSession attaches the (customer, retailer) pair of a conversation
func WithSession(ctx context.Context, customerID, retailerID string) context.Context {
	ctx = context.WithValue(ctx, keyCustomerID, customerID)
	return context.WithValue(ctx, keyRetailerID, retailerID)
}

// WithActionType attaches the queue job action type
func WithActionType(ctx context.Context, actionType string) context.Context {
	return context.WithValue(ctx, keyActionType, actionType)
}

// WithWorkerID attaches the processor goroutine index
func WithWorkerID(ctx context.Context, workerID int) context.Context {
	return context.WithValue(ctx, keyWorkerID, workerID)
}
