package framework

import (
	"context"
	"time"
)

// MessageSource queue adapter
type MessageSource interface {
	// Consume blocks until a message arrives or timeout passes; nil message on timeout
	Consume(queue string, timeout time.Duration, ttr time.Duration) (*Message, error)

	// Ack deletes the message from the queue
	Ack(queue string, jobID string) error
}

// Logger printf style logger
type Logger interface {
	Debugf(ctx context.Context, format string, args ...interface{})
	Infof(ctx context.Context, format string, args ...interface{})
	Warnf(ctx context.Context, format string, args ...interface{})
	Errorf(ctx context.Context, format string, args ...interface{})
}
