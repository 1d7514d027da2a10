package framework

import (
	"time"

	"github.com/bitleak/lmstfy/client"
)

// JobQueue lmstfy side of pkg/lmstfy.Client
type JobQueue interface {
	Consume(queue string, timeout time.Duration, ttr time.Duration) (*client.Job, error)
	Ack(queue string, jobID string) error
}

// LmstfySource adapts lmstfy jobs to framework messages
type LmstfySource struct {
	queue JobQueue
}

// NewLmstfySource creates a MessageSource backed by lmstfy
func NewLmstfySource(queue JobQueue) *LmstfySource {
	return &LmstfySource{queue: queue}
}

func (s *LmstfySource) Consume(queue string, timeout time.Duration, ttr time.Duration) (*Message, error) {
	job, err := s.queue.Consume(queue, timeout, ttr)
	if err != nil || job == nil {
		return nil, err
	}
	return &Message{
		ID:    job.ID,
		Queue: queue,
		Data:  job.Data,
	}, nil
}

func (s *LmstfySource) Ack(queue string, jobID string) error {
	return s.queue.Ack(queue, jobID)
}
