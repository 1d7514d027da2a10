package framework

import "time"

// Message job flowing from the subscriber to the processor
type Message struct {
	ID    string
	Queue string
	Data  []byte
}

// SubscriberConfig pull side of one worker
type SubscriberConfig struct {
	QueueName    string
	Concurrency  int
	Timeout      time.Duration // long poll wait
	TTR          time.Duration // redelivery delay of un-acked jobs
	Rate         time.Duration // pause between pulls
	ErrorBackoff time.Duration
}

// ProcessorConfig handling side of one worker
type ProcessorConfig struct {
	Concurrency int
	BufferSize  int
	Timeout     time.Duration // per message
}
