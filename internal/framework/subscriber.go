package framework

import (
	"context"
	"sync"
	"time"
)

// Subscriber pulls messages from the queue and hands them to the processor
type Subscriber struct {
	cfg        *SubscriberConfig
	source     MessageSource
	logger     Logger
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewSubscriber creates a subscriber
func NewSubscriber(cfg *SubscriberConfig, source MessageSource, logger Logger) *Subscriber {
	return &Subscriber{
		cfg:    cfg,
		source: source,
		logger: logger,
	}
}

// Start launches the pull loops; they stop when Stop is called or parentCtx ends
func (s *Subscriber) Start(parentCtx context.Context, inputChan chan<- *Message) {
	ctx, cancel := context.WithCancel(parentCtx)
	s.cancelFunc = cancel

	s.logger.Infof(ctx, "[Subscriber] Starting %d pullers for queue %s", s.cfg.Concurrency, s.cfg.QueueName)

	for i := 0; i < s.cfg.Concurrency; i++ {
		s.wg.Add(1)
		go s.loop(ctx, i, inputChan)
	}
}

// Stop stops pulling new messages
func (s *Subscriber) Stop() {
	s.logger.Infof(context.Background(), "[Subscriber] Stopping")
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
}

// Wait blocks until every pull loop has returned
func (s *Subscriber) Wait() {
	s.wg.Wait()
	s.logger.Infof(context.Background(), "[Subscriber] All pullers exited")
}

func (s *Subscriber) loop(ctx context.Context, id int, inputChan chan<- *Message) {
	defer s.wg.Done()

	for {
		if ctx.Err() != nil {
			s.logger.Infof(ctx, "[Subscriber-%d] Context cancelled, exiting", id)
			return
		}

		msg, err := s.source.Consume(s.cfg.QueueName, s.cfg.Timeout, s.cfg.TTR)
		if err != nil {
			s.logger.Warnf(ctx, "[Subscriber-%d] Consume error: %v, retrying", id, err)
			if !sleep(ctx, s.cfg.ErrorBackoff) {
				return
			}
			continue
		}

		// long poll timed out
		if msg == nil {
			continue
		}

		select {
		case inputChan <- msg:
			s.logger.Debugf(ctx, "[Subscriber-%d] Message sent: %s", id, msg.ID)
		case <-ctx.Done():
			// not acked, lmstfy redelivers it after TTR
			s.logger.Warnf(ctx, "[Subscriber-%d] Dropping message on shutdown: %s", id, msg.ID)
			return
		}

		if !sleep(ctx, s.cfg.Rate) {
			return
		}
	}
}

// sleep waits d unless ctx ends first; false means ctx ended
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
