package worker

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/atomic"

	"retailos/internal/framework"
	"retailos/pkg/config"
	"retailos/pkg/lmstfyx"
)

// Manager runs every configured worker until Shutdown
type Manager interface {
	Start() error
	Shutdown()
}

// ManagerInstance Manager backed by config.Workers
type ManagerInstance struct {
	ctx        context.Context
	workers    []Worker
	started    bool
	closing    *atomic.Bool
	shutdownCh chan struct{}
	mu         sync.Mutex
	logger     framework.Logger
}

// NewManagerInstance builds one worker per config entry, all sharing proc
func NewManagerInstance(cfg *config.Config, source framework.MessageSource, proc lmstfyx.Proc, log framework.Logger) (*ManagerInstance, error) {
	ctx := context.Background()
	m := &ManagerInstance{
		ctx:        ctx,
		closing:    atomic.NewBool(false),
		shutdownCh: make(chan struct{}),
		logger:     log,
	}

	for _, wc := range cfg.Workers {
		if wc.QueueName == "" {
			return nil, fmt.Errorf("worker %s: queue_name is required", wc.Name)
		}
		if wc.Subscriber.Threads <= 0 || wc.Processor.Threads <= 0 {
			return nil, fmt.Errorf("worker %s: subscriber and processor threads must be positive", wc.Name)
		}

		subCfg := &framework.SubscriberConfig{
			QueueName:    wc.QueueName,
			Concurrency:  wc.Subscriber.Threads,
			Rate:         wc.Subscriber.Rate,
			Timeout:      wc.Subscriber.Timeout,
			TTR:          wc.Subscriber.TTR,
			ErrorBackoff: wc.Subscriber.ErrorBackoff,
		}
		procCfg := &framework.ProcessorConfig{
			Concurrency: wc.Processor.Threads,
			BufferSize:  wc.Processor.BufferSize,
			Timeout:     wc.Processor.Timeout,
		}
		m.workers = append(m.workers, NewWorkerInstance(ctx, wc.Name, subCfg, procCfg, source, proc, log))
	}

	log.Infof(ctx, "[Manager] Initialized with %d workers", len(m.workers))
	return m, nil
}

// Start starts every worker and blocks until Shutdown completes
func (m *ManagerInstance) Start() error {
	m.mu.Lock()
	if m.closing.Load() {
		m.mu.Unlock()
		return fmt.Errorf("manager is shut down")
	}
	for _, w := range m.workers {
		w.Start()
	}
	m.started = true
	m.mu.Unlock()

	m.logger.Infof(m.ctx, "[Manager] Start success")
	<-m.shutdownCh
	return nil
}

// Shutdown stops every worker gracefully; later calls are no-ops
func (m *ManagerInstance) Shutdown() {
	if !m.closing.CAS(false, true) {
		return
	}
	m.logger.Infof(m.ctx, "[Manager] Began to close")

	m.mu.Lock()
	if m.started {
		for _, w := range m.workers {
			w.Shutdown()
		}
	}
	m.mu.Unlock()

	close(m.shutdownCh)
	m.logger.Infof(m.ctx, "[Manager] Shutdown complete")
}
