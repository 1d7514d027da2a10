package worker

import (
	"context"

	"retailos/internal/framework"
	"retailos/pkg/lmstfyx"
)

// Worker one queue with its subscriber and processor pair
type Worker interface {
	Start()
	Shutdown()
	GetName() string
}

// WorkerInstance subscriber -> buffered channel -> processor
type WorkerInstance struct {
	ctx        context.Context
	name       string
	subscriber *framework.Subscriber
	processor  *framework.Processor
	inputChan  chan *framework.Message
	logger     framework.Logger
}

// NewWorkerInstance creates a worker; proc is invoked for every message
func NewWorkerInstance(
	ctx context.Context,
	name string,
	subscriberCfg *framework.SubscriberConfig,
	processorCfg *framework.ProcessorConfig,
	source framework.MessageSource,
	proc lmstfyx.Proc,
	log framework.Logger,
) *WorkerInstance {
	return &WorkerInstance{
		ctx:        ctx,
		name:       name,
		subscriber: framework.NewSubscriber(subscriberCfg, source, log),
		processor:  framework.NewProcessor(processorCfg, proc, source, log),
		inputChan:  make(chan *framework.Message, processorCfg.BufferSize),
		logger:     log,
	}
}

// Start launches the processor first so nothing pulled waits on an idle pool
func (w *WorkerInstance) Start() {
	w.processor.Start(w.ctx, w.inputChan)
	w.subscriber.Start(w.ctx, w.inputChan)
	w.logger.Infof(w.ctx, "[Worker] %s started", w.name)
}

// Shutdown stops pulling, waits for pullers, drains the buffer, waits for handlers
func (w *WorkerInstance) Shutdown() {
	w.logger.Infof(w.ctx, "[Worker] %s began to close", w.name)

	w.subscriber.Stop()
	w.subscriber.Wait()
	w.processor.SignalShutdown()
	w.processor.Wait()

	w.logger.Infof(w.ctx, "[Worker] %s shutdown complete", w.name)
}

// GetName worker name from config
func (w *WorkerInstance) GetName() string {
	return w.name
}
