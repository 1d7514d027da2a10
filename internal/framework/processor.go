package framework

import (
	"context"
	"sync"
	"time"

	"github.com/bitleak/lmstfy/client"

	"retailos/pkg/lmstfyx"
	"retailos/pkg/logger"
)

// Processor runs the business proc for every message and settles the job
type Processor struct {
	cfg        *ProcessorConfig
	proc       lmstfyx.Proc
	source     MessageSource
	logger     Logger
	shutdownCh chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

// NewProcessor creates a processor; source is used to ack settled jobs
func NewProcessor(cfg *ProcessorConfig, proc lmstfyx.Proc, source MessageSource, logger Logger) *Processor {
	return &Processor{
		cfg:        cfg,
		proc:       proc,
		source:     source,
		logger:     logger,
		shutdownCh: make(chan struct{}),
	}
}

// Start launches the handling goroutines
func (p *Processor) Start(ctx context.Context, inputChan <-chan *Message) {
	p.logger.Infof(ctx, "[Processor] Starting with %d workers", p.cfg.Concurrency)

	for i := 0; i < p.cfg.Concurrency; i++ {
		p.wg.Add(1)
		go p.loop(ctx, i, inputChan)
	}
}

// SignalShutdown switches every loop into drain mode
func (p *Processor) SignalShutdown() {
	p.once.Do(func() {
		p.logger.Infof(context.Background(), "[Processor] Shutdown signal received")
		close(p.shutdownCh)
	})
}

// Wait blocks until every loop has drained and returned
func (p *Processor) Wait() {
	p.wg.Wait()
	p.logger.Infof(context.Background(), "[Processor] All workers exited")
}

func (p *Processor) loop(ctx context.Context, workerID int, inputChan <-chan *Message) {
	defer p.wg.Done()

	for {
		select {
		case msg := <-inputChan:
			p.process(ctx, msg, workerID)

		case <-p.shutdownCh:
			count := 0
			for {
				select {
				case msg := <-inputChan:
					p.process(ctx, msg, workerID)
					count++
				default:
					p.logger.Infof(ctx, "[Processor-%d] Drained %d messages, exiting", workerID, count)
					return
				}
			}
		}
	}
}

func (p *Processor) process(ctx context.Context, msg *Message, workerID int) {
	if msg == nil {
		return
	}

	start := time.Now()
	procCtx, cancel := context.WithTimeout(ctx, p.cfg.Timeout)
	defer cancel()
	procCtx = logger.WithWorkerID(procCtx, workerID)

	resp := p.proc(procCtx, &client.Job{
		ID:    msg.ID,
		Queue: msg.Queue,
		Data:  msg.Data,
	})
	if resp == nil {
		resp = &lmstfyx.JobResp{Action: lmstfyx.JobRespStatusBury}
	}

	p.settle(procCtx, msg, resp.Action)
	p.logger.Infof(procCtx, "[Processor-%d] Message %s settled: action=%s duration=%v",
		workerID, msg.ID, resp.Action, time.Since(start))
}

// settle acks success and bury; release leaves the job for redelivery after TTR
func (p *Processor) settle(ctx context.Context, msg *Message, action lmstfyx.JobRespStatus) {
	if action == lmstfyx.JobRespStatusRelease {
		return
	}
	if err := p.source.Ack(msg.Queue, msg.ID); err != nil {
		p.logger.Errorf(ctx, "Ack %s failed: %v", msg.ID, err)
	}
}
