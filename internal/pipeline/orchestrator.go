package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/dgallion1/aaerminer/internal/charstream"
	"github.com/dgallion1/aaerminer/internal/config"
	"github.com/dgallion1/aaerminer/internal/depparse"
	"github.com/dgallion1/aaerminer/internal/docindex"
	"github.com/dgallion1/aaerminer/internal/entity"
	"github.com/dgallion1/aaerminer/internal/filings"
	"github.com/dgallion1/aaerminer/internal/temporal"
)

// Orchestrator manages the document extraction pipeline.
type Orchestrator struct {
	jobs    *JobStore
	queue   chan *Job
	fetcher *Fetcher
	source  charstream.Source
	parser  *depparse.Client
	tparser *temporal.Parser
	guesser *entity.Guesser
	filings *filings.Client
	index   *docindex.Client
	log     *slog.Logger
	cfg     config.Config

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. The shared fetcher paces all
// downloads across workers with a single rate limiter.
func NewOrchestrator(cfg config.Config, tables temporal.Tables, parser *depparse.Client, fc *filings.Client, index *docindex.Client, log *slog.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:    NewJobStore(cfg.JobTTL),
		queue:   make(chan *Job, cfg.MaxQueueSize),
		fetcher: NewFetcher(cfg.FetchRate, cfg.FetchBurst, cfg.MaxDownloadBytes),
		source:  &charstream.PDFSource{},
		parser:  parser,
		tparser: temporal.NewParser(tables),
		guesser: entity.NewGuesser(nil),
		filings: fc,
		index:   index,
		log:     log,
		cfg:     cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := NewWorker(o.fetcher, o.source, o.parser, o.tparser, o.guesser, o.filings, o.index, o.log, o.cfg.ParserMaxChars)
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop gracefully shuts down the pipeline.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
	close(o.queue)
	o.wg.Wait()
}

// NewJob creates a job for a release document.
func (o *Orchestrator) NewJob(docID, url string) *Job {
	now := time.Now()
	return &Job{
		ID:        newJobID(),
		DocID:     docID,
		URL:       url,
		Status:    StatusQueued,
		Phase:     "queued",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.jobs.Put(job)
	select {
	case o.queue <- job:
		return nil
	default:
		job.SetStatus(StatusFailed, "queue_full")
		return fmt.Errorf("job queue is full (%d)", o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// IndexClient returns the document index client for direct use by API handlers.
func (o *Orchestrator) IndexClient() *docindex.Client {
	return o.index
}

// ParserClient returns the dependency parser client, for stats reporting.
func (o *Orchestrator) ParserClient() *depparse.Client {
	return o.parser
}

// Fetcher returns the shared rate-limited fetcher.
func (o *Orchestrator) Fetcher() *Fetcher {
	return o.fetcher
}
