package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Dee-Wang-92/Physician-MB/internal/config"
	"github.com/Dee-Wang-92/Physician-MB/internal/marker"
	"github.com/Dee-Wang-92/Physician-MB/internal/source"
)

// cachedResult is a finished conversion keyed by content hash, so
// re-uploads of the same schedule skip extraction and marking.
type cachedResult struct {
	Output []string
	Stats  marker.Stats
	Pages  int
	Lines  int
}

// Orchestrator manages the schedule conversion pipeline.
type Orchestrator struct {
	jobs    *JobStore
	queue   chan *Job
	rules   *marker.Ruleset
	cache   *lru.Cache[string, cachedResult]
	totals  *runTotals
	log     *slog.Logger
	cfg     config.Config
	backend source.Backend

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewOrchestrator creates the pipeline. The ruleset is compiled once
// here; a catalogue that does not compile refuses to start.
func NewOrchestrator(cfg config.Config, patterns marker.Patterns, log *slog.Logger) (*Orchestrator, error) {
	rules, err := marker.Compile(patterns)
	if err != nil {
		return nil, fmt.Errorf("compile patterns: %w", err)
	}
	cache, err := lru.New[string, cachedResult](cfg.ResultCacheSize)
	if err != nil {
		return nil, fmt.Errorf("result cache: %w", err)
	}
	backend, err := source.ResolveBackend(cfg.PDFBackend)
	if err != nil {
		return nil, err
	}

	return &Orchestrator{
		jobs:    NewJobStore(cfg.JobTTL),
		queue:   make(chan *Job, cfg.MaxQueueSize),
		rules:   rules,
		cache:   cache,
		totals:  &runTotals{},
		log:     log,
		cfg:     cfg,
		backend: backend,
	}, nil
}

// Rules returns the compiled ruleset shared by the workers.
func (o *Orchestrator) Rules() *marker.Ruleset {
	return o.rules
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := 0; i < o.cfg.WorkerCount; i++ {
		o.wg.Add(1)
		go func() {
			defer o.wg.Done()
			w := newWorker(o.rules, o.cache, o.totals, o.log, o.backend)
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

// Totals returns lifetime conversion counters.
func (o *Orchestrator) Totals() Totals {
	return o.totals.snapshot()
}

// Totals aggregates completed work across all jobs since startup.
type Totals struct {
	JobsCompleted int          `json:"jobs_completed"`
	JobsFailed    int          `json:"jobs_failed"`
	CacheHits     int          `json:"cache_hits"`
	LinesOut      int          `json:"lines_out"`
	Markers       marker.Stats `json:"markers"`
}

type runTotals struct {
	mu sync.Mutex
	t  Totals
}

func (r *runTotals) addCompleted(linesOut int, stats marker.Stats, cacheHit bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t.JobsCompleted++
	if cacheHit {
		r.t.CacheHits++
	}
	r.t.LinesOut += linesOut
	r.t.Markers.Add(stats)
}

func (r *runTotals) addFailed() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t.JobsFailed++
}

func (r *runTotals) snapshot() Totals {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.t
}
