package pipeline

import (
	"sync"
	"time"

	"github.com/Dee-Wang-92/Physician-MB/internal/marker"
)

// JobStatus represents the state of a conversion job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusMarking    JobStatus = "marking"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
)

// Job tracks the state of a single schedule conversion.
type Job struct {
	mu sync.Mutex

	ID string `json:"job_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	Progress Progress `json:"progress"`

	ContentHash string    `json:"content_hash,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	output   []string
	errors   []string
}

// Progress tracks conversion progress and the marker tallies of the
// finished output.
type Progress struct {
	TotalPages  int          `json:"total_pages"`
	TotalLines  int          `json:"total_lines"`
	OutputLines int          `json:"output_lines"`
	CacheHit    bool         `json:"cache_hit"`
	Markers     marker.Stats `json:"markers"`
	Errors      []string     `json:"errors"`
}

// NewJob creates a queued job holding the uploaded file bytes.
func NewJob(filename string, data []byte) *Job {
	now := time.Now()
	job := &Job{
		ID:        generateULID(),
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.fileData = data
	return job
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetContentHash records the hash used as the result cache key.
func (j *Job) SetContentHash(hash string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.ContentHash = hash
}

// SetExtracted records the page and line counts of the extraction.
func (j *Job) SetExtracted(pages, lines int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalPages = pages
	j.Progress.TotalLines = lines
	j.UpdatedAt = time.Now()
}

// SetResult stores the marked output with its tallies.
func (j *Job) SetResult(output []string, stats marker.Stats, cacheHit bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.output = output
	j.Progress.OutputLines = len(output)
	j.Progress.Markers = stats
	j.Progress.CacheHit = cacheHit
	j.UpdatedAt = time.Now()
}

// Output returns the marked lines, nil until the job completes.
func (j *Job) Output() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.output
}

// FileData returns the raw file bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID          string    `json:"job_id"`
	Status      JobStatus `json:"status"`
	Phase       string    `json:"phase"`
	Filename    string    `json:"filename"`
	ContentHash string    `json:"content_hash,omitempty"`
	Progress    Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:          j.ID,
		Status:      j.Status,
		Phase:       j.Phase,
		Filename:    j.Filename,
		ContentHash: j.ContentHash,
		Progress: Progress{
			TotalPages:  j.Progress.TotalPages,
			TotalLines:  j.Progress.TotalLines,
			OutputLines: j.Progress.OutputLines,
			CacheHit:    j.Progress.CacheHit,
			Markers:     j.Progress.Markers,
			Errors:      errs,
		},
	}
}
