package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/aaerminer/internal/document"
)

// JobStatus represents the state of an extraction job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusFetching   JobStatus = "fetching"
	StatusReading    JobStatus = "reading"
	StatusSegmenting JobStatus = "segmenting"
	StatusEntity     JobStatus = "entity"
	StatusFilings    JobStatus = "filings"
	StatusParsing    JobStatus = "parsing"
	StatusInferring  JobStatus = "inferring"
	StatusStoring    JobStatus = "storing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusSkipped    JobStatus = "skipped"
)

// Job tracks the state of a single document extraction.
type Job struct {
	mu sync.Mutex

	ID    string `json:"job_id"`
	DocID string `json:"doc_id"`
	URL   string `json:"url"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *document.Extraction
	errors   []string
}

// Progress tracks processing progress.
type Progress struct {
	Pages        int      `json:"pages"`
	Chars        int      `json:"chars"`
	MentionCount int      `json:"mention_count"`
	Errors       []string `json:"errors"`
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

// SetDocStats records page and character counts from the read phase.
func (j *Job) SetDocStats(pages, chars int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Pages = pages
	j.Progress.Chars = chars
	j.UpdatedAt = time.Now()
}

// SetMentionCount records how many temporal mentions were collected.
func (j *Job) SetMentionCount(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.MentionCount = n
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw document bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw document bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetResult attaches the finished extraction to the job.
func (j *Job) SetResult(ex document.Extraction) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = &ex
	j.UpdatedAt = time.Now()
}

// Result returns the finished extraction, or nil while the job is running.
func (j *Job) Result() *document.Extraction {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	DocID    string    `json:"doc_id"`
	URL      string    `json:"url"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Progress Progress  `json:"progress"`
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
		ID:     j.ID,
		DocID:  j.DocID,
		URL:    j.URL,
		Status: j.Status,
		Phase:  j.Phase,
		Progress: Progress{
			Pages:        j.Progress.Pages,
			Chars:        j.Progress.Chars,
			MentionCount: j.Progress.MentionCount,
			Errors:       errs,
		},
	}
}
