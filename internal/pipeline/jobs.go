package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/tocmap/internal/match"
	"github.com/dgallion1/tocmap/internal/outline"
)

// JobStatus represents the state of an import job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusReadingTOC JobStatus = "reading_toc"
	StatusMapping    JobStatus = "mapping"
	StatusResolving  JobStatus = "resolving"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusCancelled  JobStatus = "cancelled"
)

// ResolvedEntry pairs an input entry with its resolution, in input order.
type ResolvedEntry struct {
	Title      string           `json:"title"`
	Level      int              `json:"level"`
	PageIndex  int              `json:"page_index"`
	Confidence match.Confidence `json:"confidence"`
}

// Job tracks the state of a single resolution run. Serialization goes
// through JobView, never through Job itself.
type Job struct {
	mu sync.Mutex

	ID       string
	Status   JobStatus
	Phase    string
	Filename string

	Progress Progress

	CreatedAt time.Time
	UpdatedAt time.Time

	Errors []string

	// Internal: not serialized.
	pdfData  []byte
	entries  []outline.Entry // normalized raw entries once known
	tocRange string          // page-range selector for the printed TOC; empty when entries were supplied
	results  []ResolvedEntry
	cancel   func()
}

// NewJob creates a queued job. Exactly one of entries or tocRange should
// be set: either the caller supplied extracted entries, or the LLM will
// read the printed TOC pages named by the range.
func NewJob(filename string, pdfData []byte, entries []outline.Entry, tocRange string) *Job {
	now := time.Now()
	return &Job{
		ID:        generateULID(),
		Status:    StatusQueued,
		Filename:  filename,
		CreatedAt: now,
		UpdatedAt: now,
		pdfData:   pdfData,
		entries:   entries,
		tocRange:  tocRange,
	}
}

// Progress tracks page extraction and entry resolution counts.
type Progress struct {
	PagesExtracted int `json:"pages_extracted"`
	TotalPages     int `json:"total_pages"`
	TotalEntries   int `json:"total_entries"`
}

func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

func (j *Job) SetPageProgress(done, total int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.PagesExtracted = done
	j.Progress.TotalPages = total
	j.UpdatedAt = time.Now()
}

func (j *Job) AddError(msg string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Errors = append(j.Errors, msg)
	j.UpdatedAt = time.Now()
}

// SetResults publishes the completed resolution. Nothing is stored on a
// failed or cancelled run.
func (j *Job) SetResults(results []ResolvedEntry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.results = results
	j.Progress.TotalEntries = len(results)
	j.UpdatedAt = time.Now()
}

// Results returns the resolved entries, or nil if the job has not
// completed.
func (j *Job) Results() []ResolvedEntry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.results
}

// SetEntries records the normalized raw entries once known (parsed from
// the payload or read by the LLM), so they can be exported even while
// resolution is still running.
func (j *Job) SetEntries(entries []outline.Entry) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = entries
	j.UpdatedAt = time.Now()
}

// EntryList returns the raw entries in exportable form, independent of
// resolution results.
func (j *Job) EntryList() []outline.Entry {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.entries
}

// Cancel aborts a running job.
func (j *Job) Cancel() {
	j.mu.Lock()
	cancel := j.cancel
	j.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// JobView is a point-in-time copy of a job's public state.
type JobView struct {
	ID        string    `json:"job_id"`
	Status    JobStatus `json:"status"`
	Phase     string    `json:"phase"`
	Filename  string    `json:"filename"`
	Progress  Progress  `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Errors    []string  `json:"errors,omitempty"`
}

// Snapshot returns a copy safe for serialization.
func (j *Job) Snapshot() JobView {
	j.mu.Lock()
	defer j.mu.Unlock()
	return JobView{
		ID:        j.ID,
		Status:    j.Status,
		Phase:     j.Phase,
		Filename:  j.Filename,
		Progress:  j.Progress,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
		Errors:    append([]string(nil), j.Errors...),
	}
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
		job.mu.Lock()
		updated := job.UpdatedAt
		job.mu.Unlock()
		if now.Sub(updated) > s.ttl {
			delete(s.jobs, id)
		}
	}
}
