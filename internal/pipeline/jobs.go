package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/dgallion1/numthm/internal/book"
)

// JobStatus represents the state of a book transformation job.
type JobStatus string

const (
	StatusQueued       JobStatus = "queued"
	StatusIngesting    JobStatus = "ingesting"
	StatusTransforming JobStatus = "transforming"
	StatusPublishing   JobStatus = "publishing"
	StatusCompleted    JobStatus = "completed"
	StatusFailed       JobStatus = "failed"
	StatusPartial      JobStatus = "partial"
)

// Job tracks the state of a single book transformation.
type Job struct {
	mu sync.Mutex

	ID     string `json:"job_id"`
	BookID string `json:"book_id"`

	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`

	// Prefix captures the hierarchical-numbering option at submit time.
	Prefix bool `json:"prefix"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData []byte
	result   *book.Book
	warnings []book.Warning
}

// Progress tracks transformation progress and outcome counts.
type Progress struct {
	Chapters      int      `json:"chapters"`
	Environments  int      `json:"environments"`
	LabelsDefined int      `json:"labels_defined"`
	RefsResolved  int      `json:"refs_resolved"`
	Warnings      int      `json:"warnings"`
	Errors        []string `json:"errors"`
}

// NewJob creates a queued job for an uploaded book.
func NewJob(bookID, filename string, prefix bool) *Job {
	now := time.Now()
	return &Job{
		ID:        NewID(),
		BookID:    bookID,
		Status:    StatusQueued,
		Phase:     "queued",
		Filename:  filename,
		Prefix:    prefix,
		CreatedAt: now,
		UpdatedAt: now,
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
	j.Progress.Errors = append(j.Progress.Errors, err)
	j.UpdatedAt = time.Now()
}

// SetCounts records the transformation outcome counts.
func (j *Job) SetCounts(chapters, environments, labels, refs, warnings int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.Chapters = chapters
	j.Progress.Environments = environments
	j.Progress.LabelsDefined = labels
	j.Progress.RefsResolved = refs
	j.Progress.Warnings = warnings
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw upload bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw upload bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// SetResult stores the transformed book and its warnings, and drops the
// upload bytes which are no longer needed.
func (j *Job) SetResult(b *book.Book, warnings []book.Warning) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.result = b
	j.warnings = warnings
	j.fileData = nil
	j.UpdatedAt = time.Now()
}

// Result returns the transformed book and warnings, or nil before the
// transformation has completed.
func (j *Job) Result() (*book.Book, []book.Warning) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.result, j.warnings
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	BookID   string    `json:"book_id"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Filename string    `json:"filename"`
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
		ID:       j.ID,
		BookID:   j.BookID,
		Status:   j.Status,
		Phase:    j.Phase,
		Filename: j.Filename,
		Progress: Progress{
			Chapters:      j.Progress.Chapters,
			Environments:  j.Progress.Environments,
			LabelsDefined: j.Progress.LabelsDefined,
			RefsResolved:  j.Progress.RefsResolved,
			Warnings:      j.Progress.Warnings,
			Errors:        errs,
		},
	}
}

// ContentHashHex computes SHA-256 of content and returns hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
