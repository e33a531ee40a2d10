// Package store owns the in-memory job store. The store is transient by
// design: jobs live for the life of the process and are lost on restart.
// Every mutation goes through a per-job mutex so concurrent operations on
// the same job id serialize their read-modify-write instead of losing
// updates.
package store

import (
	"sort"
	"sync"

	"github.com/patrickmn/go-cache"

	apperrors "taxinator/internal/errors"
	"taxinator/internal/models"
)

// JobStore holds every job, keyed by job id. Construct one per process with
// New and pass it by handle; there is no package-level store.
type JobStore struct {
	jobs *cache.Cache

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an empty job store. Entries never expire; the administrative
// reset is the only way to discard jobs.
func New() *JobStore {
	return &JobStore{
		jobs:  cache.New(cache.NoExpiration, 0),
		locks: make(map[string]*sync.Mutex),
	}
}

// lockFor returns the mutex guarding a job id, creating it on first use.
func (s *JobStore) lockFor(jobID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[jobID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[jobID] = lock
	}
	return lock
}

// Put stores a new job record.
func (s *JobStore) Put(job *models.Job) {
	lock := s.lockFor(job.JobID)
	lock.Lock()
	defer lock.Unlock()
	s.jobs.Set(job.JobID, job.Clone(), cache.NoExpiration)
}

// Get returns a deep copy of the job, or ErrJobNotFound.
func (s *JobStore) Get(jobID string) (*models.Job, error) {
	entry, ok := s.jobs.Get(jobID)
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	return entry.(*models.Job).Clone(), nil
}

// Update applies fn to the job under its lock. fn receives a private copy;
// the result is stored only if fn returns nil, so a failed operation leaves
// no intermediate observable state.
func (s *JobStore) Update(jobID string, fn func(job *models.Job) error) (*models.Job, error) {
	lock := s.lockFor(jobID)
	lock.Lock()
	defer lock.Unlock()

	entry, ok := s.jobs.Get(jobID)
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}

	job := entry.(*models.Job).Clone()
	if err := fn(job); err != nil {
		return nil, err
	}

	s.jobs.Set(jobID, job, cache.NoExpiration)
	return job.Clone(), nil
}

// List returns copies of every job, ordered by job id. Job ids are
// time-ordered UUIDv7s, so this is creation order.
func (s *JobStore) List() []*models.Job {
	items := s.jobs.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	jobs := make([]*models.Job, 0, len(ids))
	for _, id := range ids {
		jobs = append(jobs, items[id].Object.(*models.Job).Clone())
	}
	return jobs
}

// Count returns the number of stored jobs.
func (s *JobStore) Count() int {
	return s.jobs.ItemCount()
}

// Reset discards every job. Administrative use only, intended for test
// isolation rather than production operation. Per-job locks are retained:
// an Update racing the reset must keep serializing against later writes to
// the same id, and the lock map only ever grows by one mutex per job id
// seen over the process lifetime.
func (s *JobStore) Reset() {
	s.jobs.Flush()
}
