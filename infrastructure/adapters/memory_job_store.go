package adapters

import (
	"sync"
	"web-video-creator/application/ports/outbound"
	"web-video-creator/domain"
)

// memoryJobStore keeps all jobs for the lifetime of the process. Records are
// copied on the way in and out, so the lock never outlives a map operation
// and readers never see a job mid-update.
type memoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]domain.Job
}

func NewMemoryJobStore() outbound.JobStorePort {
	return &memoryJobStore{
		jobs: make(map[string]domain.Job),
	}
}

func (s *memoryJobStore) Create(job domain.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = copyJob(job)
}

func (s *memoryJobStore) Get(id string) (domain.Job, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.Job{}, false
	}
	return copyJob(job), true
}

// Save is a no-op for a deleted job, so deletion wins over an in-flight
// orchestration unit still publishing snapshots.
func (s *memoryJobStore) Save(job domain.Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[job.ID]; ok {
		s.jobs[job.ID] = copyJob(job)
	}
}

func (s *memoryJobStore) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.jobs[id]
	if ok {
		delete(s.jobs, id)
	}
	return ok
}

// copyJob deep-copies the scene slice so the caller's slice and the stored
// one never alias.
func copyJob(job domain.Job) domain.Job {
	scenes := make([]domain.Scene, len(job.Scenes))
	copy(scenes, job.Scenes)
	job.Scenes = scenes
	return job
}
