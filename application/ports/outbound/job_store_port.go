package outbound

import "web-video-creator/domain"

// JobStorePort is the concurrency-safe registry of jobs. Get returns a copy
// and Save replaces the stored record wholesale, so readers never observe a
// half-updated job. The store holds no lock across external calls.
type JobStorePort interface {
	Create(job domain.Job)
	Get(id string) (domain.Job, bool)
	Save(job domain.Job)
	Delete(id string) bool
}
