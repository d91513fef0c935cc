package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	coordinator "saludos/internal/coordinator/iface"
	"saludos/internal/domain"
	queue "saludos/internal/queue/iface"
	"saludos/internal/repository"
)

type memoryJobRepo struct {
	mu        sync.Mutex
	jobs      map[string]*domain.Job
	createErr error
	// collisions makes the first N creates fail with ErrJobExists
	collisions int
	creates    int
}

func newMemoryJobRepo() *memoryJobRepo {
	return &memoryJobRepo{jobs: map[string]*domain.Job{}}
}

func (m *memoryJobRepo) Create(_ context.Context, job *domain.Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.creates++
	if m.createErr != nil {
		return m.createErr
	}
	if m.collisions > 0 {
		m.collisions--
		return fmt.Errorf("%w: job_id=%s", repository.ErrJobExists, job.ID)
	}
	if _, ok := m.jobs[job.ID]; ok {
		return repository.ErrJobExists
	}
	copied := *job
	m.jobs[job.ID] = &copied
	return nil
}

func (m *memoryJobRepo) GetByID(_ context.Context, jobID string) (*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", repository.ErrJobNotFound, jobID)
	}
	copied := *job
	return &copied, nil
}

func (m *memoryJobRepo) GetDocument(ctx context.Context, jobID string) (json.RawMessage, error) {
	job, err := m.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(job)
	return json.RawMessage(data), err
}

func (m *memoryJobRepo) ListByStatus(_ context.Context, status domain.JobStatus, limit int) ([]*domain.Job, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Job
	for _, job := range m.jobs {
		if job.Status == status {
			copied := *job
			out = append(out, &copied)
		}
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (m *memoryJobRepo) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.jobs)
}

type memoryQueue struct {
	mu         sync.Mutex
	items      []string
	enqueueErr error
	enqueues   int
}

func (q *memoryQueue) Enqueue(_ context.Context, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.enqueues++
	if q.enqueueErr != nil {
		return q.enqueueErr
	}
	q.items = append(q.items, jobID)
	return nil
}

func (q *memoryQueue) Dequeue(_ context.Context, _ time.Duration) (string, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.items) == 0 {
		return "", queue.ErrEmpty
	}
	head := q.items[0]
	q.items = q.items[1:]
	return head, nil
}

func (q *memoryQueue) Len(_ context.Context) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.items)), nil
}

func (q *memoryQueue) Contains(_ context.Context, jobID string) (bool, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, id := range q.items {
		if id == jobID {
			return true, nil
		}
	}
	return false, nil
}

// opaqueQueue hides the Inspector capability
type opaqueQueue struct{ inner *memoryQueue }

func (o opaqueQueue) Enqueue(ctx context.Context, id string) error { return o.inner.Enqueue(ctx, id) }
func (o opaqueQueue) Dequeue(ctx context.Context, w time.Duration) (string, error) {
	return o.inner.Dequeue(ctx, w)
}
func (o opaqueQueue) Len(ctx context.Context) (int64, error) { return o.inner.Len(ctx) }

type recordingNotifier struct {
	mu  sync.Mutex
	ids []string
}

func (n *recordingNotifier) JobCreated(_ context.Context, jobID string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.ids = append(n.ids, jobID)
}

type fakeCoordinator struct {
	mu      sync.Mutex
	held    map[string]bool
	nodes   map[string][]byte
	lockErr error
}

func newFakeCoordinator() *fakeCoordinator {
	return &fakeCoordinator{held: map[string]bool{}, nodes: map[string][]byte{}}
}

func (f *fakeCoordinator) TryLock(path string, owner []byte) (func() error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	if f.held[path] {
		return nil, coordinator.ErrLockHeld
	}
	f.held[path] = true
	return func() error {
		f.mu.Lock()
		defer f.mu.Unlock()
		delete(f.held, path)
		return nil
	}, nil
}

func (f *fakeCoordinator) GetNode(path string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.nodes[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", coordinator.ErrNodeNotFound, path)
	}
	return data, nil
}

func (f *fakeCoordinator) UpdateNode(path string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nodes[path] = data
	return nil
}

func (f *fakeCoordinator) Close() error { return nil }
