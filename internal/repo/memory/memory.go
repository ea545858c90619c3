package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/netwatchdog/internal/domain"
	"github.com/hamed0406/netwatchdog/internal/repo"
)

const DefaultCapacity = 100

// Store keeps the most recent results in a fixed-size ring plus the latest
// status snapshot. The monitor writes, the status API reads.
type Store struct {
	mu     sync.RWMutex
	ring   []domain.ProbeResult
	next   int
	full   bool
	seq    uint64
	status domain.Status
}

func New(capacity int) *Store {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &Store{ring: make([]domain.ProbeResult, capacity)}
}

// Append stores r, assigning it the next sequence number.
func (m *Store) Append(ctx context.Context, r domain.ProbeResult) (domain.ProbeResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	r.Seq = m.seq
	m.ring[m.next] = r
	m.next = (m.next + 1) % len(m.ring)
	if m.next == 0 {
		m.full = true
	}
	return r, nil
}

// Recent returns up to limit results, newest first. limit <= 0 means all.
func (m *Store) Recent(ctx context.Context, limit int) ([]domain.ProbeResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := m.next
	if m.full {
		n = len(m.ring)
	}
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.ProbeResult, 0, limit)
	for i := 1; i <= limit; i++ {
		idx := (m.next - i + len(m.ring)) % len(m.ring)
		out = append(out, m.ring[idx])
	}
	return out, nil
}

func (m *Store) SetStatus(ctx context.Context, s domain.Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = s
	return nil
}

func (m *Store) Status(ctx context.Context) (domain.Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status, nil
}

var _ repo.ResultStore = (*Store)(nil)
var _ repo.StatusStore = (*Store)(nil)
