package session

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// MemoryStore is a process-local Store bounded by capacity and idle age.
// Sessions are ordered by last activity; when full, the least recently
// active session is evicted to make room.
type MemoryStore struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time

	items map[string]*list.Element // id -> element holding *Session
	order *list.List               // front = least recently active

	onEvict func(id string)
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides time.Now, for tests.
func WithClock(now func() time.Time) MemoryOption {
	return func(m *MemoryStore) { m.now = now }
}

// WithEvictHook is called, under the store lock, for every session removed
// by capacity or age.
func WithEvictHook(fn func(id string)) MemoryOption {
	return func(m *MemoryStore) { m.onEvict = fn }
}

// NewMemoryStore creates a store holding at most capacity sessions (0 means
// unbounded) that forgets sessions idle for longer than ttl (0 means never).
func NewMemoryStore(capacity int, ttl time.Duration, opts ...MemoryOption) *MemoryStore {
	m := &MemoryStore{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Create(_ context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purgeExpiredLocked()

	if _, ok := m.items[s.ID]; ok {
		return ErrExists
	}

	for m.capacity > 0 && m.order.Len() >= m.capacity {
		m.removeLocked(m.order.Front())
	}

	stored := s.Clone()
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = m.now()
	}
	m.items[s.ID] = m.order.PushBack(stored)
	return nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.liveLocked(id)
	if !ok {
		return nil, ErrNotFound
	}
	return el.Value.(*Session).Clone(), nil
}

func (m *MemoryStore) Append(_ context.Context, id string, t Turn) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.liveLocked(id)
	if !ok {
		return nil, ErrNotFound
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = m.now()
	}

	s := el.Value.(*Session)
	s.apply(t)
	m.order.MoveToBack(el)
	return s.Clone(), nil
}

func (m *MemoryStore) Len(_ context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.purgeExpiredLocked()
	return m.order.Len(), nil
}

// liveLocked finds id, dropping it first if it has expired.
func (m *MemoryStore) liveLocked(id string) (*list.Element, bool) {
	el, ok := m.items[id]
	if !ok {
		return nil, false
	}
	if m.expiredLocked(el.Value.(*Session)) {
		m.removeLocked(el)
		return nil, false
	}
	return el, true
}

func (m *MemoryStore) expiredLocked(s *Session) bool {
	return m.ttl > 0 && m.now().Sub(s.UpdatedAt) > m.ttl
}

// purgeExpiredLocked walks from the least recently active end and stops at
// the first live session.
func (m *MemoryStore) purgeExpiredLocked() {
	for el := m.order.Front(); el != nil; el = m.order.Front() {
		if !m.expiredLocked(el.Value.(*Session)) {
			return
		}
		m.removeLocked(el)
	}
}

func (m *MemoryStore) removeLocked(el *list.Element) {
	s := m.order.Remove(el).(*Session)
	delete(m.items, s.ID)
	if m.onEvict != nil {
		m.onEvict(s.ID)
	}
}
