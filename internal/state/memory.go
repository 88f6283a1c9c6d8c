package state

import "sync"

// MemStore is an in-memory Store. It backs tests and one-shot commands that
// must not touch the on-disk state.
type MemStore struct {
	mu     sync.Mutex
	values map[string][]byte
	subs   map[string]map[int]func(string)
	nextID int
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		values: make(map[string][]byte),
		subs:   make(map[string]map[int]func(string)),
	}
}

func (s *MemStore) Get(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false
	}
	cp := make([]byte, len(v))
	copy(cp, v)
	return cp, true
}

func (s *MemStore) Set(key string, value []byte) error {
	s.mu.Lock()
	cp := make([]byte, len(value))
	copy(cp, value)
	s.values[key] = cp
	fns := s.subscribers(key)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
	return nil
}

func (s *MemStore) Delete(key string) error {
	s.mu.Lock()
	delete(s.values, key)
	fns := s.subscribers(key)
	s.mu.Unlock()

	for _, fn := range fns {
		fn(key)
	}
	return nil
}

func (s *MemStore) Subscribe(key string, fn func(string)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs[key] == nil {
		s.subs[key] = make(map[int]func(string))
	}
	id := s.nextID
	s.nextID++
	s.subs[key][id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[key], id)
	}
}

// subscribers snapshots the callbacks for key. Caller must hold s.mu.
func (s *MemStore) subscribers(key string) []func(string) {
	fns := make([]func(string), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	return fns
}
