package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-faster/errors"
)

const stateFile = "state.json"

// FileStore persists all keys in a single JSON document on disk, mirroring
// the single localStorage namespace of the original client. The document is
// loaded once at open and rewritten atomically (temp file + rename) after
// every mutation, so a crash never leaves a half-written state file.
//
// One process is assumed per state directory; access within the process is
// serialized by a mutex.
type FileStore struct {
	path string

	mu     sync.Mutex
	values map[string][]byte
	subs   map[string]map[int]func(string)
	nextID int
}

// OpenFileStore opens (or creates) the state document under dir.
func OpenFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, errors.Wrap(err, "create state dir")
	}

	s := &FileStore{
		path:   filepath.Join(dir, stateFile),
		values: make(map[string][]byte),
		subs:   make(map[string]map[int]func(string)),
	}

	raw, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return s, nil
	case err != nil:
		return nil, errors.Wrap(err, "read state file")
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "decode state file")
	}
	for k, v := range doc {
		s.values[k] = []byte(v)
	}
	return s, nil
}

func (s *FileStore) Get(key string) ([]byte, bool) {
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

func (s *FileStore) Set(key string, value []byte) error {
	s.mu.Lock()
	if !json.Valid(value) {
		// Non-JSON values are stored as JSON strings so the document
		// stays a valid single JSON object.
		value, _ = json.Marshal(string(value))
	}
	cp := make([]byte, len(value))
	copy(cp, value)
	s.values[key] = cp
	err := s.flush()
	fns := s.subscribers(key)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	for _, fn := range fns {
		fn(key)
	}
	return nil
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	if _, ok := s.values[key]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.values, key)
	err := s.flush()
	fns := s.subscribers(key)
	s.mu.Unlock()

	if err != nil {
		return err
	}
	for _, fn := range fns {
		fn(key)
	}
	return nil
}

func (s *FileStore) Subscribe(key string, fn func(string)) (cancel func()) {
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

// flush rewrites the state document. Caller must hold s.mu.
func (s *FileStore) flush() error {
	doc := make(map[string]json.RawMessage, len(s.values))
	for k, v := range s.values {
		doc[k] = json.RawMessage(v)
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode state")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return errors.Wrap(err, "write state file")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "replace state file")
	}
	return nil
}

func (s *FileStore) subscribers(key string) []func(string) {
	fns := make([]func(string), 0, len(s.subs[key]))
	for _, fn := range s.subs[key] {
		fns = append(fns, fn)
	}
	return fns
}
