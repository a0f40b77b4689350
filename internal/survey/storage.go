package survey

import (
	"encoding/json"
	"log"
	"os"
	"sync"
)

// Storage is the device-local key/value store backing a questionnaire
// session. Values are JSON-serialized strings under fixed, well-known
// keys. The store is local to one device and is never synchronized.
type Storage interface {
	Get(key string) (string, bool)
	Set(key, value string)
	Delete(key string)
}

type memoryStorage struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemoryStorage returns a Storage that lives only for the current
// process. Suitable for tests and single-run sessions.
func NewMemoryStorage() Storage {
	return &memoryStorage{values: map[string]string{}}
}

func (s *memoryStorage) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *memoryStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

func (s *memoryStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
}

type fileStorage struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// NewFileStorage returns a Storage persisted as a JSON object at path,
// so in-progress answers survive page navigation within a session.
// A missing or unreadable file starts an empty session.
func NewFileStorage(path string) Storage {
	fs := &fileStorage{path: path, values: map[string]string{}}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := json.Unmarshal(data, &fs.values); err != nil {
			log.Printf("session storage: decode %s: %v", path, err)
			fs.values = map[string]string{}
		}
	}
	return fs
}

func (s *fileStorage) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *fileStorage) Set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	s.flush()
}

func (s *fileStorage) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	s.flush()
}

func (s *fileStorage) flush() {
	data, err := json.Marshal(s.values)
	if err != nil {
		log.Printf("session storage: encode: %v", err)
		return
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		log.Printf("session storage: write %s: %v", s.path, err)
	}
}
