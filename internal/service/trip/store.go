package trip

import (
	"sync"

	"agritrack/internal/entities"
)

// MemoryStore держит привязку в памяти представления.
// Вызывающая сторона переносит ее в cookie сессии после каждого запроса.
type MemoryStore struct {
	mu      sync.RWMutex
	binding *entities.PickupBinding
}

func NewMemoryStore(seed *entities.PickupBinding) *MemoryStore {
	s := &MemoryStore{}
	if seed != nil && seed.Valid() {
		b := *seed
		s.binding = &b
	}
	return s
}

func (s *MemoryStore) Load() (entities.PickupBinding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.binding == nil {
		return entities.PickupBinding{}, false
	}
	return *s.binding, true
}

func (s *MemoryStore) Save(binding entities.PickupBinding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.binding = &binding
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.binding = nil
	return nil
}
