package advisor

// Store exposes advisor retrieval for services and HTTP handlers.
type Store interface {
	List() []Advisor
	FindByID(id string) (Advisor, bool)
}

// MemoryStore implements Store with an in-memory slice.
type MemoryStore struct {
	items []Advisor
}

// NewMemoryStore returns a MemoryStore preloaded with the supplied advisors.
func NewMemoryStore(items []Advisor) *MemoryStore {
	return &MemoryStore{items: append([]Advisor(nil), items...)}
}

// List returns the configured advisor list.
func (s *MemoryStore) List() []Advisor {
	return append([]Advisor(nil), s.items...)
}

// FindByID looks up an advisor by identifier.
func (s *MemoryStore) FindByID(id string) (Advisor, bool) {
	for _, item := range s.items {
		if item.ID == id {
			return item, true
		}
	}
	return Advisor{}, false
}
