package resources

import (
	"context"
	"slices"
	"sync"
)

// MemoryRepository is an in-memory Repository used by tests and dry runs.
type MemoryRepository struct {
	mu      sync.RWMutex
	records map[int64]*Resource
	nextID  int64
}

var _ Repository = (*MemoryRepository)(nil)

// NewMemoryRepository returns a repository preloaded with seed.
func NewMemoryRepository(seed ...*Resource) *MemoryRepository {
	m := &MemoryRepository{
		records: make(map[int64]*Resource),
	}
	for _, record := range seed {
		if record == nil {
			continue
		}
		m.store(record.Clone())
	}
	return m
}

func (m *MemoryRepository) FindRecord(_ context.Context, alias string, parentID, templateID int64) (*Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, id := range m.sortedIDs() {
		record := m.records[id]
		if record.Alias == alias && record.Parent == parentID && record.Template == templateID {
			return record.Clone(), nil
		}
	}
	return nil, &NotFoundError{Key: recordKey(alias, parentID, templateID)}
}

func (m *MemoryRepository) FindParent(_ context.Context, id int64) (*Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, &NotFoundError{Key: idKey(id)}
	}
	return record.Clone(), nil
}

func (m *MemoryRepository) NewRecord() *Resource {
	return &Resource{}
}

func (m *MemoryRepository) Save(_ context.Context, record *Resource) error {
	if record == nil {
		return ErrResourceRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if record.IsNew() {
		m.nextID++
		record.ID = m.nextID
		m.store(record.Clone())
		return nil
	}
	if _, ok := m.records[record.ID]; !ok {
		return &NotFoundError{Key: idKey(record.ID)}
	}
	m.store(record.Clone())
	return nil
}

// List returns every stored resource ordered by ID.
func (m *MemoryRepository) List(_ context.Context) ([]*Resource, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Resource, 0, len(m.records))
	for _, id := range m.sortedIDs() {
		out = append(out, m.records[id].Clone())
	}
	return out, nil
}

// store must be called with the write lock held or during construction.
func (m *MemoryRepository) store(record *Resource) {
	if record.ID == 0 {
		m.nextID++
		record.ID = m.nextID
	}
	if record.ID > m.nextID {
		m.nextID = record.ID
	}
	m.records[record.ID] = record
}

func (m *MemoryRepository) sortedIDs() []int64 {
	ids := make([]int64, 0, len(m.records))
	for id := range m.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
