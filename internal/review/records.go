package review

import (
	"placementdesk/pkg/types"
)

// Store is the in-memory mirror of the applications under review. Replacement
// is identity-preserving: swapping one record leaves every other record
// pointer untouched, so derived views can use cheap pointer equality.
//
// Not safe for concurrent use.
type Store struct {
	records []*types.JobApplication
	index   map[string]int
}

func NewStore() *Store {
	return &Store{index: make(map[string]int)}
}

// Load replaces the full record set.
func (s *Store) Load(records []*types.JobApplication) {
	s.records = make([]*types.JobApplication, len(records))
	copy(s.records, records)
	s.reindex()
}

func (s *Store) reindex() {
	s.index = make(map[string]int, len(s.records))
	for i, record := range s.records {
		s.index[record.ID] = i
	}
}

func (s *Store) Len() int {
	return len(s.records)
}

// Records returns the mirror in load order. The slice is a copy; the records
// are not.
func (s *Store) Records() []*types.JobApplication {
	out := make([]*types.JobApplication, len(s.records))
	copy(out, s.records)
	return out
}

func (s *Store) Get(id string) (*types.JobApplication, bool) {
	if i, ok := s.index[id]; ok {
		return s.records[i], true
	}
	return nil, false
}

func (s *Store) GetByReg(reg string) (*types.JobApplication, bool) {
	for _, record := range s.records {
		if record.Reg == reg {
			return record, true
		}
	}
	return nil, false
}

// Replace swaps in the updated record by ID, preserving position. Returns
// false when the record is not mirrored.
func (s *Store) Replace(updated *types.JobApplication) bool {
	i, ok := s.index[updated.ID]
	if !ok {
		return false
	}
	s.records[i] = updated
	return true
}

// ApplyFieldChange replaces only the named field on the matching record. The
// record is cloned before mutation so earlier field values are never lost and
// other records keep their identity.
func (s *Store) ApplyFieldChange(id, field, raw string) error {
	descriptor, ok := Lookup(field)
	if !ok {
		return types.ErrUnknownField
	}
	if descriptor.Apply == nil {
		return types.ErrFieldImmutable
	}

	record, ok := s.Get(id)
	if !ok {
		return types.ErrApplicationNotFound
	}

	updated := record.Clone()
	if err := descriptor.Apply(updated, raw); err != nil {
		return err
	}

	s.Replace(updated)
	return nil
}

func (s *Store) Remove(id string) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	s.records = append(s.records[:i], s.records[i+1:]...)
	s.reindex()
}
