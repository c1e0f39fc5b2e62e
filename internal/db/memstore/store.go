// Package memstore implements the domain repository ports in process memory.
// Filters are evaluated with Predicate.Matches; ordering, uniqueness and
// cascades follow the SQL schema so both stores behave alike.
package memstore

import (
	"cmp"
	"slices"
	"sync"

	"volunteer-roster/internal/domain"
)

// Store holds every entity kind behind one lock so that cascades and derived
// group membership stay consistent.
type Store struct {
	mu sync.RWMutex

	lastID      map[string]int64
	people      map[int64]domain.Person
	roles       map[int64]domain.Role
	permissions map[int64]domain.Permission
	groups      map[int64]domain.Group
	templates   map[int64]domain.ShiftTemplate
}

// New returns an empty store.
func New() *Store {
	return &Store{
		lastID:      map[string]int64{},
		people:      map[int64]domain.Person{},
		roles:       map[int64]domain.Role{},
		permissions: map[int64]domain.Permission{},
		groups:      map[int64]domain.Group{},
		templates:   map[int64]domain.ShiftTemplate{},
	}
}

// People returns the person repository view of the store.
func (s *Store) People() *PersonRepo { return &PersonRepo{s: s} }

// Groups returns the group repository view of the store.
func (s *Store) Groups() *GroupRepo { return &GroupRepo{s: s} }

// Roles returns the role repository view of the store.
func (s *Store) Roles() *RoleRepo { return &RoleRepo{s: s} }

// Permissions returns the permission repository view of the store.
func (s *Store) Permissions() *PermissionRepo { return &PermissionRepo{s: s} }

// ShiftTemplates returns the shift template repository view of the store.
func (s *Store) ShiftTemplates() *ShiftTemplateRepo { return &ShiftTemplateRepo{s: s} }

// nextID allocates the next id for kind. Callers hold the write lock.
func (s *Store) nextID(kind string) int64 {
	s.lastID[kind]++
	return s.lastID[kind]
}

// queryPage filters, sorts and slices items the same way the SQL store does:
// name in the requested direction with id ascending as tie-breaker.
func queryPage[T any](items []T, pred domain.Predicate[T], page domain.PageRequest, name func(T) string, id func(T) int64) ([]T, int64) {
	matched := pred.Filter(items)
	slices.SortFunc(matched, func(a, b T) int {
		c := cmp.Compare(name(a), name(b))
		if page.Descending() {
			c = -c
		}
		if c != 0 {
			return c
		}
		return cmp.Compare(id(a), id(b))
	})

	total := int64(len(matched))
	start := page.Offset()
	if start >= len(matched) {
		return []T{}, total
	}
	end := start + min(page.Size, len(matched)-start)
	return slices.Clone(matched[start:end]), total
}

// byIDs returns the values of m whose keys are in ids, ordered by id.
func byIDs[T any](m map[int64]T, ids []int64, clone func(T) T) []T {
	out := []T{}
	for _, id := range domain.UniqueIDs(ids) {
		if v, ok := m[id]; ok {
			out = append(out, clone(v))
		}
	}
	return out
}

func values[T any](m map[int64]T, clone func(T) T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, clone(v))
	}
	return out
}

func missing[T any](m map[int64]T, ids []int64) []int64 {
	var out []int64
	for _, id := range domain.UniqueIDs(ids) {
		if _, ok := m[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

func without(ids []int64, id int64) []int64 {
	return slices.DeleteFunc(slices.Clone(ids), func(v int64) bool { return v == id })
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
