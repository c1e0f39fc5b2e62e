package memstore

import (
	"context"
	"slices"

	"volunteer-roster/internal/domain"
)

// GroupRepo implements domain.GroupRepository. Member fields are derived from
// the people map on every read.
type GroupRepo struct {
	s *Store
}

var _ domain.GroupRepository = (*GroupRepo)(nil)

// withMembers returns a copy of g with its derived fields populated. Callers
// hold at least the read lock.
func (s *Store) withMembers(g domain.Group) domain.Group {
	g.PermissionIDs = domain.UniqueIDs(g.PermissionIDs)
	g.PersonIDs = []int64{}
	g.ActiveMemberCount = 0
	for id, p := range s.people {
		if !slices.Contains(p.GroupIDs, g.ID) {
			continue
		}
		g.PersonIDs = append(g.PersonIDs, id)
		if p.Active {
			g.ActiveMemberCount++
		}
	}
	slices.Sort(g.PersonIDs)
	g.MemberCount = int64(len(g.PersonIDs))
	return g
}

func (r *GroupRepo) GetByID(_ context.Context, id int64) (*domain.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	g, ok := r.s.groups[id]
	if !ok {
		return nil, domain.ErrNotFound("group %d not found", id)
	}
	out := r.s.withMembers(g)
	return &out, nil
}

func (r *GroupRepo) Save(_ context.Context, g *domain.Group) (*domain.Group, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if ids := missing(r.s.permissions, g.PermissionIDs); len(ids) > 0 {
		return nil, domain.ErrValidation("permissions %v do not exist", ids)
	}
	if g.ID != 0 {
		if _, ok := r.s.groups[g.ID]; !ok {
			return nil, domain.ErrNotFound("group %d not found", g.ID)
		}
	}
	for id, other := range r.s.groups {
		if id != g.ID && other.Name == g.Name {
			return nil, domain.ErrConflict("group named %q already exists", g.Name)
		}
	}

	stored := domain.Group{ID: g.ID, Name: g.Name, PermissionIDs: domain.UniqueIDs(g.PermissionIDs)}
	if stored.ID == 0 {
		stored.ID = r.s.nextID("group")
	}
	r.s.groups[stored.ID] = stored

	out := r.s.withMembers(stored)
	return &out, nil
}

// Delete removes the group and every person's membership in it.
func (r *GroupRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.groups[id]; !ok {
		return nil
	}
	delete(r.s.groups, id)
	for pid, p := range r.s.people {
		if slices.Contains(p.GroupIDs, id) {
			p.GroupIDs = without(p.GroupIDs, id)
			r.s.people[pid] = p
		}
	}
	return nil
}

func (r *GroupRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.groups[id]
	return ok, nil
}

func (r *GroupRepo) ListByIDs(_ context.Context, ids []int64) ([]domain.Group, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return byIDs(r.s.groups, ids, r.s.withMembers), nil
}

func (r *GroupRepo) Query(_ context.Context, pred domain.Predicate[domain.Group], page domain.PageRequest) ([]domain.Group, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items, total := queryPage(values(r.s.groups, r.s.withMembers), pred, page,
		func(g domain.Group) string { return g.Name },
		func(g domain.Group) int64 { return g.ID })
	return items, total, nil
}
