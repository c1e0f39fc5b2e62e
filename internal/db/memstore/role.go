package memstore

import (
	"context"
	"slices"

	"volunteer-roster/internal/domain"
)

func identity[T any](v T) T { return v }

// RoleRepo implements domain.RoleRepository.
type RoleRepo struct {
	s *Store
}

var _ domain.RoleRepository = (*RoleRepo)(nil)

func (r *RoleRepo) GetByID(_ context.Context, id int64) (*domain.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.roles[id]
	if !ok {
		return nil, domain.ErrNotFound("role %d not found", id)
	}
	return &v, nil
}

func (r *RoleRepo) Save(_ context.Context, v *domain.Role) (*domain.Role, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, err := saveNamed(r.s, r.s.roles, "role", v.ID, v.Name, func(n domain.Role) string { return n.Name })
	if err != nil {
		return nil, err
	}
	stored := domain.Role{ID: id, Name: v.Name}
	r.s.roles[id] = stored
	return &stored, nil
}

// Delete removes the role from every person and clears it as a shift
// template requirement.
func (r *RoleRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.roles[id]; !ok {
		return nil
	}
	delete(r.s.roles, id)
	for pid, p := range r.s.people {
		if slices.Contains(p.RoleIDs, id) {
			p.RoleIDs = without(p.RoleIDs, id)
			r.s.people[pid] = p
		}
	}
	for tid, st := range r.s.templates {
		if st.RequiredRoleID != nil && *st.RequiredRoleID == id {
			st.RequiredRoleID = nil
			r.s.templates[tid] = st
		}
	}
	return nil
}

func (r *RoleRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.roles[id]
	return ok, nil
}

func (r *RoleRepo) ListByIDs(_ context.Context, ids []int64) ([]domain.Role, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return byIDs(r.s.roles, ids, identity[domain.Role]), nil
}

func (r *RoleRepo) Query(_ context.Context, pred domain.Predicate[domain.Role], page domain.PageRequest) ([]domain.Role, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items, total := queryPage(values(r.s.roles, identity[domain.Role]), pred, page,
		func(v domain.Role) string { return v.Name },
		func(v domain.Role) int64 { return v.ID })
	return items, total, nil
}

// PermissionRepo implements domain.PermissionRepository.
type PermissionRepo struct {
	s *Store
}

var _ domain.PermissionRepository = (*PermissionRepo)(nil)

func (r *PermissionRepo) GetByID(_ context.Context, id int64) (*domain.Permission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.permissions[id]
	if !ok {
		return nil, domain.ErrNotFound("permission %d not found", id)
	}
	return &v, nil
}

func (r *PermissionRepo) Save(_ context.Context, v *domain.Permission) (*domain.Permission, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	id, err := saveNamed(r.s, r.s.permissions, "permission", v.ID, v.Name, func(n domain.Permission) string { return n.Name })
	if err != nil {
		return nil, err
	}
	stored := domain.Permission{ID: id, Name: v.Name}
	r.s.permissions[id] = stored
	return &stored, nil
}

// Delete removes the permission from every group.
func (r *PermissionRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.permissions[id]; !ok {
		return nil
	}
	delete(r.s.permissions, id)
	for gid, g := range r.s.groups {
		if slices.Contains(g.PermissionIDs, id) {
			g.PermissionIDs = without(g.PermissionIDs, id)
			r.s.groups[gid] = g
		}
	}
	return nil
}

func (r *PermissionRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.permissions[id]
	return ok, nil
}

func (r *PermissionRepo) ListByIDs(_ context.Context, ids []int64) ([]domain.Permission, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return byIDs(r.s.permissions, ids, identity[domain.Permission]), nil
}

func (r *PermissionRepo) Query(_ context.Context, pred domain.Predicate[domain.Permission], page domain.PageRequest) ([]domain.Permission, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items, total := queryPage(values(r.s.permissions, identity[domain.Permission]), pred, page,
		func(v domain.Permission) string { return v.Name },
		func(v domain.Permission) int64 { return v.ID })
	return items, total, nil
}

// saveNamed resolves the id a uniquely named entity is stored under,
// enforcing name uniqueness. Callers hold the write lock.
func saveNamed[T any](s *Store, m map[int64]T, kind string, id int64, name string, nameOf func(T) string) (int64, error) {
	if id != 0 {
		if _, ok := m[id]; !ok {
			return 0, domain.ErrNotFound("%s %d not found", kind, id)
		}
	}
	for otherID, other := range m {
		if otherID != id && nameOf(other) == name {
			return 0, domain.ErrConflict("%s named %q already exists", kind, name)
		}
	}
	if id == 0 {
		id = s.nextID(kind)
	}
	return id, nil
}
