package memstore

import (
	"context"

	"volunteer-roster/internal/domain"
)

// PersonRepo implements domain.PersonRepository.
type PersonRepo struct {
	s *Store
}

var _ domain.PersonRepository = (*PersonRepo)(nil)

func clonePerson(p domain.Person) domain.Person {
	p.Phone = clonePtr(p.Phone)
	p.RoleIDs = domain.UniqueIDs(p.RoleIDs)
	p.GroupIDs = domain.UniqueIDs(p.GroupIDs)
	return p
}

func (r *PersonRepo) GetByID(_ context.Context, id int64) (*domain.Person, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.people[id]
	if !ok {
		return nil, domain.ErrNotFound("person %d not found", id)
	}
	out := clonePerson(p)
	return &out, nil
}

func (r *PersonRepo) Save(_ context.Context, p *domain.Person) (*domain.Person, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if ids := missing(r.s.roles, p.RoleIDs); len(ids) > 0 {
		return nil, domain.ErrValidation("roles %v do not exist", ids)
	}
	if ids := missing(r.s.groups, p.GroupIDs); len(ids) > 0 {
		return nil, domain.ErrValidation("groups %v do not exist", ids)
	}

	stored := clonePerson(*p)
	if stored.ID == 0 {
		stored.ID = r.s.nextID("person")
	} else if _, ok := r.s.people[stored.ID]; !ok {
		return nil, domain.ErrNotFound("person %d not found", stored.ID)
	}
	r.s.people[stored.ID] = stored

	out := clonePerson(stored)
	return &out, nil
}

func (r *PersonRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.people, id)
	return nil
}

func (r *PersonRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.people[id]
	return ok, nil
}

func (r *PersonRepo) ListByIDs(_ context.Context, ids []int64) ([]domain.Person, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return byIDs(r.s.people, ids, clonePerson), nil
}

func (r *PersonRepo) Query(_ context.Context, pred domain.Predicate[domain.Person], page domain.PageRequest) ([]domain.Person, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items, total := queryPage(values(r.s.people, clonePerson), pred, page,
		func(p domain.Person) string { return p.Name },
		func(p domain.Person) int64 { return p.ID })
	return items, total, nil
}
