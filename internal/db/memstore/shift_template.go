package memstore

import (
	"context"

	"volunteer-roster/internal/domain"
)

// ShiftTemplateRepo implements domain.ShiftTemplateRepository.
type ShiftTemplateRepo struct {
	s *Store
}

var _ domain.ShiftTemplateRepository = (*ShiftTemplateRepo)(nil)

func cloneShiftTemplate(st domain.ShiftTemplate) domain.ShiftTemplate {
	st.RequiredRoleID = clonePtr(st.RequiredRoleID)
	return st
}

func (r *ShiftTemplateRepo) GetByID(_ context.Context, id int64) (*domain.ShiftTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	st, ok := r.s.templates[id]
	if !ok {
		return nil, domain.ErrNotFound("shift template %d not found", id)
	}
	out := cloneShiftTemplate(st)
	return &out, nil
}

func (r *ShiftTemplateRepo) Save(_ context.Context, st *domain.ShiftTemplate) (*domain.ShiftTemplate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if st.RequiredRoleID != nil {
		if _, ok := r.s.roles[*st.RequiredRoleID]; !ok {
			return nil, domain.ErrValidation("role %d does not exist", *st.RequiredRoleID)
		}
	}

	stored := cloneShiftTemplate(*st)
	if stored.ID == 0 {
		stored.ID = r.s.nextID("shift template")
	} else if _, ok := r.s.templates[stored.ID]; !ok {
		return nil, domain.ErrNotFound("shift template %d not found", stored.ID)
	}
	r.s.templates[stored.ID] = stored

	out := cloneShiftTemplate(stored)
	return &out, nil
}

func (r *ShiftTemplateRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.templates, id)
	return nil
}

func (r *ShiftTemplateRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.templates[id]
	return ok, nil
}

func (r *ShiftTemplateRepo) ListByIDs(_ context.Context, ids []int64) ([]domain.ShiftTemplate, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return byIDs(r.s.templates, ids, cloneShiftTemplate), nil
}

func (r *ShiftTemplateRepo) Query(_ context.Context, pred domain.Predicate[domain.ShiftTemplate], page domain.PageRequest) ([]domain.ShiftTemplate, int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items, total := queryPage(values(r.s.templates, cloneShiftTemplate), pred, page,
		func(st domain.ShiftTemplate) string { return st.Name },
		func(st domain.ShiftTemplate) int64 { return st.ID })
	return items, total, nil
}
