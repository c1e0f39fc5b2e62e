package api

import (
	"context"

	"volunteer-roster/internal/domain"
)

type mockRoleService struct {
	listFn   func(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Role], error)
	createFn func(ctx context.Context, req domain.CreateRoleRequest) (*domain.Role, error)
	getFn    func(ctx context.Context, id int64) (*domain.Role, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockRoleService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Role], error) {
	if m.listFn == nil {
		panic("mockRoleService.List called but not configured")
	}
	return m.listFn(ctx, page)
}

func (m *mockRoleService) Create(ctx context.Context, req domain.CreateRoleRequest) (*domain.Role, error) {
	if m.createFn == nil {
		panic("mockRoleService.Create called but not configured")
	}
	return m.createFn(ctx, req)
}

func (m *mockRoleService) Get(ctx context.Context, id int64) (*domain.Role, error) {
	if m.getFn == nil {
		panic("mockRoleService.Get called but not configured")
	}
	return m.getFn(ctx, id)
}

func (m *mockRoleService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		panic("mockRoleService.Delete called but not configured")
	}
	return m.deleteFn(ctx, id)
}

type mockPersonService struct {
	listFn         func(ctx context.Context, filter domain.PersonFilter, page domain.PageRequest) (domain.Page[domain.Person], error)
	createFn       func(ctx context.Context, req domain.CreateOrUpdatePersonRequest) (*domain.Person, error)
	getFn          func(ctx context.Context, id int64) (*domain.Person, error)
	updateFn       func(ctx context.Context, id int64, req domain.CreateOrUpdatePersonRequest) (*domain.Person, error)
	deleteFn       func(ctx context.Context, id int64) error
	updateRolesFn  func(ctx context.Context, id int64, req domain.UpdateAssociationsRequest) (*domain.Person, error)
	updateGroupsFn func(ctx context.Context, id int64, req domain.UpdateAssociationsRequest) (*domain.Person, error)
}

func (m *mockPersonService) List(ctx context.Context, filter domain.PersonFilter, page domain.PageRequest) (domain.Page[domain.Person], error) {
	if m.listFn == nil {
		panic("mockPersonService.List called but not configured")
	}
	return m.listFn(ctx, filter, page)
}

func (m *mockPersonService) Create(ctx context.Context, req domain.CreateOrUpdatePersonRequest) (*domain.Person, error) {
	if m.createFn == nil {
		panic("mockPersonService.Create called but not configured")
	}
	return m.createFn(ctx, req)
}

func (m *mockPersonService) Get(ctx context.Context, id int64) (*domain.Person, error) {
	if m.getFn == nil {
		panic("mockPersonService.Get called but not configured")
	}
	return m.getFn(ctx, id)
}

func (m *mockPersonService) Update(ctx context.Context, id int64, req domain.CreateOrUpdatePersonRequest) (*domain.Person, error) {
	if m.updateFn == nil {
		panic("mockPersonService.Update called but not configured")
	}
	return m.updateFn(ctx, id, req)
}

func (m *mockPersonService) Delete(ctx context.Context, id int64) error {
	if m.deleteFn == nil {
		panic("mockPersonService.Delete called but not configured")
	}
	return m.deleteFn(ctx, id)
}

func (m *mockPersonService) UpdateRoles(ctx context.Context, id int64, req domain.UpdateAssociationsRequest) (*domain.Person, error) {
	if m.updateRolesFn == nil {
		panic("mockPersonService.UpdateRoles called but not configured")
	}
	return m.updateRolesFn(ctx, id, req)
}

func (m *mockPersonService) UpdateGroups(ctx context.Context, id int64, req domain.UpdateAssociationsRequest) (*domain.Person, error) {
	if m.updateGroupsFn == nil {
		panic("mockPersonService.UpdateGroups called but not configured")
	}
	return m.updateGroupsFn(ctx, id, req)
}
