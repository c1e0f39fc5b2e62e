package roster

import (
	"context"
	"fmt"
	"log/slog"

	"volunteer-roster/internal/domain"
)

// RoleService manages roles.
type RoleService struct {
	roles  domain.RoleRepository
	logger *slog.Logger
}

// NewRoleService creates a new RoleService.
func NewRoleService(roles domain.RoleRepository, logger *slog.Logger) *RoleService {
	return &RoleService{roles: roles, logger: logger}
}

// Create persists a new role. Role names are unique.
func (s *RoleService) Create(ctx context.Context, req domain.CreateRoleRequest) (*domain.Role, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	r, err := s.roles.Save(ctx, &domain.Role{Name: *req.Name})
	if err != nil {
		return nil, uniqueNameError(err)
	}
	s.logger.Info("role created", "id", r.ID, "name", r.Name)
	return r, nil
}

func (s *RoleService) Get(ctx context.Context, id int64) (*domain.Role, error) {
	return s.roles.GetByID(ctx, id)
}

// Delete removes the role from every person holding it and from every shift
// template requiring it.
func (s *RoleService) Delete(ctx context.Context, id int64) error {
	if err := s.roles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete role %d: %w", id, err)
	}
	s.logger.Info("role deleted", "id", id)
	return nil
}

func (s *RoleService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Role], error) {
	return listPage[domain.Role](ctx, s.roles, domain.Predicate[domain.Role]{}, page)
}

// PermissionService manages permissions.
type PermissionService struct {
	permissions domain.PermissionRepository
	logger      *slog.Logger
}

// NewPermissionService creates a new PermissionService.
func NewPermissionService(permissions domain.PermissionRepository, logger *slog.Logger) *PermissionService {
	return &PermissionService{permissions: permissions, logger: logger}
}

// Create persists a new permission. Permission names are unique.
func (s *PermissionService) Create(ctx context.Context, req domain.CreatePermissionRequest) (*domain.Permission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	p, err := s.permissions.Save(ctx, &domain.Permission{Name: *req.Name})
	if err != nil {
		return nil, uniqueNameError(err)
	}
	s.logger.Info("permission created", "id", p.ID, "name", p.Name)
	return p, nil
}

func (s *PermissionService) Get(ctx context.Context, id int64) (*domain.Permission, error) {
	return s.permissions.GetByID(ctx, id)
}

// Delete removes the permission from every group carrying it.
func (s *PermissionService) Delete(ctx context.Context, id int64) error {
	if err := s.permissions.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete permission %d: %w", id, err)
	}
	s.logger.Info("permission deleted", "id", id)
	return nil
}

func (s *PermissionService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Permission], error) {
	return listPage[domain.Permission](ctx, s.permissions, domain.Predicate[domain.Permission]{}, page)
}
