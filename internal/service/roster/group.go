package roster

import (
	"context"
	"fmt"
	"log/slog"

	"volunteer-roster/internal/domain"
)

// GroupService manages groups and the permissions they carry.
type GroupService struct {
	groups      domain.GroupRepository
	permissions domain.PermissionRepository
	logger      *slog.Logger
}

// NewGroupService creates a new GroupService.
func NewGroupService(groups domain.GroupRepository, permissions domain.PermissionRepository, logger *slog.Logger) *GroupService {
	return &GroupService{groups: groups, permissions: permissions, logger: logger}
}

// Create persists a new group with no permissions.
func (s *GroupService) Create(ctx context.Context, req domain.CreateOrUpdateGroupRequest) (*domain.Group, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	g, err := s.groups.Save(ctx, &domain.Group{Name: *req.Name, PermissionIDs: []int64{}})
	if err != nil {
		return nil, uniqueNameError(err)
	}
	s.logger.Info("group created", "id", g.ID, "name", g.Name)
	return g, nil
}

// Get returns the group with id, including its members and member counts.
func (s *GroupService) Get(ctx context.Context, id int64) (*domain.Group, error) {
	return s.groups.GetByID(ctx, id)
}

// Update renames the group, keeping its permissions. When no group has id, a
// new one is created instead.
func (s *GroupService) Update(ctx context.Context, id int64, req domain.CreateOrUpdateGroupRequest) (*domain.Group, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	existing, err := s.groups.GetByID(ctx, id)
	if domain.IsNotFound(err) {
		s.logger.Info("group not found on update, creating", "id", id)
		return s.Create(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	existing.Name = *req.Name
	g, err := s.groups.Save(ctx, existing)
	if err != nil {
		return nil, uniqueNameError(err)
	}
	s.logger.Info("group updated", "id", g.ID, "name", g.Name)
	return g, nil
}

// Delete removes the group and every membership in it.
func (s *GroupService) Delete(ctx context.Context, id int64) error {
	if err := s.groups.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete group %d: %w", id, err)
	}
	s.logger.Info("group deleted", "id", id)
	return nil
}

// List returns one page of the groups matching filter, ordered by name.
func (s *GroupService) List(ctx context.Context, filter domain.GroupFilter, page domain.PageRequest) (domain.Page[domain.Group], error) {
	return listPage[domain.Group](ctx, s.groups, filter.Predicate(), page)
}

// UpdatePermissions adds permissions to, or removes permissions from, the
// group. Nothing is written unless the action, every permission id and the
// group itself are valid.
func (s *GroupService) UpdatePermissions(ctx context.Context, id int64, req domain.UpdateAssociationsRequest) (*domain.Group, error) {
	action, err := req.Validate()
	if err != nil {
		return nil, err
	}
	if err := requireAll[domain.Permission](ctx, s.permissions, "permission", req.IDs, permissionID); err != nil {
		return nil, err
	}
	g, err := s.groups.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if g.PermissionIDs, err = domain.Reconcile(g.PermissionIDs, req.IDs, action); err != nil {
		return nil, err
	}

	saved, err := s.groups.Save(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("update permissions of group %d: %w", id, uniqueNameError(err))
	}
	s.logger.Info("group permissions updated", "id", id, "action", action, "permissions", saved.PermissionIDs)
	return saved, nil
}
