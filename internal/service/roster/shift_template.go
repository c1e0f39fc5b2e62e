package roster

import (
	"context"
	"fmt"
	"log/slog"

	"volunteer-roster/internal/domain"
)

// ShiftTemplateService manages shift templates.
type ShiftTemplateService struct {
	templates domain.ShiftTemplateRepository
	roles     domain.RoleRepository
	logger    *slog.Logger
}

// NewShiftTemplateService creates a new ShiftTemplateService.
func NewShiftTemplateService(templates domain.ShiftTemplateRepository, roles domain.RoleRepository, logger *slog.Logger) *ShiftTemplateService {
	return &ShiftTemplateService{templates: templates, roles: roles, logger: logger}
}

func (s *ShiftTemplateService) Create(ctx context.Context, req domain.CreateOrUpdateShiftTemplateRequest) (*domain.ShiftTemplate, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}
	st, err := s.templates.Save(ctx, &domain.ShiftTemplate{Name: *req.Name, RequiredRoleID: req.RequiredRoleID})
	if err != nil {
		return nil, fmt.Errorf("create shift template: %w", err)
	}
	s.logger.Info("shift template created", "id", st.ID, "name", st.Name)
	return st, nil
}

func (s *ShiftTemplateService) Get(ctx context.Context, id int64) (*domain.ShiftTemplate, error) {
	return s.templates.GetByID(ctx, id)
}

// Update replaces the template. When no template has id, a new one is
// created instead.
func (s *ShiftTemplateService) Update(ctx context.Context, id int64, req domain.CreateOrUpdateShiftTemplateRequest) (*domain.ShiftTemplate, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}
	ok, err := s.templates.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.logger.Info("shift template not found on update, creating", "id", id)
		return s.Create(ctx, req)
	}

	st, err := s.templates.Save(ctx, &domain.ShiftTemplate{ID: id, Name: *req.Name, RequiredRoleID: req.RequiredRoleID})
	if err != nil {
		return nil, fmt.Errorf("update shift template %d: %w", id, err)
	}
	s.logger.Info("shift template updated", "id", id)
	return st, nil
}

func (s *ShiftTemplateService) Delete(ctx context.Context, id int64) error {
	if err := s.templates.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete shift template %d: %w", id, err)
	}
	s.logger.Info("shift template deleted", "id", id)
	return nil
}

// List returns one page of shift templates ordered by name.
func (s *ShiftTemplateService) List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.ShiftTemplate], error) {
	return listPage[domain.ShiftTemplate](ctx, s.templates, domain.Predicate[domain.ShiftTemplate]{}, page)
}

func (s *ShiftTemplateService) validate(ctx context.Context, req domain.CreateOrUpdateShiftTemplateRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	if req.RequiredRoleID == nil {
		return nil
	}
	ok, err := s.roles.Exists(ctx, *req.RequiredRoleID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrValidation("required role %d does not exist", *req.RequiredRoleID)
	}
	return nil
}
