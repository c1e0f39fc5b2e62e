package roster

import (
	"context"
	"fmt"
	"log/slog"

	"volunteer-roster/internal/domain"
)

// PersonService manages people and their role and group associations.
type PersonService struct {
	people domain.PersonRepository
	roles  domain.RoleRepository
	groups domain.GroupRepository
	logger *slog.Logger
}

// NewPersonService creates a new PersonService.
func NewPersonService(
	people domain.PersonRepository,
	roles domain.RoleRepository,
	groups domain.GroupRepository,
	logger *slog.Logger,
) *PersonService {
	return &PersonService{people: people, roles: roles, groups: groups, logger: logger}
}

// Create validates and persists a new person. Every referenced role must
// exist.
func (s *PersonService) Create(ctx context.Context, req domain.CreateOrUpdatePersonRequest) (*domain.Person, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}
	p, err := s.people.Save(ctx, &domain.Person{
		Name:         *req.Name,
		EmailAddress: *req.EmailAddress,
		Phone:        req.Phone,
		Active:       *req.Active,
		RoleIDs:      domain.UniqueIDs(req.RoleIDs),
		GroupIDs:     []int64{},
	})
	if err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	s.logger.Info("person created", "id", p.ID, "name", p.Name)
	return p, nil
}

// Get returns the person with id.
func (s *PersonService) Get(ctx context.Context, id int64) (*domain.Person, error) {
	return s.people.GetByID(ctx, id)
}

// Update replaces the person's fields and role set. Group membership is
// kept. When no person has id, a new one is created instead and returned
// with its own id.
func (s *PersonService) Update(ctx context.Context, id int64, req domain.CreateOrUpdatePersonRequest) (*domain.Person, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	existing, err := s.people.GetByID(ctx, id)
	if domain.IsNotFound(err) {
		s.logger.Info("person not found on update, creating", "id", id)
		return s.Create(ctx, req)
	}
	if err != nil {
		return nil, err
	}

	existing.Name = *req.Name
	existing.EmailAddress = *req.EmailAddress
	existing.Phone = req.Phone
	existing.Active = *req.Active
	existing.RoleIDs = domain.UniqueIDs(req.RoleIDs)

	p, err := s.people.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update person %d: %w", id, err)
	}
	s.logger.Info("person updated", "id", p.ID)
	return p, nil
}

// Delete removes the person. Deleting an absent person succeeds.
func (s *PersonService) Delete(ctx context.Context, id int64) error {
	if err := s.people.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete person %d: %w", id, err)
	}
	s.logger.Info("person deleted", "id", id)
	return nil
}

// List returns one page of the people matching filter, ordered by name.
func (s *PersonService) List(ctx context.Context, filter domain.PersonFilter, page domain.PageRequest) (domain.Page[domain.Person], error) {
	return listPage[domain.Person](ctx, s.people, filter.Predicate(), page)
}

// UpdateRoles adds roles to, or removes roles from, the person's role set.
func (s *PersonService) UpdateRoles(ctx context.Context, id int64, req domain.UpdateAssociationsRequest) (*domain.Person, error) {
	action, err := req.Validate()
	if err != nil {
		return nil, err
	}
	if err := requireAll[domain.Role](ctx, s.roles, "role", req.IDs, roleID); err != nil {
		return nil, err
	}
	p, err := s.people.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.RoleIDs, err = domain.Reconcile(p.RoleIDs, req.IDs, action); err != nil {
		return nil, err
	}

	saved, err := s.people.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update roles of person %d: %w", id, err)
	}
	s.logger.Info("person roles updated", "id", id, "action", action, "roles", saved.RoleIDs)
	return saved, nil
}

// UpdateGroups adds the person to, or removes them from, groups.
func (s *PersonService) UpdateGroups(ctx context.Context, id int64, req domain.UpdateAssociationsRequest) (*domain.Person, error) {
	action, err := req.Validate()
	if err != nil {
		return nil, err
	}
	if err := requireAll[domain.Group](ctx, s.groups, "group", req.IDs, groupID); err != nil {
		return nil, err
	}
	p, err := s.people.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.GroupIDs, err = domain.Reconcile(p.GroupIDs, req.IDs, action); err != nil {
		return nil, err
	}

	saved, err := s.people.Save(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("update groups of person %d: %w", id, err)
	}
	s.logger.Info("person groups updated", "id", id, "action", action, "groups", saved.GroupIDs)
	return saved, nil
}

func (s *PersonService) validate(ctx context.Context, req domain.CreateOrUpdatePersonRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}
	return requireAll[domain.Role](ctx, s.roles, "role", req.RoleIDs, roleID)
}
