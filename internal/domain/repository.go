package domain

import "context"

// Repository is the store contract shared by every entity kind.
//
// Save inserts when the entity has a zero ID and assigns one; otherwise it
// overwrites the stored entity, association sets included, and returns
// NotFoundError if the id does not exist. Name collisions on unique kinds are
// reported as ConflictError. Delete is idempotent.
type Repository[T any] interface {
	GetByID(ctx context.Context, id int64) (*T, error)
	Save(ctx context.Context, entity *T) (*T, error)
	Delete(ctx context.Context, id int64) error
	Exists(ctx context.Context, id int64) (bool, error)
	ListByIDs(ctx context.Context, ids []int64) ([]T, error)
	Query(ctx context.Context, pred Predicate[T], page PageRequest) ([]T, int64, error)
}

// PersonRepository stores people and their role and group associations.
type PersonRepository interface {
	Repository[Person]
}

// GroupRepository stores groups and their permission associations.
// Member-derived fields are populated on read.
type GroupRepository interface {
	Repository[Group]
}

// RoleRepository stores roles.
type RoleRepository interface {
	Repository[Role]
}

// PermissionRepository stores permissions.
type PermissionRepository interface {
	Repository[Permission]
}

// ShiftTemplateRepository stores shift templates.
type ShiftTemplateRepository interface {
	Repository[ShiftTemplate]
}
