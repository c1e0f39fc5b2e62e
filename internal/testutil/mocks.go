// Package testutil provides shared mock implementations of domain interfaces
// for use in tests across the codebase. This follows the Go convention of a
// shared test utility package (like net/http/httptest).
package testutil

import (
	"context"
	"fmt"

	"volunteer-roster/internal/domain"
)

// MockRepo implements domain.Repository[T] with overridable function fields.
// Calling a method whose field is nil panics so that tests fail loudly on
// unexpected store access.
type MockRepo[T any] struct {
	GetByIDFn   func(ctx context.Context, id int64) (*T, error)
	SaveFn      func(ctx context.Context, entity *T) (*T, error)
	DeleteFn    func(ctx context.Context, id int64) error
	ExistsFn    func(ctx context.Context, id int64) (bool, error)
	ListByIDsFn func(ctx context.Context, ids []int64) ([]T, error)
	QueryFn     func(ctx context.Context, pred domain.Predicate[T], page domain.PageRequest) ([]T, int64, error)

	Saved []*T // every entity passed to Save, in call order
}

// GetByID implements the interface method for testing.
func (m *MockRepo[T]) GetByID(ctx context.Context, id int64) (*T, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	panic(m.unexpected("GetByID"))
}

// Save implements the interface method for testing.
func (m *MockRepo[T]) Save(ctx context.Context, entity *T) (*T, error) {
	m.Saved = append(m.Saved, entity)
	if m.SaveFn != nil {
		return m.SaveFn(ctx, entity)
	}
	panic(m.unexpected("Save"))
}

// Delete implements the interface method for testing.
func (m *MockRepo[T]) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}
	panic(m.unexpected("Delete"))
}

// Exists implements the interface method for testing.
func (m *MockRepo[T]) Exists(ctx context.Context, id int64) (bool, error) {
	if m.ExistsFn != nil {
		return m.ExistsFn(ctx, id)
	}
	panic(m.unexpected("Exists"))
}

// ListByIDs implements the interface method for testing.
func (m *MockRepo[T]) ListByIDs(ctx context.Context, ids []int64) ([]T, error) {
	if m.ListByIDsFn != nil {
		return m.ListByIDsFn(ctx, ids)
	}
	panic(m.unexpected("ListByIDs"))
}

// Query implements the interface method for testing.
func (m *MockRepo[T]) Query(ctx context.Context, pred domain.Predicate[T], page domain.PageRequest) ([]T, int64, error) {
	if m.QueryFn != nil {
		return m.QueryFn(ctx, pred, page)
	}
	panic(m.unexpected("Query"))
}

// LastSaved returns the last entity passed to Save, or nil if none.
func (m *MockRepo[T]) LastSaved() *T {
	if len(m.Saved) == 0 {
		return nil
	}
	return m.Saved[len(m.Saved)-1]
}

func (m *MockRepo[T]) unexpected(method string) string {
	var zero T
	return fmt.Sprintf("unexpected call to MockRepo[%T].%s", zero, method)
}

// Per-kind mocks.
type (
	MockPersonRepo        = MockRepo[domain.Person]
	MockGroupRepo         = MockRepo[domain.Group]
	MockRoleRepo          = MockRepo[domain.Role]
	MockPermissionRepo    = MockRepo[domain.Permission]
	MockShiftTemplateRepo = MockRepo[domain.ShiftTemplate]
)

var (
	_ domain.PersonRepository        = (*MockPersonRepo)(nil)
	_ domain.GroupRepository         = (*MockGroupRepo)(nil)
	_ domain.RoleRepository          = (*MockRoleRepo)(nil)
	_ domain.PermissionRepository    = (*MockPermissionRepo)(nil)
	_ domain.ShiftTemplateRepository = (*MockShiftTemplateRepo)(nil)
)

// ListByIDsFrom returns a ListByIDs function that yields the entities of
// known whose id is requested, for existence checks.
func ListByIDsFrom[T any](known map[int64]T) func(context.Context, []int64) ([]T, error) {
	return func(_ context.Context, ids []int64) ([]T, error) {
		out := []T{}
		for _, id := range domain.UniqueIDs(ids) {
			if v, ok := known[id]; ok {
				out = append(out, v)
			}
		}
		return out, nil
	}
}

// NotFound returns a GetByID function that always reports the id missing.
func NotFound[T any](kind string) func(context.Context, int64) (*T, error) {
	return func(_ context.Context, id int64) (*T, error) {
		return nil, domain.ErrNotFound("%s %d not found", kind, id)
	}
}
