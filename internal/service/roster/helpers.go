// Package roster implements the aggregate services for people, groups, roles,
// permissions and shift templates.
package roster

import (
	"context"
	"errors"

	"volunteer-roster/internal/domain"
)

type idLister[T any] interface {
	ListByIDs(ctx context.Context, ids []int64) ([]T, error)
}

// requireAll fails with a ValidationError naming the ids the store does not
// hold.
func requireAll[T any](ctx context.Context, repo idLister[T], kind string, ids []int64, idOf func(T) int64) error {
	want := domain.UniqueIDs(ids)
	if len(want) == 0 {
		return nil
	}
	found, err := repo.ListByIDs(ctx, want)
	if err != nil {
		return err
	}
	if len(found) == len(want) {
		return nil
	}

	present := make(map[int64]struct{}, len(found))
	for _, v := range found {
		present[idOf(v)] = struct{}{}
	}
	var absent []int64
	for _, id := range want {
		if _, ok := present[id]; !ok {
			absent = append(absent, id)
		}
	}
	return domain.ErrValidation("%s ids %v do not exist", kind, absent)
}

// uniqueNameError reports a store name collision as invalid input.
func uniqueNameError(err error) error {
	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return &domain.ValidationError{Message: conflict.Message, Err: err}
	}
	return err
}

// listPage validates page, runs the query and assembles the page metadata.
func listPage[T any](ctx context.Context, repo domain.Repository[T], pred domain.Predicate[T], page domain.PageRequest) (domain.Page[T], error) {
	if err := page.Validate(); err != nil {
		return domain.Page[T]{}, err
	}
	items, total, err := repo.Query(ctx, pred, page)
	if err != nil {
		return domain.Page[T]{}, err
	}
	return domain.NewPage(items, page, total), nil
}

func roleID(r domain.Role) int64             { return r.ID }
func permissionID(p domain.Permission) int64 { return p.ID }
func groupID(g domain.Group) int64           { return g.ID }
