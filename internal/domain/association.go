package domain

import (
	"slices"
)

// UpdateAction selects how an association update combines ids with the
// existing set.
type UpdateAction string

const (
	ActionAdd    UpdateAction = "add"
	ActionRemove UpdateAction = "remove"
)

// ParseUpdateAction accepts exactly "add" or "remove".
func ParseUpdateAction(s string) (UpdateAction, error) {
	switch UpdateAction(s) {
	case ActionAdd, ActionRemove:
		return UpdateAction(s), nil
	default:
		return "", ErrValidation("action must be 'add' or 'remove', got %q", s)
	}
}

// UpdateAssociationsRequest adds ids to, or removes ids from, one
// association set of an entity.
type UpdateAssociationsRequest struct {
	Action string
	IDs    []int64 // must be non-nil; empty is a valid no-op
}

// Validate checks the action token and the presence of the id list, and
// returns the parsed action.
func (r *UpdateAssociationsRequest) Validate() (UpdateAction, error) {
	action, err := ParseUpdateAction(r.Action)
	if err != nil {
		return "", err
	}
	if r.IDs == nil {
		return "", ErrValidation("id list is required")
	}
	return action, nil
}

// Reconcile computes the association set that results from applying action
// with requested to current. Add is set union, remove is set difference;
// duplicates in either input are absorbed. The result is sorted and never nil.
func Reconcile(current, requested []int64, action UpdateAction) ([]int64, error) {
	next := make(map[int64]struct{}, len(current)+len(requested))
	for _, id := range current {
		next[id] = struct{}{}
	}

	switch action {
	case ActionAdd:
		for _, id := range requested {
			next[id] = struct{}{}
		}
	case ActionRemove:
		for _, id := range requested {
			delete(next, id)
		}
	default:
		return nil, ErrValidation("unknown update action %q", action)
	}

	return sortedIDs(next), nil
}

// UniqueIDs returns ids de-duplicated and sorted. The result is never nil.
func UniqueIDs(ids []int64) []int64 {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return sortedIDs(set)
}

func sortedIDs(set map[int64]struct{}) []int64 {
	out := make([]int64, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}
