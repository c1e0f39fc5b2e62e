package domain

import (
	"slices"
	"strings"
)

// Op identifies the kind of test a Criterion performs.
type Op string

const (
	// OpNameLike is a case-insensitive substring match on a name.
	OpNameLike Op = "name_like"
	// OpEquals is an equality test on a scalar field.
	OpEquals Op = "equals"
	// OpContains tests that a single id is in an association set.
	OpContains Op = "contains"
)

// Field names the entity attribute a Criterion inspects.
type Field string

const (
	FieldName        Field = "name"
	FieldActive      Field = "active"
	FieldRoles       Field = "roles"
	FieldGroups      Field = "groups"
	FieldPermissions Field = "permissions"
	FieldPeople      Field = "people"
)

// Criterion is one independently evaluable filter clause over T.
//
// Op, Field and Value describe the clause so that a store can translate it
// into its own query language; Matches evaluates it directly in memory.
// Both interpretations must agree.
type Criterion[T any] struct {
	Op    Op
	Field Field
	Value any
	match func(T) bool
}

// Matches reports whether v satisfies the clause.
func (c Criterion[T]) Matches(v T) bool {
	if c.match == nil {
		return true
	}
	return c.match(v)
}

// NameLike matches entities whose name contains pattern, ignoring case.
// The pattern is a literal substring, not a glob or regular expression.
func NameLike[T any](pattern string, name func(T) string) Criterion[T] {
	lowered := strings.ToLower(pattern)
	return Criterion[T]{
		Op:    OpNameLike,
		Field: FieldName,
		Value: pattern,
		match: func(v T) bool {
			return strings.Contains(strings.ToLower(name(v)), lowered)
		},
	}
}

// Equals matches entities whose field equals want.
func Equals[T any, V comparable](field Field, want V, get func(T) V) Criterion[T] {
	return Criterion[T]{
		Op:    OpEquals,
		Field: field,
		Value: want,
		match: func(v T) bool { return get(v) == want },
	}
}

// Contains matches entities whose association set on field includes id.
func Contains[T any](field Field, id int64, ids func(T) []int64) Criterion[T] {
	return Criterion[T]{
		Op:    OpContains,
		Field: field,
		Value: id,
		match: func(v T) bool { return slices.Contains(ids(v), id) },
	}
}

// Predicate is the logical AND of a list of criteria. The zero value has no
// criteria and matches everything.
type Predicate[T any] struct {
	criteria []Criterion[T]
}

// AllOf returns the conjunction of criteria.
func AllOf[T any](criteria ...Criterion[T]) Predicate[T] {
	return Predicate[T]{criteria: slices.Clone(criteria)}
}

// And returns a new predicate with criteria appended.
func (p Predicate[T]) And(criteria ...Criterion[T]) Predicate[T] {
	out := make([]Criterion[T], 0, len(p.criteria)+len(criteria))
	out = append(out, p.criteria...)
	out = append(out, criteria...)
	return Predicate[T]{criteria: out}
}

// Criteria returns the clauses in the order they were added.
func (p Predicate[T]) Criteria() []Criterion[T] {
	return slices.Clone(p.criteria)
}

// IsEmpty reports whether the predicate has no criteria.
func (p Predicate[T]) IsEmpty() bool {
	return len(p.criteria) == 0
}

// Matches reports whether v satisfies every criterion.
func (p Predicate[T]) Matches(v T) bool {
	for _, c := range p.criteria {
		if !c.Matches(v) {
			return false
		}
	}
	return true
}

// Filter returns the elements of vs that satisfy p, in order.
func (p Predicate[T]) Filter(vs []T) []T {
	var out []T
	for _, v := range vs {
		if p.Matches(v) {
			out = append(out, v)
		}
	}
	return out
}
