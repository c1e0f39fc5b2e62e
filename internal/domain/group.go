package domain

// Group is a named collection of people that carries a set of permissions.
type Group struct {
	ID            int64
	Name          string
	PermissionIDs []int64 // set; persisted with the group

	// Derived from person membership; never written through the group.
	PersonIDs         []int64
	MemberCount       int64
	ActiveMemberCount int64
}

// CreateOrUpdateGroupRequest holds parameters for creating or renaming a group.
type CreateOrUpdateGroupRequest struct {
	Name *string
}

// Validate checks that the request is well-formed.
func (r *CreateOrUpdateGroupRequest) Validate() error {
	if r.Name == nil {
		return ErrValidation("group name is required")
	}
	return nil
}

// GroupFilter selects groups for listing. Every field is optional.
type GroupFilter struct {
	NameLike      *string
	PermissionIDs []int64 // group must carry every listed permission
	PersonIDs     []int64 // group must contain every listed person
}

// Predicate composes the filter into a single conjunction, one Contains
// criterion per requested id.
func (f GroupFilter) Predicate() Predicate[Group] {
	var p Predicate[Group]
	if f.NameLike != nil {
		p = p.And(NameLike(*f.NameLike, func(v Group) string { return v.Name }))
	}
	for _, id := range f.PermissionIDs {
		p = p.And(Contains(FieldPermissions, id, func(v Group) []int64 { return v.PermissionIDs }))
	}
	for _, id := range f.PersonIDs {
		p = p.And(Contains(FieldPeople, id, func(v Group) []int64 { return v.PersonIDs }))
	}
	return p
}
