package domain

// Person is a volunteer on the roster.
type Person struct {
	ID           int64
	Name         string
	EmailAddress string
	Phone        *string
	Active       bool
	RoleIDs      []int64 // set; no duplicates
	GroupIDs     []int64 // set; no duplicates
}

// CreateOrUpdatePersonRequest holds parameters for creating or replacing a person.
// Name, EmailAddress and Active are required.
type CreateOrUpdatePersonRequest struct {
	Name         *string
	EmailAddress *string
	Phone        *string
	Active       *bool
	RoleIDs      []int64
}

// Validate checks that the request is well-formed.
func (r *CreateOrUpdatePersonRequest) Validate() error {
	if r.Name == nil || r.EmailAddress == nil || r.Active == nil {
		return ErrValidation("name, email address, and active are required")
	}
	return nil
}

// PersonFilter selects people for listing. Every field is optional; an absent
// field places no constraint on the result.
type PersonFilter struct {
	Active   *bool
	NameLike *string
	RoleIDs  []int64 // person must hold every listed role
	GroupIDs []int64 // person must belong to every listed group
}

// Predicate composes the filter into a single conjunction. Each id in RoleIDs
// and GroupIDs contributes its own Contains criterion, so the result holds
// only people associated with all of them.
func (f PersonFilter) Predicate() Predicate[Person] {
	var p Predicate[Person]
	if f.Active != nil {
		p = p.And(Equals(FieldActive, *f.Active, func(v Person) bool { return v.Active }))
	}
	if f.NameLike != nil {
		p = p.And(NameLike(*f.NameLike, func(v Person) string { return v.Name }))
	}
	for _, id := range f.RoleIDs {
		p = p.And(Contains(FieldRoles, id, func(v Person) []int64 { return v.RoleIDs }))
	}
	for _, id := range f.GroupIDs {
		p = p.And(Contains(FieldGroups, id, func(v Person) []int64 { return v.GroupIDs }))
	}
	return p
}
