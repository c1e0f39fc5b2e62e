package domain

// Role is a capability a person can hold, such as "bartender".
type Role struct {
	ID   int64
	Name string
}

// Permission has the same shape as Role and is granted to groups.
type Permission struct {
	ID   int64
	Name string
}

// CreateRoleRequest holds parameters for creating a role.
type CreateRoleRequest struct {
	Name *string
}

// Validate checks that the request is well-formed.
func (r *CreateRoleRequest) Validate() error {
	if r.Name == nil {
		return ErrValidation("role name is required")
	}
	return nil
}

// CreatePermissionRequest holds parameters for creating a permission.
type CreatePermissionRequest struct {
	Name *string
}

// Validate checks that the request is well-formed.
func (r *CreatePermissionRequest) Validate() error {
	if r.Name == nil {
		return ErrValidation("permission name is required")
	}
	return nil
}
