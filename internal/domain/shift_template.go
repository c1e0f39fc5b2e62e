package domain

// ShiftTemplate describes a recurring shift and the role required to work it.
type ShiftTemplate struct {
	ID             int64
	Name           string
	RequiredRoleID *int64
}

// CreateOrUpdateShiftTemplateRequest holds parameters for creating or
// replacing a shift template.
type CreateOrUpdateShiftTemplateRequest struct {
	Name           *string
	RequiredRoleID *int64
}

// Validate checks that the request is well-formed.
func (r *CreateOrUpdateShiftTemplateRequest) Validate() error {
	if r.Name == nil {
		return ErrValidation("shift template name is required")
	}
	return nil
}
