package api

import "volunteer-roster/internal/domain"

// PageInfo is the pagination metadata of a list response.
type PageInfo struct {
	Size          int   `json:"size"`
	Number        int   `json:"number"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	IsFirst       bool  `json:"isFirst"`
	IsLast        bool  `json:"isLast"`
}

// Page is the JSON envelope of every list response.
type Page[T any] struct {
	Content  []T      `json:"content"`
	PageInfo PageInfo `json:"pageInfo"`
}

func pageToAPI[A, B any](p domain.Page[A], f func(A) B) Page[B] {
	out := domain.MapPage(p, f)
	return Page[B]{
		Content: out.Content,
		PageInfo: PageInfo{
			Size:          out.Info.Size,
			Number:        out.Info.Number,
			TotalElements: out.Info.TotalElements,
			TotalPages:    out.Info.TotalPages,
			IsFirst:       out.Info.IsFirst,
			IsLast:        out.Info.IsLast,
		},
	}
}

type Person struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	EmailAddress string  `json:"emailAddress"`
	Phone        *string `json:"phone,omitempty"`
	Active       bool    `json:"active"`
	RoleIDs      []int64 `json:"roleIds"`
	GroupIDs     []int64 `json:"groupIds"`
}

type PersonRequest struct {
	Name         *string `json:"name"`
	EmailAddress *string `json:"emailAddress"`
	Phone        *string `json:"phone"`
	Active       *bool   `json:"active"`
	RoleIDs      []int64 `json:"roleIds"`
}

func personToAPI(p domain.Person) Person {
	return Person{
		ID:           p.ID,
		Name:         p.Name,
		EmailAddress: p.EmailAddress,
		Phone:        p.Phone,
		Active:       p.Active,
		RoleIDs:      nonNil(p.RoleIDs),
		GroupIDs:     nonNil(p.GroupIDs),
	}
}

func (r PersonRequest) toDomain() domain.CreateOrUpdatePersonRequest {
	return domain.CreateOrUpdatePersonRequest{
		Name:         r.Name,
		EmailAddress: r.EmailAddress,
		Phone:        r.Phone,
		Active:       r.Active,
		RoleIDs:      r.RoleIDs,
	}
}

type Group struct {
	ID                int64   `json:"id"`
	Name              string  `json:"name"`
	PermissionIDs     []int64 `json:"permissionIds"`
	PersonIDs         []int64 `json:"personIds"`
	MemberCount       int64   `json:"memberCount"`
	ActiveMemberCount int64   `json:"activeMemberCount"`
}

type GroupRequest struct {
	Name *string `json:"name"`
}

func groupToAPI(g domain.Group) Group {
	return Group{
		ID:                g.ID,
		Name:              g.Name,
		PermissionIDs:     nonNil(g.PermissionIDs),
		PersonIDs:         nonNil(g.PersonIDs),
		MemberCount:       g.MemberCount,
		ActiveMemberCount: g.ActiveMemberCount,
	}
}

// NamedEntity is the JSON shape shared by roles and permissions.
type NamedEntity struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type NamedRequest struct {
	Name *string `json:"name"`
}

func roleToAPI(r domain.Role) NamedEntity { return NamedEntity{ID: r.ID, Name: r.Name} }

func permissionToAPI(p domain.Permission) NamedEntity { return NamedEntity{ID: p.ID, Name: p.Name} }

type ShiftTemplate struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	RequiredRoleID *int64 `json:"requiredRoleId,omitempty"`
}

type ShiftTemplateRequest struct {
	Name           *string `json:"name"`
	RequiredRoleID *int64  `json:"requiredRoleId"`
}

func shiftTemplateToAPI(st domain.ShiftTemplate) ShiftTemplate {
	return ShiftTemplate{ID: st.ID, Name: st.Name, RequiredRoleID: st.RequiredRoleID}
}

// Association update bodies. The id list is required; an empty list is a
// valid no-op.
type (
	UpdateRolesRequest struct {
		Action  string  `json:"action"`
		RoleIDs []int64 `json:"roleIds"`
	}
	UpdateGroupsRequest struct {
		Action   string  `json:"action"`
		GroupIDs []int64 `json:"groupIds"`
	}
	UpdatePermissionsRequest struct {
		Action        string  `json:"action"`
		PermissionIDs []int64 `json:"permissionIds"`
	}
)

func nonNil(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}

func (r ShiftTemplateRequest) toDomain() domain.CreateOrUpdateShiftTemplateRequest {
	return domain.CreateOrUpdateShiftTemplateRequest{Name: r.Name, RequiredRoleID: r.RequiredRoleID}
}
