package app

import (
	"context"
	"fmt"

	"volunteer-roster/internal/api"
	"volunteer-roster/internal/domain"
)

// seedDemo populates an empty store with a small festival crew. Idempotent:
// it does nothing once any role exists.
func seedDemo(ctx context.Context, svc api.Services) error {
	existing, err := svc.Roles.List(ctx, domain.PageRequest{Number: 0, Size: 1})
	if err != nil {
		return fmt.Errorf("check roles: %w", err)
	}
	if existing.Info.TotalElements > 0 {
		return nil
	}

	// --- Roles ---
	roleIDs := make(map[string]int64)
	for _, name := range []string{"bartender", "first aid", "stage hand", "shift lead"} {
		r, err := svc.Roles.Create(ctx, domain.CreateRoleRequest{Name: &name})
		if err != nil {
			return fmt.Errorf("create role %s: %w", name, err)
		}
		roleIDs[name] = r.ID
	}

	// --- Permissions ---
	permIDs := make(map[string]int64)
	for _, name := range []string{"bar", "backstage", "cash register", "first aid tent"} {
		p, err := svc.Permissions.Create(ctx, domain.CreatePermissionRequest{Name: &name})
		if err != nil {
			return fmt.Errorf("create permission %s: %w", name, err)
		}
		permIDs[name] = p.ID
	}

	// --- Groups ---
	groups := []struct {
		name  string
		perms []string
	}{
		{name: "bar crew", perms: []string{"bar", "cash register"}},
		{name: "stage crew", perms: []string{"backstage"}},
		{name: "medics", perms: []string{"first aid tent", "backstage"}},
	}
	groupIDs := make(map[string]int64)
	for _, g := range groups {
		created, err := svc.Groups.Create(ctx, domain.CreateOrUpdateGroupRequest{Name: &g.name})
		if err != nil {
			return fmt.Errorf("create group %s: %w", g.name, err)
		}
		ids := make([]int64, 0, len(g.perms))
		for _, p := range g.perms {
			ids = append(ids, permIDs[p])
		}
		if _, err := svc.Groups.UpdatePermissions(ctx, created.ID, domain.UpdateAssociationsRequest{
			Action: string(domain.ActionAdd), IDs: ids,
		}); err != nil {
			return fmt.Errorf("grant permissions to %s: %w", g.name, err)
		}
		groupIDs[g.name] = created.ID
	}

	// --- People ---
	people := []struct {
		name, email string
		active      bool
		roles       []string
		groups      []string
	}{
		{name: "Ada Byron", email: "ada@example.org", active: true, roles: []string{"bartender", "shift lead"}, groups: []string{"bar crew"}},
		{name: "Grant Lee", email: "grant@example.org", active: true, roles: []string{"stage hand"}, groups: []string{"stage crew"}},
		{name: "Frances Okoye", email: "frances@example.org", active: false, roles: []string{"first aid"}, groups: []string{"medics"}},
		{name: "Franklin Hale", email: "franklin@example.org", active: true, roles: []string{"first aid", "stage hand"}, groups: []string{"medics", "stage crew"}},
	}
	for _, p := range people {
		rids := make([]int64, 0, len(p.roles))
		for _, r := range p.roles {
			rids = append(rids, roleIDs[r])
		}
		created, err := svc.People.Create(ctx, domain.CreateOrUpdatePersonRequest{
			Name: &p.name, EmailAddress: &p.email, Active: &p.active, RoleIDs: rids,
		})
		if err != nil {
			return fmt.Errorf("create person %s: %w", p.name, err)
		}
		gids := make([]int64, 0, len(p.groups))
		for _, g := range p.groups {
			gids = append(gids, groupIDs[g])
		}
		if _, err := svc.People.UpdateGroups(ctx, created.ID, domain.UpdateAssociationsRequest{
			Action: string(domain.ActionAdd), IDs: gids,
		}); err != nil {
			return fmt.Errorf("add %s to groups: %w", p.name, err)
		}
	}

	// --- Shift templates ---
	templates := []struct {
		name string
		role string
	}{
		{name: "evening bar", role: "bartender"},
		{name: "medical standby", role: "first aid"},
		{name: "load-in", role: ""},
	}
	for _, st := range templates {
		req := domain.CreateOrUpdateShiftTemplateRequest{Name: &st.name}
		if st.role != "" {
			id := roleIDs[st.role]
			req.RequiredRoleID = &id
		}
		if _, err := svc.ShiftTemplates.Create(ctx, req); err != nil {
			return fmt.Errorf("create shift template %s: %w", st.name, err)
		}
	}
	return nil
}
