package roster

import (
	"io"
	"log/slog"
	"testing"

	"volunteer-roster/internal/db/memstore"
)

func ptr[T any](v T) *T { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// services wires every service to one in-memory store.
type services struct {
	people      *PersonService
	groups      *GroupService
	roles       *RoleService
	permissions *PermissionService
	templates   *ShiftTemplateService
}

func newMemServices(t *testing.T) services {
	t.Helper()
	s := memstore.New()
	log := discardLogger()
	return services{
		people:      NewPersonService(s.People(), s.Roles(), s.Groups(), log),
		groups:      NewGroupService(s.Groups(), s.Permissions(), log),
		roles:       NewRoleService(s.Roles(), log),
		permissions: NewPermissionService(s.Permissions(), log),
		templates:   NewShiftTemplateService(s.ShiftTemplates(), s.Roles(), log),
	}
}
