// Package api provides the HTTP handlers for the roster REST API.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"volunteer-roster/internal/domain"
)

// personService defines the person operations used by the API handler.
type personService interface {
	List(ctx context.Context, filter domain.PersonFilter, page domain.PageRequest) (domain.Page[domain.Person], error)
	Create(ctx context.Context, req domain.CreateOrUpdatePersonRequest) (*domain.Person, error)
	Get(ctx context.Context, id int64) (*domain.Person, error)
	Update(ctx context.Context, id int64, req domain.CreateOrUpdatePersonRequest) (*domain.Person, error)
	Delete(ctx context.Context, id int64) error
	UpdateRoles(ctx context.Context, id int64, req domain.UpdateAssociationsRequest) (*domain.Person, error)
	UpdateGroups(ctx context.Context, id int64, req domain.UpdateAssociationsRequest) (*domain.Person, error)
}

// groupService defines the group operations used by the API handler.
type groupService interface {
	List(ctx context.Context, filter domain.GroupFilter, page domain.PageRequest) (domain.Page[domain.Group], error)
	Create(ctx context.Context, req domain.CreateOrUpdateGroupRequest) (*domain.Group, error)
	Get(ctx context.Context, id int64) (*domain.Group, error)
	Update(ctx context.Context, id int64, req domain.CreateOrUpdateGroupRequest) (*domain.Group, error)
	Delete(ctx context.Context, id int64) error
	UpdatePermissions(ctx context.Context, id int64, req domain.UpdateAssociationsRequest) (*domain.Group, error)
}

type roleService interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Role], error)
	Create(ctx context.Context, req domain.CreateRoleRequest) (*domain.Role, error)
	Get(ctx context.Context, id int64) (*domain.Role, error)
	Delete(ctx context.Context, id int64) error
}

type permissionService interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.Permission], error)
	Create(ctx context.Context, req domain.CreatePermissionRequest) (*domain.Permission, error)
	Get(ctx context.Context, id int64) (*domain.Permission, error)
	Delete(ctx context.Context, id int64) error
}

type shiftTemplateService interface {
	List(ctx context.Context, page domain.PageRequest) (domain.Page[domain.ShiftTemplate], error)
	Create(ctx context.Context, req domain.CreateOrUpdateShiftTemplateRequest) (*domain.ShiftTemplate, error)
	Get(ctx context.Context, id int64) (*domain.ShiftTemplate, error)
	Update(ctx context.Context, id int64, req domain.CreateOrUpdateShiftTemplateRequest) (*domain.ShiftTemplate, error)
	Delete(ctx context.Context, id int64) error
}

// Services bundles the roster services the handler exposes.
type Services struct {
	People         personService
	Groups         groupService
	Roles          roleService
	Permissions    permissionService
	ShiftTemplates shiftTemplateService
}

// Handler serves the /api routes.
type Handler struct {
	svc             Services
	defaultPageSize int
	logger          *slog.Logger
}

// NewHandler creates a new Handler. defaultPageSize applies when a list
// request carries no size parameter.
func NewHandler(svc Services, defaultPageSize int, logger *slog.Logger) *Handler {
	if defaultPageSize <= 0 {
		defaultPageSize = domain.DefaultPageSize
	}
	return &Handler{svc: svc, defaultPageSize: defaultPageSize, logger: logger}
}

// Routes mounts every roster endpoint on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/person", func(r chi.Router) {
		r.Get("/", h.listPeople)
		r.Post("/", h.createPerson)
		r.Get("/{id}", h.withID(h.getPerson))
		r.Put("/{id}", h.withID(h.updatePerson))
		r.Delete("/{id}", h.withID(h.deletePerson))
		r.Patch("/{id}/role", h.withID(h.updatePersonRoles))
		r.Patch("/{id}/group", h.withID(h.updatePersonGroups))
	})
	r.Route("/group", func(r chi.Router) {
		r.Get("/", h.listGroups)
		r.Post("/", h.createGroup)
		r.Get("/{id}", h.withID(h.getGroup))
		r.Put("/{id}", h.withID(h.updateGroup))
		r.Delete("/{id}", h.withID(h.deleteGroup))
		r.Patch("/{id}/permission", h.withID(h.updateGroupPermissions))
	})
	r.Route("/role", func(r chi.Router) {
		r.Get("/", h.listRoles)
		r.Post("/", h.createRole)
		r.Get("/{id}", h.withID(h.getRole))
		r.Delete("/{id}", h.withID(h.deleteRole))
	})
	r.Route("/permission", func(r chi.Router) {
		r.Get("/", h.listPermissions)
		r.Post("/", h.createPermission)
		r.Get("/{id}", h.withID(h.getPermission))
		r.Delete("/{id}", h.withID(h.deletePermission))
	})
	r.Route("/shift/template", func(r chi.Router) {
		r.Get("/", h.listShiftTemplates)
		r.Post("/", h.createShiftTemplate)
		r.Get("/{id}", h.withID(h.getShiftTemplate))
		r.Put("/{id}", h.withID(h.updateShiftTemplate))
		r.Delete("/{id}", h.withID(h.deleteShiftTemplate))
	})
}

// respond writes v with status, or the mapped error when err is non-nil.
func respond[T any](h *Handler, w http.ResponseWriter, r *http.Request, status int, v T, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, status, v)
}

// withID parses {id} and passes it to fn, writing a 400 when malformed.
func (h *Handler) withID(fn func(w http.ResponseWriter, r *http.Request, id int64)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		fn(w, r, id)
	}
}

func (h *Handler) noContent(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
