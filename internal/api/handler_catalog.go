package api

import (
	"net/http"

	"volunteer-roster/internal/domain"
)

// Roles, permissions and shift templates.

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	page, err := h.pageFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	result, err := h.svc.Roles.List(r.Context(), page)
	respond(h, w, r, http.StatusOK, pageToAPI(result, roleToAPI), err)
}

func (h *Handler) createRole(w http.ResponseWriter, r *http.Request) {
	var body NamedRequest
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	role, err := h.svc.Roles.Create(r.Context(), domain.CreateRoleRequest{Name: body.Name})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, roleToAPI(*role))
}

func (h *Handler) getRole(w http.ResponseWriter, r *http.Request, id int64) {
	role, err := h.svc.Roles.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, roleToAPI(*role))
}

func (h *Handler) deleteRole(w http.ResponseWriter, r *http.Request, id int64) {
	h.noContent(w, r, h.svc.Roles.Delete(r.Context(), id))
}

func (h *Handler) listPermissions(w http.ResponseWriter, r *http.Request) {
	page, err := h.pageFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	result, err := h.svc.Permissions.List(r.Context(), page)
	respond(h, w, r, http.StatusOK, pageToAPI(result, permissionToAPI), err)
}

func (h *Handler) createPermission(w http.ResponseWriter, r *http.Request) {
	var body NamedRequest
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.Permissions.Create(r.Context(), domain.CreatePermissionRequest{Name: body.Name})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, permissionToAPI(*p))
}

func (h *Handler) getPermission(w http.ResponseWriter, r *http.Request, id int64) {
	p, err := h.svc.Permissions.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, permissionToAPI(*p))
}

func (h *Handler) deletePermission(w http.ResponseWriter, r *http.Request, id int64) {
	h.noContent(w, r, h.svc.Permissions.Delete(r.Context(), id))
}

func (h *Handler) listShiftTemplates(w http.ResponseWriter, r *http.Request) {
	page, err := h.pageFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	result, err := h.svc.ShiftTemplates.List(r.Context(), page)
	respond(h, w, r, http.StatusOK, pageToAPI(result, shiftTemplateToAPI), err)
}

func (h *Handler) createShiftTemplate(w http.ResponseWriter, r *http.Request) {
	var body ShiftTemplateRequest
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.svc.ShiftTemplates.Create(r.Context(), body.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, shiftTemplateToAPI(*st))
}

func (h *Handler) getShiftTemplate(w http.ResponseWriter, r *http.Request, id int64) {
	st, err := h.svc.ShiftTemplates.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shiftTemplateToAPI(*st))
}

func (h *Handler) updateShiftTemplate(w http.ResponseWriter, r *http.Request, id int64) {
	var body ShiftTemplateRequest
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	st, err := h.svc.ShiftTemplates.Update(r.Context(), id, body.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, shiftTemplateToAPI(*st))
}

func (h *Handler) deleteShiftTemplate(w http.ResponseWriter, r *http.Request, id int64) {
	h.noContent(w, r, h.svc.ShiftTemplates.Delete(r.Context(), id))
}
