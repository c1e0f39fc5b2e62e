package api

import (
	"net/http"

	"volunteer-roster/internal/domain"
)

func (h *Handler) listGroups(w http.ResponseWriter, r *http.Request) {
	page, err := h.pageFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	permissionIDs, err := queryIDs(r, "permissions")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	personIDs, err := queryIDs(r, "people")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	filter := domain.GroupFilter{
		NameLike:      queryString(r, "name"),
		PermissionIDs: permissionIDs,
		PersonIDs:     personIDs,
	}
	result, err := h.svc.Groups.List(r.Context(), filter, page)
	respond(h, w, r, http.StatusOK, pageToAPI(result, groupToAPI), err)
}

func (h *Handler) createGroup(w http.ResponseWriter, r *http.Request) {
	var body GroupRequest
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	g, err := h.svc.Groups.Create(r.Context(), domain.CreateOrUpdateGroupRequest{Name: body.Name})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, groupToAPI(*g))
}

func (h *Handler) getGroup(w http.ResponseWriter, r *http.Request, id int64) {
	g, err := h.svc.Groups.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupToAPI(*g))
}

func (h *Handler) updateGroup(w http.ResponseWriter, r *http.Request, id int64) {
	var body GroupRequest
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	g, err := h.svc.Groups.Update(r.Context(), id, domain.CreateOrUpdateGroupRequest{Name: body.Name})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupToAPI(*g))
}

func (h *Handler) deleteGroup(w http.ResponseWriter, r *http.Request, id int64) {
	h.noContent(w, r, h.svc.Groups.Delete(r.Context(), id))
}

func (h *Handler) updateGroupPermissions(w http.ResponseWriter, r *http.Request, id int64) {
	var body UpdatePermissionsRequest
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	g, err := h.svc.Groups.UpdatePermissions(r.Context(), id,
		domain.UpdateAssociationsRequest{Action: body.Action, IDs: body.PermissionIDs})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, groupToAPI(*g))
}
