package api

import (
	"net/http"

	"volunteer-roster/internal/domain"
)

func (h *Handler) listPeople(w http.ResponseWriter, r *http.Request) {
	page, err := h.pageFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	filter, err := personFilterFromQuery(r)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	result, err := h.svc.People.List(r.Context(), filter, page)
	respond(h, w, r, http.StatusOK, pageToAPI(result, personToAPI), err)
}

func personFilterFromQuery(r *http.Request) (domain.PersonFilter, error) {
	active, err := queryBool(r, "active")
	if err != nil {
		return domain.PersonFilter{}, err
	}
	roleIDs, err := queryIDs(r, "roleIds")
	if err != nil {
		return domain.PersonFilter{}, err
	}
	groupIDs, err := queryIDs(r, "groupIds")
	if err != nil {
		return domain.PersonFilter{}, err
	}
	return domain.PersonFilter{
		Active:   active,
		NameLike: queryString(r, "like"),
		RoleIDs:  roleIDs,
		GroupIDs: groupIDs,
	}, nil
}

func (h *Handler) createPerson(w http.ResponseWriter, r *http.Request) {
	var body PersonRequest
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.People.Create(r.Context(), body.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, personToAPI(*p))
}

func (h *Handler) getPerson(w http.ResponseWriter, r *http.Request, id int64) {
	p, err := h.svc.People.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, personToAPI(*p))
}

func (h *Handler) updatePerson(w http.ResponseWriter, r *http.Request, id int64) {
	var body PersonRequest
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.People.Update(r.Context(), id, body.toDomain())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, personToAPI(*p))
}

func (h *Handler) deletePerson(w http.ResponseWriter, r *http.Request, id int64) {
	h.noContent(w, r, h.svc.People.Delete(r.Context(), id))
}

func (h *Handler) updatePersonRoles(w http.ResponseWriter, r *http.Request, id int64) {
	var body UpdateRolesRequest
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.People.UpdateRoles(r.Context(), id, domain.UpdateAssociationsRequest{Action: body.Action, IDs: body.RoleIDs})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, personToAPI(*p))
}

func (h *Handler) updatePersonGroups(w http.ResponseWriter, r *http.Request, id int64) {
	var body UpdateGroupsRequest
	if err := decodeJSON(r, &body); err != nil {
		h.writeError(w, r, err)
		return
	}
	p, err := h.svc.People.UpdateGroups(r.Context(), id, domain.UpdateAssociationsRequest{Action: body.Action, IDs: body.GroupIDs})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, personToAPI(*p))
}
