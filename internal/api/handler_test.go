package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-roster/internal/db/memstore"
	"volunteer-roster/internal/domain"
	"volunteer-roster/internal/service/roster"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	s := memstore.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(Services{
		People:         roster.NewPersonService(s.People(), s.Roles(), s.Groups(), log),
		Groups:         roster.NewGroupService(s.Groups(), s.Permissions(), log),
		Roles:          roster.NewRoleService(s.Roles(), log),
		Permissions:    roster.NewPermissionService(s.Permissions(), log),
		ShiftTemplates: roster.NewShiftTemplateService(s.ShiftTemplates(), s.Roles(), log),
	}, 0, log)

	r := chi.NewRouter()
	r.Route("/api", h.Routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body any) (int, []byte) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close() //nolint:errcheck

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func createNamed(t *testing.T, srv *httptest.Server, path, name string) NamedEntity {
	t.Helper()
	status, body := doJSON(t, srv, http.MethodPost, path, map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, status, string(body))
	return decode[NamedEntity](t, body)
}

func createPerson(t *testing.T, srv *httptest.Server, name string, active bool, roleIDs ...int64) Person {
	t.Helper()
	status, body := doJSON(t, srv, http.MethodPost, "/api/person", map[string]any{
		"name": name, "emailAddress": name + "@example.org", "active": active, "roleIds": roleIDs,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	return decode[Person](t, body)
}

func TestPersonEndpoints(t *testing.T) {
	srv := newTestServer(t)
	bartender := createNamed(t, srv, "/api/role", "bartender")

	p := createPerson(t, srv, "Franklin", true, bartender.ID)
	assert.Equal(t, []int64{bartender.ID}, p.RoleIDs)
	assert.Equal(t, []int64{}, p.GroupIDs)

	status, body := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/person/%d", p.ID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Franklin", decode[Person](t, body).Name)

	status, body = doJSON(t, srv, http.MethodPut, "/api/person/999", map[string]any{
		"name": "Grant", "emailAddress": "g@example.org", "active": true,
	})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.NotEqual(t, int64(999), decode[Person](t, body).ID)

	status, _ = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/person/%d", p.ID), nil)
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/person/%d", p.ID), nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/person/%d", p.ID), nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, http.StatusNotFound, decode[errorBody](t, body).Code)
}

func TestCreatePerson_MissingFieldIs400(t *testing.T) {
	srv := newTestServer(t)

	status, body := doJSON(t, srv, http.MethodPost, "/api/person", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.NotEmpty(t, decode[errorBody](t, body).Message)

	status, _ = doJSON(t, srv, http.MethodPost, "/api/person", "not an object")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestListPeople_FiltersAndPaging(t *testing.T) {
	srv := newTestServer(t)
	r5 := createNamed(t, srv, "/api/role", "five")
	r12 := createNamed(t, srv, "/api/role", "twelve")

	createPerson(t, srv, "Franklin", true, r5.ID, r12.ID)
	createPerson(t, srv, "Frances", false, r5.ID)
	createPerson(t, srv, "Grant", true, r12.ID)

	status, body := doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/person?roleIds=%d,%d", r5.ID, r12.ID), nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[Page[Person]](t, body)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Franklin", page.Content[0].Name)
	assert.Equal(t, 25, page.PageInfo.Size)

	status, body = doJSON(t, srv, http.MethodGet, "/api/person?like=RAN&active=true&size=1&direction=descending", nil)
	require.Equal(t, http.StatusOK, status)
	page = decode[Page[Person]](t, body)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Grant", page.Content[0].Name)
	assert.Equal(t, int64(2), page.PageInfo.TotalElements)
	assert.True(t, page.PageInfo.IsFirst)
	assert.False(t, page.PageInfo.IsLast)

	for _, q := range []string{"roleIds=1,x", "active=maybe", "page=-1", "size=0", "page=abc"} {
		status, _ = doJSON(t, srv, http.MethodGet, "/api/person?"+q, nil)
		assert.Equal(t, http.StatusBadRequest, status, q)
	}
}

func TestUpdatePersonRoles(t *testing.T) {
	srv := newTestServer(t)
	a := createNamed(t, srv, "/api/role", "a")
	b := createNamed(t, srv, "/api/role", "b")
	p := createPerson(t, srv, "Ada", true, a.ID)
	path := fmt.Sprintf("/api/person/%d/role", p.ID)

	status, body := doJSON(t, srv, http.MethodPatch, path, map[string]any{"action": "add", "roleIds": []int64{a.ID, a.ID, b.ID}})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, []int64{a.ID, b.ID}, decode[Person](t, body).RoleIDs)

	status, _ = doJSON(t, srv, http.MethodPatch, path, map[string]any{"action": "replace", "roleIds": []int64{a.ID}})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, srv, http.MethodPatch, path, map[string]any{"action": "remove"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _ = doJSON(t, srv, http.MethodPatch, "/api/person/999/role", map[string]any{"action": "add", "roleIds": []int64{a.ID}})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestGroupEndpoints(t *testing.T) {
	srv := newTestServer(t)
	door := createNamed(t, srv, "/api/permission", "door")
	bar := createNamed(t, srv, "/api/permission", "bar")

	status, body := doJSON(t, srv, http.MethodPost, "/api/group", map[string]string{"name": "xyz-crew"})
	require.Equal(t, http.StatusCreated, status)
	crew := decode[Group](t, body)

	status, body = doJSON(t, srv, http.MethodPost, "/api/group", map[string]string{"name": "xyz-crew"})
	assert.Equal(t, http.StatusBadRequest, status, string(body))

	status, body = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/group/%d/permission", crew.ID),
		map[string]any{"action": "add", "permissionIds": []int64{door.ID, bar.ID}})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, []int64{door.ID, bar.ID}, decode[Group](t, body).PermissionIDs)

	p := createPerson(t, srv, "Ada", true)
	status, _ = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/person/%d/group", p.ID),
		map[string]any{"action": "add", "groupIds": []int64{crew.ID}})
	require.Equal(t, http.StatusOK, status)

	status, body = doJSON(t, srv, http.MethodGet,
		fmt.Sprintf("/api/group?name=XYZ&permissions=%d,%d&people=%d", door.ID, bar.ID, p.ID), nil)
	require.Equal(t, http.StatusOK, status)
	page := decode[Page[Group]](t, body)
	require.Len(t, page.Content, 1)
	assert.Equal(t, int64(1), page.Content[0].MemberCount)
	assert.Equal(t, int64(1), page.Content[0].ActiveMemberCount)
	assert.Equal(t, []int64{p.ID}, page.Content[0].PersonIDs)

	status, _ = doJSON(t, srv, http.MethodGet, "/api/group/abc", nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestShiftTemplateEndpoints(t *testing.T) {
	srv := newTestServer(t)
	role := createNamed(t, srv, "/api/role", "medic")

	status, body := doJSON(t, srv, http.MethodPost, "/api/shift/template", map[string]any{"name": "first aid", "requiredRoleId": role.ID})
	require.Equal(t, http.StatusCreated, status, string(body))
	st := decode[ShiftTemplate](t, body)
	require.NotNil(t, st.RequiredRoleID)

	status, _ = doJSON(t, srv, http.MethodPost, "/api/shift/template", map[string]any{"name": "x", "requiredRoleId": 999})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = doJSON(t, srv, http.MethodGet, "/api/shift/template", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[Page[ShiftTemplate]](t, body).Content, 1)

	status, body = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/shift/template/%d", st.ID), nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, "first aid", decode[ShiftTemplate](t, body).Name)

	status, _ = doJSON(t, srv, http.MethodGet, "/api/shiftTemplate", nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestHTTPStatusFromDomainError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "not found", err: domain.ErrNotFound("role %d not found", 1), want: http.StatusNotFound},
		{name: "validation", err: domain.ErrValidation("bad"), want: http.StatusBadRequest},
		{name: "conflict", err: domain.ErrConflict("dup"), want: http.StatusConflict},
		{name: "wrapped not found", err: fmt.Errorf("load: %w", domain.ErrNotFound("x")), want: http.StatusNotFound},
		{name: "other", err: io.EOF, want: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, httpStatusFromDomainError(tt.err))
		})
	}
}

func TestQueryIDs(t *testing.T) {
	parse := func(raw string) ([]int64, error) {
		return queryIDs(httptest.NewRequest(http.MethodGet, "/api/person?roleIds="+raw, nil), "roleIds")
	}

	ids, err := parse("")
	require.NoError(t, err)
	assert.Nil(t, ids)

	ids, err = parse("5,12")
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 12}, ids)

	var validationErr *domain.ValidationError
	for _, raw := range []string{"5,,12", "5,x", "5&roleIds=12"} {
		_, err = parse(raw)
		assert.ErrorAs(t, err, &validationErr, raw)
	}
}

func TestQueryBoolAndInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/person?active=false&page=2", nil)

	active, err := queryBool(req, "active")
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.False(t, *active)

	n, err := queryInt(req, "page", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	n, err = queryInt(req, "size", 25)
	require.NoError(t, err)
	assert.Equal(t, 25, n)

	active, err = queryBool(req, "missing")
	require.NoError(t, err)
	assert.Nil(t, active)
}

func newMockServer(t *testing.T, svc Services) *httptest.Server {
	t.Helper()
	h := NewHandler(svc, 0, slog.New(slog.NewTextHandler(io.Discard, nil)))
	r := chi.NewRouter()
	r.Route("/api", h.Routes)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHandler_ServiceErrorIsMasked(t *testing.T) {
	srv := newMockServer(t, Services{Roles: &mockRoleService{
		listFn: func(_ context.Context, _ domain.PageRequest) (domain.Page[domain.Role], error) {
			return domain.Page[domain.Role]{}, errors.New("database is locked")
		},
		getFn: func(_ context.Context, id int64) (*domain.Role, error) {
			return nil, domain.ErrNotFound("role %d not found", id)
		},
	}})

	status, body := doJSON(t, srv, http.MethodGet, "/api/role", nil)
	require.Equal(t, http.StatusInternalServerError, status)
	e := decode[errorBody](t, body)
	assert.Equal(t, http.StatusInternalServerError, e.Code)
	assert.Equal(t, "Internal Server Error", e.Message)
	assert.NotContains(t, string(body), "locked")

	status, body = doJSON(t, srv, http.MethodGet, "/api/role/7", nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "role 7 not found", decode[errorBody](t, body).Message)
}

func TestHandler_ListRolesPassesPage(t *testing.T) {
	var got domain.PageRequest
	srv := newMockServer(t, Services{Roles: &mockRoleService{
		listFn: func(_ context.Context, page domain.PageRequest) (domain.Page[domain.Role], error) {
			got = page
			return domain.NewPage([]domain.Role{{ID: 1, Name: "medic"}}, page, 6), nil
		},
	}})

	status, body := doJSON(t, srv, http.MethodGet, "/api/role?page=1&size=5&direction=descending", nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, domain.PageRequest{Number: 1, Size: 5, Direction: domain.SortDescending}, got)

	page := decode[Page[NamedEntity]](t, body)
	assert.Equal(t, 2, page.PageInfo.TotalPages)
	assert.True(t, page.PageInfo.IsLast)
}

func TestHandler_UpdatePersonGroupsForwardsRequest(t *testing.T) {
	var gotID int64
	var gotReq domain.UpdateAssociationsRequest
	srv := newMockServer(t, Services{People: &mockPersonService{
		updateGroupsFn: func(_ context.Context, id int64, req domain.UpdateAssociationsRequest) (*domain.Person, error) {
			gotID, gotReq = id, req
			if req.Action != string(domain.ActionAdd) {
				return nil, domain.ErrValidation("invalid action %q", req.Action)
			}
			return &domain.Person{ID: id, Name: "ada", GroupIDs: req.IDs}, nil
		},
	}})

	status, body := doJSON(t, srv, http.MethodPatch, "/api/person/3/group", map[string]any{"action": "add", "groupIds": []int64{4, 9}})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, int64(3), gotID)
	assert.Equal(t, []int64{4, 9}, gotReq.IDs)
	assert.Equal(t, []int64{4, 9}, decode[Person](t, body).GroupIDs)

	status, body = doJSON(t, srv, http.MethodPatch, "/api/person/3/group", map[string]any{"action": "MOVE", "groupIds": []int64{4}})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `invalid action "MOVE"`, decode[errorBody](t, body).Message)
}
