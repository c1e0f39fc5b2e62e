package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"volunteer-roster/internal/domain"
)

// pathID binds the {id} URL parameter.
func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	var id int64
	if err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, raw, &id); err != nil {
		return 0, domain.ErrValidation("invalid id %q", raw)
	}
	return id, nil
}

// bindQuery binds a form-style, non-exploded query parameter into dest. It
// reports whether the parameter carried a non-empty value.
func bindQuery(r *http.Request, name string, dest any) (bool, error) {
	q := r.URL.Query()
	if q.Get(name) == "" {
		return false, nil
	}
	if err := runtime.BindQueryParameter("form", false, false, name, q, dest); err != nil {
		return false, domain.ErrValidation("invalid %s: %v", name, err)
	}
	return true, nil
}

// queryIDs binds a comma-separated id list. An absent or empty parameter
// yields nil.
func queryIDs(r *http.Request, name string) ([]int64, error) {
	var ids []int64
	if _, err := bindQuery(r, name, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func queryBool(r *http.Request, name string) (*bool, error) {
	var b bool
	ok, err := bindQuery(r, name, &b)
	if err != nil || !ok {
		return nil, err
	}
	return &b, nil
}

// queryString returns nil when the parameter is absent and a pointer to the
// empty string when it is present but blank.
func queryString(r *http.Request, name string) *string {
	if !r.URL.Query().Has(name) {
		return nil
	}
	v := r.URL.Query().Get(name)
	return &v
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	n := def
	if _, err := bindQuery(r, name, &n); err != nil {
		return 0, err
	}
	return n, nil
}

// pageFromQuery reads page, size and direction, applying defaults.
func (h *Handler) pageFromQuery(r *http.Request) (domain.PageRequest, error) {
	number, err := queryInt(r, "page", 0)
	if err != nil {
		return domain.PageRequest{}, err
	}
	size, err := queryInt(r, "size", h.defaultPageSize)
	if err != nil {
		return domain.PageRequest{}, err
	}
	page := domain.PageRequest{
		Number:    number,
		Size:      size,
		Direction: domain.ParseSortDirection(r.URL.Query().Get("direction")),
	}
	return page, page.Validate()
}
