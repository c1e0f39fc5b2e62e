package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-roster/internal/domain"
)

func TestRoleRepo_CRUD(t *testing.T) {
	roles := NewRoleRepo(setupPools(t))
	ctx := context.Background()

	r, err := roles.Save(ctx, &domain.Role{Name: "bartender"})
	require.NoError(t, err)
	assert.NotZero(t, r.ID)

	found, err := roles.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, *r, *found)

	require.NoError(t, roles.Delete(ctx, r.ID))
	require.NoError(t, roles.Delete(ctx, r.ID))

	ok, err := roles.Exists(ctx, r.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoleRepo_UniqueName(t *testing.T) {
	roles := NewRoleRepo(setupPools(t))
	ctx := context.Background()

	_, err := roles.Save(ctx, &domain.Role{Name: "medic"})
	require.NoError(t, err)

	_, err = roles.Save(ctx, &domain.Role{Name: "medic"})
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestRoleRepo_QuerySorted(t *testing.T) {
	roles := NewRoleRepo(setupPools(t))
	ctx := context.Background()
	seedRoles(t, roles, "usher", "bartender", "medic")

	got, total, err := roles.Query(ctx, domain.Predicate[domain.Role]{}, domain.PageRequest{Number: 0, Size: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, got, 2)
	assert.Equal(t, "bartender", got[0].Name)
	assert.Equal(t, "medic", got[1].Name)
}

func TestPermissionRepo_ListByIDs(t *testing.T) {
	perms := NewPermissionRepo(setupPools(t))
	ctx := context.Background()
	ids := seedPermissions(t, perms, "door", "bar")

	got, err := perms.ListByIDs(ctx, []int64{ids[1], 404})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bar", got[0].Name)

	_, err = perms.GetByID(ctx, 404)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}
