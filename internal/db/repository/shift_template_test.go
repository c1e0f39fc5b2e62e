package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"volunteer-roster/internal/domain"
)

func TestShiftTemplateRepo_CRUD(t *testing.T) {
	pools := setupPools(t)
	templates, roles := NewShiftTemplateRepo(pools), NewRoleRepo(pools)
	ctx := context.Background()
	roleID := seedRoles(t, roles, "bartender")[0]

	st, err := templates.Save(ctx, &domain.ShiftTemplate{Name: "Friday bar", RequiredRoleID: &roleID})
	require.NoError(t, err)
	require.NotNil(t, st.RequiredRoleID)
	assert.Equal(t, roleID, *st.RequiredRoleID)

	st.Name = "Saturday bar"
	st.RequiredRoleID = nil
	updated, err := templates.Save(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "Saturday bar", updated.Name)
	assert.Nil(t, updated.RequiredRoleID)

	require.NoError(t, templates.Delete(ctx, st.ID))
	_, err = templates.GetByID(ctx, st.ID)
	var notFound *domain.NotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestShiftTemplateRepo_RoleDeleteClearsRequirement(t *testing.T) {
	pools := setupPools(t)
	templates, roles := NewShiftTemplateRepo(pools), NewRoleRepo(pools)
	ctx := context.Background()
	roleID := seedRoles(t, roles, "medic")[0]

	st, err := templates.Save(ctx, &domain.ShiftTemplate{Name: "first aid", RequiredRoleID: &roleID})
	require.NoError(t, err)
	require.NoError(t, roles.Delete(ctx, roleID))

	got, err := templates.GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RequiredRoleID)
}

func TestShiftTemplateRepo_UnknownRole(t *testing.T) {
	templates := NewShiftTemplateRepo(setupPools(t))

	_, err := templates.Save(context.Background(), &domain.ShiftTemplate{Name: "x", RequiredRoleID: ptr(int64(77))})
	var validation *domain.ValidationError
	assert.ErrorAs(t, err, &validation)
}
