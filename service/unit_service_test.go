package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	app_errors "github.com/alcaldia-digital/ausentismo/api/errors"
	"github.com/alcaldia-digital/ausentismo/api/model"
	"github.com/alcaldia-digital/ausentismo/api/util"
)

func newUnitServiceFixture() (*UnitService, *fakeUnitDAO, *fakeUserDAO) {
	unitDAO := newFakeUnitDAO()
	userDAO := newFakeUserDAO()
	service := NewUnitService(unitDAO, userDAO,
		util.NewValidationUtil(), util.NewCacheService(), util.NewNotificationService(), util.NewEventBus(), newTestAudit())
	return service, unitDAO, userDAO
}

func TestCreateUnit_RootAndChild(t *testing.T) {
	service, _, _ := newUnitServiceFixture()
	ctx := context.Background()

	root, err := service.CreateUnit(ctx, model.Unit{Name: "Hacienda"}, 1)
	require.NoError(t, err)
	assert.True(t, root.IsRoot())
	assert.Equal(t, model.UnitStatusActive, root.Status)

	child, err := service.CreateUnit(ctx, model.Unit{Name: "Tesoreria", ParentID: &root.ID}, 1)
	require.NoError(t, err)
	assert.False(t, child.IsRoot())
	require.NotNil(t, child.ParentID)
	assert.Equal(t, root.ID, *child.ParentID)
}

func TestCreateUnit_RejectsGrandchildren(t *testing.T) {
	service, _, _ := newUnitServiceFixture()
	ctx := context.Background()

	root, err := service.CreateUnit(ctx, model.Unit{Name: "Hacienda"}, 1)
	require.NoError(t, err)
	child, err := service.CreateUnit(ctx, model.Unit{Name: "Tesoreria", ParentID: &root.ID}, 1)
	require.NoError(t, err)

	// The hierarchy is exactly two levels deep.
	_, err = service.CreateUnit(ctx, model.Unit{Name: "Caja", ParentID: &child.ID}, 1)
	assert.ErrorIs(t, err, app_errors.ErrInvalidUnitData)
}

func TestCreateUnit_RequiresName(t *testing.T) {
	service, _, _ := newUnitServiceFixture()

	_, err := service.CreateUnit(context.Background(), model.Unit{}, 1)
	assert.ErrorIs(t, err, app_errors.ErrInvalidUnitData)
}

func TestSetUnitStatus_ParentGuard(t *testing.T) {
	service, unitDAO, _ := newUnitServiceFixture()
	ctx := context.Background()

	root := unitDAO.put(model.Unit{Name: "Hacienda", Status: model.UnitStatusInactive})
	child := unitDAO.put(model.Unit{Name: "Tesoreria", ParentID: &root.ID, Status: model.UnitStatusInactive})

	// Reactivating a child under an inactive parent is blocked.
	_, err := service.SetUnitStatus(ctx, child.ID, model.UnitStatusActive, 1)
	assert.ErrorIs(t, err, app_errors.ErrParentInactive)

	_, err = service.SetUnitStatus(ctx, root.ID, model.UnitStatusActive, 1)
	require.NoError(t, err)

	updated, err := service.SetUnitStatus(ctx, child.ID, model.UnitStatusActive, 1)
	require.NoError(t, err)
	assert.Equal(t, model.UnitStatusActive, updated.Status)
}

func TestSetUnitStatus_RejectsUnknownStatus(t *testing.T) {
	service, unitDAO, _ := newUnitServiceFixture()
	root := unitDAO.put(model.Unit{Name: "Hacienda"})

	_, err := service.SetUnitStatus(context.Background(), root.ID, "suspendida", 1)
	assert.ErrorIs(t, err, app_errors.ErrInvalidUnitData)
}

func TestAssignChief_OnlyAreas(t *testing.T) {
	service, unitDAO, userDAO := newUnitServiceFixture()
	ctx := context.Background()

	root := unitDAO.put(model.Unit{Name: "Hacienda"})
	area := unitDAO.put(model.Unit{Name: "Tesoreria", ParentID: &root.ID})
	user := userDAO.put(model.User{Name: "Pedro Jefe", Username: "pedro", NationalID: "1"})

	_, err := service.AssignChief(ctx, root.ID, user.ID, 1)
	assert.ErrorIs(t, err, app_errors.ErrUnitNotArea)

	updated, err := service.AssignChief(ctx, area.ID, user.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, updated.ChiefID)
	assert.Equal(t, user.ID, *updated.ChiefID)
}

func TestAssignSecretary_OnlyRoots(t *testing.T) {
	service, unitDAO, userDAO := newUnitServiceFixture()
	ctx := context.Background()

	root := unitDAO.put(model.Unit{Name: "Hacienda"})
	area := unitDAO.put(model.Unit{Name: "Tesoreria", ParentID: &root.ID})
	user := userDAO.put(model.User{Name: "Maria Secretaria", Username: "maria", NationalID: "2"})

	_, err := service.AssignSecretary(ctx, area.ID, user.ID, 1)
	assert.ErrorIs(t, err, app_errors.ErrUnitNotRoot)

	updated, err := service.AssignSecretary(ctx, root.ID, user.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, updated.SecretaryID)
	assert.Equal(t, user.ID, *updated.SecretaryID)
}

func TestAssignChief_OverwritesPreviousHolder(t *testing.T) {
	service, unitDAO, userDAO := newUnitServiceFixture()
	ctx := context.Background()

	root := unitDAO.put(model.Unit{Name: "Hacienda"})
	first := userDAO.put(model.User{Name: "Pedro Jefe", Username: "pedro", NationalID: "1"})
	area := unitDAO.put(model.Unit{Name: "Tesoreria", ParentID: &root.ID, ChiefID: &first.ID})
	second := userDAO.put(model.User{Name: "Lucia Jefa", Username: "lucia", NationalID: "2"})

	updated, err := service.AssignChief(ctx, area.ID, second.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, updated.ChiefID)
	assert.Equal(t, second.ID, *updated.ChiefID)

	stored, err := unitDAO.GetUnit(ctx, area.ID)
	require.NoError(t, err)
	assert.Equal(t, second.ID, *stored.ChiefID)
}

func TestAssignChief_UnknownUser(t *testing.T) {
	service, unitDAO, _ := newUnitServiceFixture()

	root := unitDAO.put(model.Unit{Name: "Hacienda"})
	area := unitDAO.put(model.Unit{Name: "Tesoreria", ParentID: &root.ID})

	_, err := service.AssignChief(context.Background(), area.ID, 999, 1)
	assert.ErrorIs(t, err, app_errors.ErrUserNotFound)
}

func TestListUnits_ActiveOnlyExcludesDeactivatedChild(t *testing.T) {
	service, unitDAO, _ := newUnitServiceFixture()
	ctx := context.Background()

	root := unitDAO.put(model.Unit{Name: "Hacienda"})
	area := unitDAO.put(model.Unit{Name: "Tesoreria", ParentID: &root.ID})

	_, err := service.SetUnitStatus(ctx, area.ID, model.UnitStatusInactive, 1)
	require.NoError(t, err)

	active, err := service.ListUnits(ctx, model.UnitFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, root.ID, active[0].ID)

	all, err := service.ListUnits(ctx, model.UnitFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestParentOf(t *testing.T) {
	service, unitDAO, _ := newUnitServiceFixture()
	ctx := context.Background()

	root := unitDAO.put(model.Unit{Name: "Hacienda"})
	area := unitDAO.put(model.Unit{Name: "Tesoreria", ParentID: &root.ID})

	parent, err := service.ParentOf(ctx, area.ID)
	require.NoError(t, err)
	require.NotNil(t, parent)
	assert.Equal(t, root.ID, parent.ID)

	parent, err = service.ParentOf(ctx, root.ID)
	require.NoError(t, err)
	assert.Nil(t, parent)
}

func TestUpdateUnit_Rename(t *testing.T) {
	service, unitDAO, _ := newUnitServiceFixture()
	root := unitDAO.put(model.Unit{Name: "Hacienda"})

	name := "Hacienda Municipal"
	updated, err := service.UpdateUnit(context.Background(), root.ID, model.UnitPatch{Name: &name}, 1)
	require.NoError(t, err)
	assert.Equal(t, "Hacienda Municipal", updated.Name)
}
