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

func newUserServiceFixture(admins ...string) (*UserService, *fakeUnitDAO, *fakeUserDAO) {
	unitDAO := newFakeUnitDAO()
	userDAO := newFakeUserDAO()
	identity := NewIdentityService(unitDAO, NewAdminList(admins))
	service := NewUserService(userDAO, identity,
		util.NewValidationUtil(), util.NewCacheService(), newTestAudit())
	return service, unitDAO, userDAO
}

func TestListUsers_CarriesRoleLabels(t *testing.T) {
	service, unitDAO, userDAO := newUserServiceFixture("ana.admin")

	userDAO.put(model.User{Name: "Ana Admin", Username: "ana.admin", NationalID: "1"})
	dual := userDAO.put(model.User{Name: "Maria Secretaria", Username: "maria", NationalID: "2"})
	userDAO.put(model.User{Name: "Zoe Empleada", Username: "zoe", NationalID: "3"})

	root := unitDAO.put(model.Unit{Name: "Hacienda", SecretaryID: &dual.ID})
	unitDAO.put(model.Unit{Name: "Tesoreria", ParentID: &root.ID, ChiefID: &dual.ID})

	listings, err := service.ListUsers(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, listings, 3)

	byUsername := make(map[string]string, len(listings))
	for _, l := range listings {
		byUsername[l.Username] = l.RoleLabel
	}
	assert.Equal(t, model.RoleAdmin, byUsername["ana.admin"])
	assert.Equal(t, model.RoleSecretary+"+"+model.RoleChief, byUsername["maria"])
	assert.Equal(t, model.RoleEmployee, byUsername["zoe"])
}

func TestSetUserStatus_ValidatesStatus(t *testing.T) {
	service, _, userDAO := newUserServiceFixture()
	user := userDAO.put(model.User{Name: "Juan Empleado", Username: "juan", NationalID: "400"})
	ctx := context.Background()

	err := service.SetUserStatus(ctx, user.ID, "despedido", 1)
	assert.ErrorIs(t, err, app_errors.ErrInvalidUserData)

	require.NoError(t, service.SetUserStatus(ctx, user.ID, model.UserStatusInactive, 1))
	stored, err := userDAO.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusInactive, stored.Status)
}

func TestSetUserStatus_UnknownUser(t *testing.T) {
	service, _, _ := newUserServiceFixture()

	err := service.SetUserStatus(context.Background(), 999, model.UserStatusInactive, 1)
	assert.ErrorIs(t, err, app_errors.ErrUserNotFound)
}
