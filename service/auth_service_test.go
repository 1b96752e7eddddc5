package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	app_errors "github.com/alcaldia-digital/ausentismo/api/errors"
	"github.com/alcaldia-digital/ausentismo/api/model"
	"github.com/alcaldia-digital/ausentismo/api/util"
)

const testJWTSecret = "test-secret"

func newAuthFixture(admins ...string) (*AuthService, *fakeUnitDAO, *fakeUserDAO) {
	unitDAO := newFakeUnitDAO()
	userDAO := newFakeUserDAO()
	identity := NewIdentityService(unitDAO, NewAdminList(admins))
	service := NewAuthService(userDAO, unitDAO, identity,
		util.NewValidationUtil(), newTestAudit(), testJWTSecret, time.Hour)
	return service, unitDAO, userDAO
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestRegister_IssuesEmployeeToken(t *testing.T) {
	service, unitDAO, _ := newAuthFixture()
	root := unitDAO.put(model.Unit{Name: "Hacienda"})
	area := unitDAO.put(model.Unit{Name: "Tesoreria", ParentID: &root.ID})

	result, err := service.Register(context.Background(), RegisterInput{
		Name: "Juan Empleado", Username: "juan", Password: "secreto", NationalID: "400", UnitID: &area.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "juan", result.Username)
	assert.Equal(t, model.RoleEmployee, result.Role)
	require.NotNil(t, result.UnitID)
	assert.Equal(t, area.ID, *result.UnitID)

	// The token carries the same claims it was minted from.
	claims := &model.TokenClaims{}
	parsed, err := jwt.ParseWithClaims(result.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, result.UserID, claims.UserID)
	assert.Equal(t, model.RoleEmployee, claims.Role)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestRegister_UnitRequiredExceptForAdmins(t *testing.T) {
	service, _, _ := newAuthFixture("ana.admin")
	ctx := context.Background()

	_, err := service.Register(ctx, RegisterInput{
		Name: "Juan Empleado", Username: "juan", Password: "secreto", NationalID: "400",
	})
	assert.ErrorIs(t, err, app_errors.ErrInvalidUserData)

	result, err := service.Register(ctx, RegisterInput{
		Name: "Ana Admin", Username: "ana.admin", Password: "secreto", NationalID: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, result.Role)
	assert.Nil(t, result.UnitID)
}

func TestRegister_InactiveUnitRejected(t *testing.T) {
	service, unitDAO, _ := newAuthFixture()
	unit := unitDAO.put(model.Unit{Name: "Tesoreria", Status: model.UnitStatusInactive})

	_, err := service.Register(context.Background(), RegisterInput{
		Name: "Juan Empleado", Username: "juan", Password: "secreto", NationalID: "400", UnitID: &unit.ID,
	})
	assert.ErrorIs(t, err, app_errors.ErrInvalidUserData)
}

func TestRegister_DuplicateHandleOrNationalID(t *testing.T) {
	service, unitDAO, userDAO := newAuthFixture()
	unit := unitDAO.put(model.Unit{Name: "Tesoreria"})
	userDAO.put(model.User{Name: "Juan Empleado", Username: "juan", NationalID: "400"})

	_, err := service.Register(context.Background(), RegisterInput{
		Name: "Otro Juan", Username: "juan", Password: "secreto", NationalID: "999", UnitID: &unit.ID,
	})
	assert.ErrorIs(t, err, app_errors.ErrUserConflict)

	_, err = service.Register(context.Background(), RegisterInput{
		Name: "Otro Juan", Username: "juan2", Password: "secreto", NationalID: "400", UnitID: &unit.ID,
	})
	assert.ErrorIs(t, err, app_errors.ErrUserConflict)
}

func TestLogin_ResolvesRoleFromBindings(t *testing.T) {
	service, unitDAO, userDAO := newAuthFixture()
	user := userDAO.put(model.User{
		Name: "Maria Secretaria", Username: "maria", NationalID: "200",
		PasswordHash: hashOf(t, "secreto"),
	})
	unitDAO.put(model.Unit{Name: "Hacienda", SecretaryID: &user.ID})

	result, err := service.Login(context.Background(), "maria", "secreto")
	require.NoError(t, err)
	assert.Equal(t, model.RoleSecretary, result.Role)
	assert.Equal(t, user.ID, result.UserID)
}

func TestLogin_BadCredentials(t *testing.T) {
	service, _, userDAO := newAuthFixture()
	userDAO.put(model.User{
		Name: "Juan Empleado", Username: "juan", NationalID: "400",
		PasswordHash: hashOf(t, "secreto"),
	})
	ctx := context.Background()

	// Unknown handle and wrong password are indistinguishable.
	_, err := service.Login(ctx, "nadie", "secreto")
	assert.ErrorIs(t, err, app_errors.ErrInvalidCredentials)

	_, err = service.Login(ctx, "juan", "equivocado")
	assert.ErrorIs(t, err, app_errors.ErrInvalidCredentials)
}

func TestLogin_InactiveUserDenied(t *testing.T) {
	service, _, userDAO := newAuthFixture()
	userDAO.put(model.User{
		Name: "Juan Empleado", Username: "juan", NationalID: "400",
		PasswordHash: hashOf(t, "secreto"), Status: model.UserStatusInactive,
	})

	_, err := service.Login(context.Background(), "juan", "secreto")
	assert.ErrorIs(t, err, app_errors.ErrUserInactive)
}

func TestMe_ResolvesUnitNames(t *testing.T) {
	service, unitDAO, userDAO := newAuthFixture()
	ctx := context.Background()

	root := unitDAO.put(model.Unit{Name: "Hacienda"})
	area := unitDAO.put(model.Unit{Name: "Tesoreria", ParentID: &root.ID})

	worker := userDAO.put(model.User{
		Name: "Juan Empleado", Username: "juan", NationalID: "400",
		UnitID: &area.ID, Unit: area,
	})
	profile, err := service.Me(ctx, worker.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.Secretariat)
	assert.Equal(t, "Hacienda", *profile.Secretariat)
	require.NotNil(t, profile.Area)
	assert.Equal(t, "Tesoreria", *profile.Area)

	// A user placed directly on a root has no area.
	secretary := userDAO.put(model.User{
		Name: "Maria Secretaria", Username: "maria", NationalID: "200",
		UnitID: &root.ID, Unit: root,
	})
	profile, err = service.Me(ctx, secretary.ID)
	require.NoError(t, err)
	require.NotNil(t, profile.Secretariat)
	assert.Equal(t, "Hacienda", *profile.Secretariat)
	assert.Nil(t, profile.Area)
}
