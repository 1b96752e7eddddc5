// api/service/identity_service.go
package service

import (
	"context"
	"strings"

	"github.com/alcaldia-digital/ausentismo/api/dao"
	"github.com/alcaldia-digital/ausentismo/api/model"
)

// AdminList is the administrator allow-list capability: a fixed set of
// login handles compared case-insensitively. Injected from
// configuration so tests and deployments can swap it without global
// state.
type AdminList struct {
	handles map[string]struct{}
}

func NewAdminList(handles []string) *AdminList {
	set := make(map[string]struct{}, len(handles))
	for _, h := range handles {
		set[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}
	return &AdminList{handles: set}
}

func (a *AdminList) Contains(username string) bool {
	if username == "" {
		return false
	}
	_, ok := a.handles[strings.ToLower(username)]
	return ok
}

// IIdentityService resolves a user's effective role from directory
// bindings and the allow-list. The role is computed on every call,
// never stored, so binding changes take effect on the next resolution.
type IIdentityService interface {
	ResolveRole(ctx context.Context, userID uint, username string) (string, error)
	RoleLabel(ctx context.Context, userID uint, username string) (string, error)
	IsAdmin(username string) bool
}

type IdentityService struct {
	unitDAO dao.IUnitDAO
	admins  *AdminList
}

var _ IIdentityService = &IdentityService{}

func NewIdentityService(unitDAO dao.IUnitDAO, admins *AdminList) *IdentityService {
	return &IdentityService{unitDAO: unitDAO, admins: admins}
}

func (s *IdentityService) IsAdmin(username string) bool {
	return s.admins.Contains(username)
}

// ResolveRole applies the precedence admin > secretario > jefe >
// empleado. First match wins; empleado is the fallback, never an
// error.
func (s *IdentityService) ResolveRole(ctx context.Context, userID uint, username string) (string, error) {
	if s.admins.Contains(username) {
		return model.RoleAdmin, nil
	}

	secCount, err := s.unitDAO.CountSecretariedBy(ctx, userID)
	if err != nil {
		return "", err
	}
	if secCount > 0 {
		return model.RoleSecretary, nil
	}

	chiefCount, err := s.unitDAO.CountChiefedBy(ctx, userID)
	if err != nil {
		return "", err
	}
	if chiefCount > 0 {
		return model.RoleChief, nil
	}

	return model.RoleEmployee, nil
}

// RoleLabel is the administrative listing variant: the same two
// binding checks, combined into "secretario+jefe" when both hold.
func (s *IdentityService) RoleLabel(ctx context.Context, userID uint, username string) (string, error) {
	if s.admins.Contains(username) {
		return model.RoleAdmin, nil
	}

	secCount, err := s.unitDAO.CountSecretariedBy(ctx, userID)
	if err != nil {
		return "", err
	}
	chiefCount, err := s.unitDAO.CountChiefedBy(ctx, userID)
	if err != nil {
		return "", err
	}

	switch {
	case secCount > 0 && chiefCount > 0:
		return model.RoleSecretary + "+" + model.RoleChief, nil
	case secCount > 0:
		return model.RoleSecretary, nil
	case chiefCount > 0:
		return model.RoleChief, nil
	default:
		return model.RoleEmployee, nil
	}
}
