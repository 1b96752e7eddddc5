// api/service/user_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/alcaldia-digital/ausentismo/api/audit"
	"github.com/alcaldia-digital/ausentismo/api/dao"
	app_errors "github.com/alcaldia-digital/ausentismo/api/errors"
	logger "github.com/alcaldia-digital/ausentismo/api/logging"
	"github.com/alcaldia-digital/ausentismo/api/model"
	"github.com/alcaldia-digital/ausentismo/api/util"
)

// IUserService covers user lookup and the administrative listing.
type IUserService interface {
	GetUser(ctx context.Context, userID uint) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*model.UserListing, error)
	SetUserStatus(ctx context.Context, userID uint, status string, actorID uint) error
}

type UserService struct {
	userDAO        dao.IUserDAO
	identity       IIdentityService
	validationUtil *util.ValidationUtil
	cacheService   *util.CacheService
	auditService   audit.Service
}

var _ IUserService = &UserService{}

// NewUserService creates a new instance of UserService
func NewUserService(userDAO dao.IUserDAO, identity IIdentityService, validationUtil *util.ValidationUtil, cacheService *util.CacheService, auditService audit.Service) *UserService {
	return &UserService{
		userDAO:        userDAO,
		identity:       identity,
		validationUtil: validationUtil,
		cacheService:   cacheService,
		auditService:   auditService,
	}
}

func (s *UserService) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	cached, err := s.cacheService.GetUser(ctx, userID)
	if err == nil && cached != nil {
		return cached, nil
	}

	user, err := s.userDAO.GetUserWithUnit(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetUser(ctx, *user); err != nil {
		logger.Warn("Failed to cache user", zap.Error(err), zap.Uint("userID", userID))
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userDAO.GetUserByUsername(ctx, username)
}

// ListUsers is the administrative listing: each user carries the
// composite role label computed from their current bindings.
func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]*model.UserListing, error) {
	users, err := s.userDAO.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	listings := make([]*model.UserListing, 0, len(users))
	for _, user := range users {
		label, err := s.identity.RoleLabel(ctx, user.ID, user.Username)
		if err != nil {
			return nil, err
		}
		listings = append(listings, &model.UserListing{
			ID:         user.ID,
			Name:       user.Name,
			Username:   user.Username,
			NationalID: user.NationalID,
			UnitID:     user.UnitID,
			Status:     user.Status,
			RoleLabel:  label,
		})
	}
	return listings, nil
}

func (s *UserService) SetUserStatus(ctx context.Context, userID uint, status string, actorID uint) error {
	if err := s.validationUtil.ValidateUserStatus(status); err != nil {
		return fmt.Errorf("%w: %v", app_errors.ErrInvalidUserData, err)
	}
	if err := s.userDAO.SetUserStatus(ctx, userID, status); err != nil {
		return err
	}

	if err := s.cacheService.DeleteUser(ctx, userID); err != nil {
		logger.Warn("Failed to invalidate user cache", zap.Error(err), zap.Uint("userID", userID))
	}

	change, _ := json.Marshal(map[string]string{"status": status})
	entry := audit.Entry{
		Timestamp:     time.Now(),
		ActorID:       fmt.Sprintf("%d", actorID),
		Action:        audit.ActionSetUserStatus,
		ResourceID:    fmt.Sprintf("user:%d", userID),
		Outcome:       status,
		ChangeDetails: change,
	}
	if err := s.auditService.Record(ctx, entry); err != nil {
		logger.Warn("Failed to record audit entry", zap.Error(err), zap.String("action", audit.ActionSetUserStatus))
	}
	return nil
}
