// api/service/auth_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/alcaldia-digital/ausentismo/api/audit"
	"github.com/alcaldia-digital/ausentismo/api/dao"
	app_errors "github.com/alcaldia-digital/ausentismo/api/errors"
	logger "github.com/alcaldia-digital/ausentismo/api/logging"
	"github.com/alcaldia-digital/ausentismo/api/model"
	"github.com/alcaldia-digital/ausentismo/api/util"
)

// RegisterInput is the registration payload.
type RegisterInput struct {
	Name       string `json:"name"`
	Username   string `json:"username"`
	Password   string `json:"password"`
	NationalID string `json:"national_id"`
	UnitID     *uint  `json:"unit_id"`
}

// AuthResult is what register and login return: the token plus the
// claims it was minted from.
type AuthResult struct {
	Token    string `json:"token"`
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	UnitID   *uint  `json:"unit_id,omitempty"`
	Role     string `json:"role"`
}

// IAuthService handles registration, login, and the "who am I" query.
type IAuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, username, password string) (*AuthResult, error)
	Me(ctx context.Context, userID uint) (*model.Profile, error)
}

type AuthService struct {
	userDAO        dao.IUserDAO
	unitDAO        dao.IUnitDAO
	identity       IIdentityService
	validationUtil *util.ValidationUtil
	auditService   audit.Service
	jwtSecret      []byte
	tokenTTL       time.Duration
}

var _ IAuthService = &AuthService{}

// NewAuthService creates a new instance of AuthService
func NewAuthService(userDAO dao.IUserDAO, unitDAO dao.IUnitDAO, identity IIdentityService, validationUtil *util.ValidationUtil, auditService audit.Service, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		userDAO:        userDAO,
		unitDAO:        unitDAO,
		identity:       identity,
		validationUtil: validationUtil,
		auditService:   auditService,
		jwtSecret:      []byte(jwtSecret),
		tokenTTL:       tokenTTL,
	}
}

// Register creates a user and signs them in. A unit is mandatory
// unless the handle is on the administrator allow-list; uniqueness is
// enforced over both the login handle and the national id.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	if err := s.validationUtil.ValidateRegistration(input.Name, input.Username, input.Password, input.NationalID); err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInvalidUserData, err)
	}
	if input.UnitID == nil && !s.identity.IsAdmin(input.Username) {
		return nil, fmt.Errorf("%w: a unit is required", app_errors.ErrInvalidUserData)
	}
	if input.UnitID != nil {
		unit, err := s.unitDAO.GetUnit(ctx, *input.UnitID)
		if err != nil {
			return nil, err
		}
		if !unit.IsActive() {
			return nil, fmt.Errorf("%w: unit is inactive", app_errors.ErrInvalidUserData)
		}
	}

	exists, err := s.userDAO.ExistsByUsernameOrNationalID(ctx, input.Username, input.NationalID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, app_errors.ErrUserConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("Failed to hash password", zap.Error(err))
		return nil, app_errors.ErrInternalServer
	}

	user := model.User{
		Name:         input.Name,
		Username:     input.Username,
		PasswordHash: string(hash),
		NationalID:   input.NationalID,
		UnitID:       input.UnitID,
		Status:       model.UserStatusActive,
	}
	created, err := s.userDAO.CreateUser(ctx, &user)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, created.ID, audit.ActionRegisterUser, created.ID, "registered")

	return s.issue(ctx, created)
}

// Login verifies credentials and issues a token with the role
// resolved from the directory at this moment.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	user, err := s.userDAO.GetUserByUsername(ctx, username)
	if err != nil {
		if err == app_errors.ErrUserNotFound {
			return nil, app_errors.ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, app_errors.ErrInvalidCredentials
	}
	if !user.IsActive() {
		return nil, app_errors.ErrUserInactive
	}

	return s.issue(ctx, user)
}

// Me returns the caller's profile with the secretariat and area names
// resolved from their unit: a child unit contributes its parent's name
// as the secretariat and its own as the area, a root unit is the
// secretariat itself.
func (s *AuthService) Me(ctx context.Context, userID uint) (*model.Profile, error) {
	user, err := s.userDAO.GetUserWithUnit(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &model.Profile{
		ID:         user.ID,
		Username:   user.Username,
		Name:       user.Name,
		NationalID: user.NationalID,
		UnitID:     user.UnitID,
	}
	if user.Unit != nil {
		if user.Unit.ParentID != nil {
			parent, err := s.unitDAO.GetUnit(ctx, *user.Unit.ParentID)
			if err != nil {
				return nil, err
			}
			profile.Secretariat = &parent.Name
			profile.Area = &user.Unit.Name
		} else {
			profile.Secretariat = &user.Unit.Name
		}
	}
	return profile, nil
}

func (s *AuthService) issue(ctx context.Context, user *model.User) (*AuthResult, error) {
	role, err := s.identity.ResolveRole(ctx, user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	claims := model.TokenClaims{
		UserID:   user.ID,
		Username: user.Username,
		UnitID:   user.UnitID,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		logger.Error("Failed to sign token", zap.Error(err), zap.Uint("userID", user.ID))
		return nil, app_errors.ErrInternalServer
	}

	return &AuthResult{
		Token:    token,
		UserID:   user.ID,
		Username: user.Username,
		Name:     user.Name,
		UnitID:   user.UnitID,
		Role:     role,
	}, nil
}

func (s *AuthService) recordAudit(ctx context.Context, actorID uint, action string, userID uint, outcome string) {
	change, _ := json.Marshal(map[string]uint{"user_id": userID})
	entry := audit.Entry{
		Timestamp:     time.Now(),
		ActorID:       fmt.Sprintf("%d", actorID),
		Action:        action,
		ResourceID:    fmt.Sprintf("user:%d", userID),
		Outcome:       outcome,
		ChangeDetails: change,
	}
	if err := s.auditService.Record(ctx, entry); err != nil {
		logger.Warn("Failed to record audit entry", zap.Error(err), zap.String("action", action))
	}
}
