package dao

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	app_errors "github.com/alcaldia-digital/ausentismo/api/errors"
	logger "github.com/alcaldia-digital/ausentismo/api/logging"
	"github.com/alcaldia-digital/ausentismo/api/model"
)

// IUserDAO is the persistence surface for users.
type IUserDAO interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, userID uint) (*model.User, error)
	GetUserWithUnit(ctx context.Context, userID uint) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	ExistsByUsernameOrNationalID(ctx context.Context, username, nationalID string) (bool, error)
	SetUserStatus(ctx context.Context, userID uint, status string) error
	ListUsers(ctx context.Context, limit, offset int) ([]*model.User, error)
}

type UserDAO struct {
	DB *gorm.DB
}

var _ IUserDAO = &UserDAO{}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{DB: db}
}

func (dao *UserDAO) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	start := time.Now()
	logger.Info("Creating new user", zap.String("username", user.Username))

	if err := dao.DB.WithContext(ctx).Create(user).Error; err != nil {
		logger.Error("Failed to create user",
			zap.Error(err),
			zap.String("username", user.Username),
			zap.Duration("duration", time.Since(start)))
		return nil, app_errors.ErrDatabaseOperation
	}

	logger.Info("User created successfully",
		zap.Uint("userID", user.ID),
		zap.Duration("duration", time.Since(start)))
	return user, nil
}

func (dao *UserDAO) GetUser(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	err := dao.DB.WithContext(ctx).First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_errors.ErrUserNotFound
		}
		logger.Error("Failed to get user", zap.Error(err), zap.Uint("userID", userID))
		return nil, app_errors.ErrDatabaseOperation
	}
	return &user, nil
}

func (dao *UserDAO) GetUserWithUnit(ctx context.Context, userID uint) (*model.User, error) {
	var user model.User
	err := dao.DB.WithContext(ctx).Preload("Unit").First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_errors.ErrUserNotFound
		}
		logger.Error("Failed to get user with unit", zap.Error(err), zap.Uint("userID", userID))
		return nil, app_errors.ErrDatabaseOperation
	}
	return &user, nil
}

func (dao *UserDAO) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	err := dao.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_errors.ErrUserNotFound
		}
		logger.Error("Failed to get user by username", zap.Error(err), zap.String("username", username))
		return nil, app_errors.ErrDatabaseOperation
	}
	return &user, nil
}

func (dao *UserDAO) ExistsByUsernameOrNationalID(ctx context.Context, username, nationalID string) (bool, error) {
	var count int64
	err := dao.DB.WithContext(ctx).
		Model(&model.User{}).
		Where("username = ? OR cedula = ?", username, nationalID).
		Count(&count).Error
	if err != nil {
		return false, app_errors.ErrDatabaseOperation
	}
	return count > 0, nil
}

func (dao *UserDAO) SetUserStatus(ctx context.Context, userID uint, status string) error {
	res := dao.DB.WithContext(ctx).
		Model(&model.User{}).
		Where("id = ?", userID).
		Update("status", status)
	if res.Error != nil {
		logger.Error("Failed to set user status", zap.Error(res.Error), zap.Uint("userID", userID))
		return app_errors.ErrDatabaseOperation
	}
	if res.RowsAffected == 0 {
		return app_errors.ErrUserNotFound
	}
	return nil
}

func (dao *UserDAO) ListUsers(ctx context.Context, limit, offset int) ([]*model.User, error) {
	var users []*model.User
	err := dao.DB.WithContext(ctx).
		Order("name ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		logger.Error("Failed to list users", zap.Error(err))
		return nil, app_errors.ErrDatabaseOperation
	}
	return users, nil
}
