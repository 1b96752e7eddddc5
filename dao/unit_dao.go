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

// IUnitDAO is the persistence surface of the organization directory.
type IUnitDAO interface {
	CreateUnit(ctx context.Context, unit *model.Unit) (*model.Unit, error)
	UpdateUnit(ctx context.Context, unit *model.Unit) error
	GetUnit(ctx context.Context, unitID uint) (*model.Unit, error)
	ListUnits(ctx context.Context, filter model.UnitFilter) ([]*model.Unit, error)
	SearchUnitsByName(ctx context.Context, query string, limit int) ([]*model.Unit, error)
	ChildrenOf(ctx context.Context, unitID uint) ([]*model.Unit, error)
	ChildrenOfAll(ctx context.Context, unitIDs []uint) ([]*model.Unit, error)
	UnitsChiefedBy(ctx context.Context, userID uint) ([]*model.Unit, error)
	UnitsSecretariedBy(ctx context.Context, userID uint) ([]*model.Unit, error)
	CountChiefedBy(ctx context.Context, userID uint) (int64, error)
	CountSecretariedBy(ctx context.Context, userID uint) (int64, error)
}

type UnitDAO struct {
	DB *gorm.DB
}

var _ IUnitDAO = &UnitDAO{}

func NewUnitDAO(db *gorm.DB) *UnitDAO {
	return &UnitDAO{DB: db}
}

func (dao *UnitDAO) CreateUnit(ctx context.Context, unit *model.Unit) (*model.Unit, error) {
	start := time.Now()
	logger.Info("Creating new unit", zap.String("unitName", unit.Name))

	if err := dao.DB.WithContext(ctx).Create(unit).Error; err != nil {
		logger.Error("Failed to create unit",
			zap.Error(err),
			zap.String("unitName", unit.Name),
			zap.Duration("duration", time.Since(start)))
		return nil, app_errors.ErrDatabaseOperation
	}

	logger.Info("Unit created successfully",
		zap.Uint("unitID", unit.ID),
		zap.Duration("duration", time.Since(start)))
	return unit, nil
}

func (dao *UnitDAO) UpdateUnit(ctx context.Context, unit *model.Unit) error {
	start := time.Now()

	// Save with a full field list so clearing a binding (nil chief or
	// secretary) is persisted rather than skipped as a zero value.
	err := dao.DB.WithContext(ctx).
		Model(&model.Unit{}).
		Where("id = ?", unit.ID).
		Select("name", "status", "parent_id", "chief_id", "secretary_id").
		Updates(unit).Error
	if err != nil {
		logger.Error("Failed to update unit",
			zap.Error(err),
			zap.Uint("unitID", unit.ID),
			zap.Duration("duration", time.Since(start)))
		return app_errors.ErrDatabaseOperation
	}

	logger.Info("Unit updated successfully",
		zap.Uint("unitID", unit.ID),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func (dao *UnitDAO) GetUnit(ctx context.Context, unitID uint) (*model.Unit, error) {
	var unit model.Unit
	err := dao.DB.WithContext(ctx).First(&unit, unitID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_errors.ErrUnitNotFound
		}
		logger.Error("Failed to get unit", zap.Error(err), zap.Uint("unitID", unitID))
		return nil, app_errors.ErrDatabaseOperation
	}
	return &unit, nil
}

func (dao *UnitDAO) ListUnits(ctx context.Context, filter model.UnitFilter) ([]*model.Unit, error) {
	query := dao.DB.WithContext(ctx).Model(&model.Unit{}).Order("name ASC")
	if filter.ActiveOnly {
		query = query.Where("status = ?", model.UnitStatusActive)
	}
	if filter.RootsOnly {
		query = query.Where("parent_id IS NULL")
	}
	if filter.ParentID != nil {
		query = query.Where("parent_id = ?", *filter.ParentID)
	}

	var units []*model.Unit
	if err := query.Find(&units).Error; err != nil {
		logger.Error("Failed to list units", zap.Error(err))
		return nil, app_errors.ErrDatabaseOperation
	}
	return units, nil
}

func (dao *UnitDAO) SearchUnitsByName(ctx context.Context, query string, limit int) ([]*model.Unit, error) {
	var units []*model.Unit
	err := dao.DB.WithContext(ctx).
		Where("name ILIKE ?", "%"+query+"%").
		Order("name ASC").
		Limit(limit).
		Find(&units).Error
	if err != nil {
		logger.Error("Failed to search units", zap.Error(err), zap.String("query", query))
		return nil, app_errors.ErrDatabaseOperation
	}
	return units, nil
}

func (dao *UnitDAO) ChildrenOf(ctx context.Context, unitID uint) ([]*model.Unit, error) {
	return dao.ChildrenOfAll(ctx, []uint{unitID})
}

func (dao *UnitDAO) ChildrenOfAll(ctx context.Context, unitIDs []uint) ([]*model.Unit, error) {
	if len(unitIDs) == 0 {
		return nil, nil
	}
	var units []*model.Unit
	err := dao.DB.WithContext(ctx).
		Where("parent_id IN ?", unitIDs).
		Order("name ASC").
		Find(&units).Error
	if err != nil {
		logger.Error("Failed to list child units", zap.Error(err))
		return nil, app_errors.ErrDatabaseOperation
	}
	return units, nil
}

func (dao *UnitDAO) UnitsChiefedBy(ctx context.Context, userID uint) ([]*model.Unit, error) {
	var units []*model.Unit
	err := dao.DB.WithContext(ctx).
		Where("chief_id = ?", userID).
		Find(&units).Error
	if err != nil {
		logger.Error("Failed to list chiefed units", zap.Error(err), zap.Uint("userID", userID))
		return nil, app_errors.ErrDatabaseOperation
	}
	return units, nil
}

func (dao *UnitDAO) UnitsSecretariedBy(ctx context.Context, userID uint) ([]*model.Unit, error) {
	var units []*model.Unit
	err := dao.DB.WithContext(ctx).
		Where("secretary_id = ?", userID).
		Find(&units).Error
	if err != nil {
		logger.Error("Failed to list secretaried units", zap.Error(err), zap.Uint("userID", userID))
		return nil, app_errors.ErrDatabaseOperation
	}
	return units, nil
}

func (dao *UnitDAO) CountChiefedBy(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := dao.DB.WithContext(ctx).
		Model(&model.Unit{}).
		Where("chief_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, app_errors.ErrDatabaseOperation
	}
	return count, nil
}

func (dao *UnitDAO) CountSecretariedBy(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := dao.DB.WithContext(ctx).
		Model(&model.Unit{}).
		Where("secretary_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, app_errors.ErrDatabaseOperation
	}
	return count, nil
}
