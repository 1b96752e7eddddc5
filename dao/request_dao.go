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

// IRequestDAO is the persistence surface for absence requests.
type IRequestDAO interface {
	CreateRequest(ctx context.Context, request *model.Request) (*model.Request, error)
	GetRequest(ctx context.Context, requestID uint) (*model.Request, error)
	ListByRequester(ctx context.Context, userID uint) ([]*model.Request, error)
	ListByUnits(ctx context.Context, unitIDs []uint, states []string) ([]*model.Request, error)
	ListAll(ctx context.Context) ([]*model.Request, error)
	TransitionState(ctx context.Context, requestID uint, fromState string, updates map[string]interface{}) (bool, error)
}

type RequestDAO struct {
	DB *gorm.DB
}

var _ IRequestDAO = &RequestDAO{}

func NewRequestDAO(db *gorm.DB) *RequestDAO {
	return &RequestDAO{DB: db}
}

func (dao *RequestDAO) CreateRequest(ctx context.Context, request *model.Request) (*model.Request, error) {
	start := time.Now()
	logger.Info("Creating new request", zap.Uint("requesterID", request.RequesterID))

	if err := dao.DB.WithContext(ctx).Create(request).Error; err != nil {
		logger.Error("Failed to create request",
			zap.Error(err),
			zap.Uint("requesterID", request.RequesterID),
			zap.Duration("duration", time.Since(start)))
		return nil, app_errors.ErrDatabaseOperation
	}

	logger.Info("Request created successfully",
		zap.Uint("requestID", request.ID),
		zap.Duration("duration", time.Since(start)))
	return request, nil
}

func (dao *RequestDAO) GetRequest(ctx context.Context, requestID uint) (*model.Request, error) {
	var request model.Request
	err := dao.DB.WithContext(ctx).First(&request, requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, app_errors.ErrRequestNotFound
		}
		logger.Error("Failed to get request", zap.Error(err), zap.Uint("requestID", requestID))
		return nil, app_errors.ErrDatabaseOperation
	}
	return &request, nil
}

func (dao *RequestDAO) ListByRequester(ctx context.Context, userID uint) ([]*model.Request, error) {
	var requests []*model.Request
	err := dao.DB.WithContext(ctx).
		Where("usuario_id = ?", userID).
		Order("fecha DESC").
		Find(&requests).Error
	if err != nil {
		logger.Error("Failed to list requests by requester", zap.Error(err), zap.Uint("userID", userID))
		return nil, app_errors.ErrDatabaseOperation
	}
	return requests, nil
}

func (dao *RequestDAO) ListByUnits(ctx context.Context, unitIDs []uint, states []string) ([]*model.Request, error) {
	if len(unitIDs) == 0 {
		return nil, nil
	}
	query := dao.DB.WithContext(ctx).
		Where("unidad_id IN ?", unitIDs).
		Order("fecha DESC")
	if len(states) > 0 {
		query = query.Where("estado IN ?", states)
	}

	var requests []*model.Request
	if err := query.Find(&requests).Error; err != nil {
		logger.Error("Failed to list requests by units", zap.Error(err))
		return nil, app_errors.ErrDatabaseOperation
	}
	return requests, nil
}

func (dao *RequestDAO) ListAll(ctx context.Context) ([]*model.Request, error) {
	var requests []*model.Request
	err := dao.DB.WithContext(ctx).
		Order("fecha DESC").
		Find(&requests).Error
	if err != nil {
		logger.Error("Failed to list requests", zap.Error(err))
		return nil, app_errors.ErrDatabaseOperation
	}
	return requests, nil
}

// TransitionState applies the decision updates only if the stored
// state still equals fromState, so two concurrent decisions on the
// same request cannot both win. Returns false when the conditional
// write matched no row.
func (dao *RequestDAO) TransitionState(ctx context.Context, requestID uint, fromState string, updates map[string]interface{}) (bool, error) {
	start := time.Now()

	res := dao.DB.WithContext(ctx).
		Model(&model.Request{}).
		Where("id = ? AND estado = ?", requestID, fromState).
		Updates(updates)
	if res.Error != nil {
		logger.Error("Failed to transition request state",
			zap.Error(res.Error),
			zap.Uint("requestID", requestID),
			zap.String("fromState", fromState),
			zap.Duration("duration", time.Since(start)))
		return false, app_errors.ErrDatabaseOperation
	}

	logger.Info("Request state transition attempted",
		zap.Uint("requestID", requestID),
		zap.String("fromState", fromState),
		zap.Int64("rowsAffected", res.RowsAffected),
		zap.Duration("duration", time.Since(start)))
	return res.RowsAffected > 0, nil
}
