// api/service/unit_service.go
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

// IUnitService defines the organization directory operations.
type IUnitService interface {
	CreateUnit(ctx context.Context, unit model.Unit, creatorID uint) (*model.Unit, error)
	UpdateUnit(ctx context.Context, unitID uint, patch model.UnitPatch, updaterID uint) (*model.Unit, error)
	SetUnitStatus(ctx context.Context, unitID uint, status string, updaterID uint) (*model.Unit, error)
	AssignChief(ctx context.Context, areaID uint, userID uint, actorID uint) (*model.Unit, error)
	AssignSecretary(ctx context.Context, rootID uint, userID uint, actorID uint) (*model.Unit, error)
	GetUnit(ctx context.Context, unitID uint) (*model.Unit, error)
	ListUnits(ctx context.Context, filter model.UnitFilter) ([]*model.Unit, error)
	SearchUnits(ctx context.Context, query string) ([]*model.Unit, error)
	ChildrenOf(ctx context.Context, unitID uint) ([]*model.Unit, error)
	ParentOf(ctx context.Context, unitID uint) (*model.Unit, error)
}

// UnitService handles business logic for the organization directory.
type UnitService struct {
	unitDAO         dao.IUnitDAO
	userDAO         dao.IUserDAO
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
	auditService    audit.Service
}

var _ IUnitService = &UnitService{}

// NewUnitService creates a new instance of UnitService
func NewUnitService(unitDAO dao.IUnitDAO, userDAO dao.IUserDAO, validationUtil *util.ValidationUtil, cacheService *util.CacheService, notificationSvc *util.NotificationService, eventBus *util.EventBus, auditService audit.Service) *UnitService {
	service := &UnitService{
		unitDAO:         unitDAO,
		userDAO:         userDAO,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		auditService:    auditService,
	}

	eventBus.Subscribe("unit.updated", service.handleUnitUpdated)

	return service
}

func (s *UnitService) handleUnitUpdated(ctx context.Context, event util.Event) error {
	unit := event.Payload.(model.Unit)
	logger.Info("Unit updated event received", zap.Uint("unitID", unit.ID))

	if err := s.cacheService.DeleteUnit(ctx, unit.ID); err != nil {
		logger.Warn("Failed to invalidate unit cache", zap.Error(err), zap.Uint("unitID", unit.ID))
	}

	if err := s.notificationSvc.NotifyUnitChange(ctx, "updated", unit); err != nil {
		logger.Warn("Failed to send unit change notification", zap.Error(err), zap.Uint("unitID", unit.ID))
	}

	return nil
}

func (s *UnitService) CreateUnit(ctx context.Context, unit model.Unit, creatorID uint) (*model.Unit, error) {
	if unit.Status == "" {
		unit.Status = model.UnitStatusActive
	}
	if err := s.validationUtil.ValidateUnit(unit); err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInvalidUnitData, err)
	}

	if unit.ParentID != nil {
		parent, err := s.unitDAO.GetUnit(ctx, *unit.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.IsRoot() {
			return nil, fmt.Errorf("%w: parent must be a root secretariat", app_errors.ErrInvalidUnitData)
		}
	}

	created, err := s.unitDAO.CreateUnit(ctx, &unit)
	if err != nil {
		return nil, err
	}

	s.recordAudit(ctx, creatorID, audit.ActionCreateUnit, created.ID, "created", created)
	return created, nil
}

func (s *UnitService) UpdateUnit(ctx context.Context, unitID uint, patch model.UnitPatch, updaterID uint) (*model.Unit, error) {
	unit, err := s.unitDAO.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		unit.Name = *patch.Name
	}
	if patch.Status != nil {
		if err := s.validationUtil.ValidateUnitStatus(*patch.Status); err != nil {
			return nil, fmt.Errorf("%w: %v", app_errors.ErrInvalidUnitData, err)
		}
		unit.Status = *patch.Status
	}
	if patch.ParentID != nil {
		parent, err := s.unitDAO.GetUnit(ctx, *patch.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.IsRoot() {
			return nil, fmt.Errorf("%w: parent must be a root secretariat", app_errors.ErrInvalidUnitData)
		}
		unit.ParentID = patch.ParentID
	}
	if err := s.validationUtil.ValidateUnit(*unit); err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInvalidUnitData, err)
	}

	if err := s.unitDAO.UpdateUnit(ctx, unit); err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "unit.updated", *unit)
	s.recordAudit(ctx, updaterID, audit.ActionUpdateUnit, unit.ID, "updated", unit)
	return unit, nil
}

// SetUnitStatus is the guarded lifecycle transition. The store stays
// permissive; the guard against activating a child under an inactive
// parent lives here.
func (s *UnitService) SetUnitStatus(ctx context.Context, unitID uint, status string, updaterID uint) (*model.Unit, error) {
	if err := s.validationUtil.ValidateUnitStatus(status); err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInvalidUnitData, err)
	}

	unit, err := s.unitDAO.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if status == model.UnitStatusActive && unit.ParentID != nil {
		parent, err := s.unitDAO.GetUnit(ctx, *unit.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.IsActive() {
			return nil, app_errors.ErrParentInactive
		}
	}

	unit.Status = status
	if err := s.unitDAO.UpdateUnit(ctx, unit); err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "unit.updated", *unit)
	s.recordAudit(ctx, updaterID, audit.ActionUpdateUnit, unit.ID, status, unit)
	return unit, nil
}

// AssignChief binds a user as jefe of an area. Only child units hold
// chief bindings; the previous holder is overwritten, no history kept.
func (s *UnitService) AssignChief(ctx context.Context, areaID uint, userID uint, actorID uint) (*model.Unit, error) {
	area, err := s.unitDAO.GetUnit(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if area.IsRoot() {
		return nil, app_errors.ErrUnitNotArea
	}

	user, err := s.userDAO.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	area.ChiefID = &user.ID
	if err := s.unitDAO.UpdateUnit(ctx, area); err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "unit.updated", *area)
	s.recordAudit(ctx, actorID, audit.ActionAssignChief, area.ID, "assigned", map[string]uint{"chief_id": user.ID})
	return area, nil
}

// AssignSecretary binds a user as secretario of a root secretariat.
func (s *UnitService) AssignSecretary(ctx context.Context, rootID uint, userID uint, actorID uint) (*model.Unit, error) {
	root, err := s.unitDAO.GetUnit(ctx, rootID)
	if err != nil {
		return nil, err
	}
	if !root.IsRoot() {
		return nil, app_errors.ErrUnitNotRoot
	}

	user, err := s.userDAO.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	root.SecretaryID = &user.ID
	if err := s.unitDAO.UpdateUnit(ctx, root); err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "unit.updated", *root)
	s.recordAudit(ctx, actorID, audit.ActionAssignSecretary, root.ID, "assigned", map[string]uint{"secretary_id": user.ID})
	return root, nil
}

func (s *UnitService) GetUnit(ctx context.Context, unitID uint) (*model.Unit, error) {
	cached, err := s.cacheService.GetUnit(ctx, unitID)
	if err == nil && cached != nil {
		return cached, nil
	}

	unit, err := s.unitDAO.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	if err := s.cacheService.SetUnit(ctx, *unit); err != nil {
		logger.Warn("Failed to cache unit", zap.Error(err), zap.Uint("unitID", unitID))
	}
	return unit, nil
}

func (s *UnitService) ListUnits(ctx context.Context, filter model.UnitFilter) ([]*model.Unit, error) {
	return s.unitDAO.ListUnits(ctx, filter)
}

func (s *UnitService) SearchUnits(ctx context.Context, query string) ([]*model.Unit, error) {
	if query == "" {
		return nil, nil
	}
	return s.unitDAO.SearchUnitsByName(ctx, query, 50)
}

func (s *UnitService) ChildrenOf(ctx context.Context, unitID uint) ([]*model.Unit, error) {
	return s.unitDAO.ChildrenOf(ctx, unitID)
}

func (s *UnitService) ParentOf(ctx context.Context, unitID uint) (*model.Unit, error) {
	unit, err := s.unitDAO.GetUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}
	if unit.ParentID == nil {
		return nil, nil
	}
	return s.unitDAO.GetUnit(ctx, *unit.ParentID)
}

func (s *UnitService) recordAudit(ctx context.Context, actorID uint, action string, unitID uint, outcome string, details interface{}) {
	change, _ := json.Marshal(details)
	entry := audit.Entry{
		Timestamp:     time.Now(),
		ActorID:       fmt.Sprintf("%d", actorID),
		Action:        action,
		ResourceID:    fmt.Sprintf("unit:%d", unitID),
		Outcome:       outcome,
		ChangeDetails: change,
	}
	if err := s.auditService.Record(ctx, entry); err != nil {
		logger.Warn("Failed to record audit entry", zap.Error(err), zap.String("action", action))
	}
}
