// api/service/request_service.go
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

// IRequestService is the approval workflow: submission plus the two
// decision stages.
type IRequestService interface {
	Submit(ctx context.Context, requesterID uint, input model.SubmitRequestInput) (*model.Request, error)
	DecideAsChief(ctx context.Context, requestID uint, callerID uint, input model.ChiefDecisionInput) (*model.Request, error)
	DecideAsSecretary(ctx context.Context, requestID uint, callerID uint, input model.SecretaryDecisionInput) (*model.Request, error)
	ListInbox(ctx context.Context, callerID uint) ([]*model.Request, error)
	GetRequest(ctx context.Context, requestID uint) (*model.Request, error)
}

// RequestService drives a request through
// pendiente_jefe -> pendiente_secretario -> aprobada | rechazada.
// Decision authorization is resolved against the directory bindings at
// decision time, never cached on the request, so a reassignment
// between submission and decision changes who may act.
type RequestService struct {
	requestDAO      dao.IRequestDAO
	unitDAO         dao.IUnitDAO
	userDAO         dao.IUserDAO
	validationUtil  *util.ValidationUtil
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
	auditService    audit.Service
}

var _ IRequestService = &RequestService{}

// NewRequestService creates a new instance of RequestService
func NewRequestService(requestDAO dao.IRequestDAO, unitDAO dao.IUnitDAO, userDAO dao.IUserDAO, validationUtil *util.ValidationUtil, notificationSvc *util.NotificationService, eventBus *util.EventBus, auditService audit.Service) *RequestService {
	return &RequestService{
		requestDAO:      requestDAO,
		unitDAO:         unitDAO,
		userDAO:         userDAO,
		validationUtil:  validationUtil,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
		auditService:    auditService,
	}
}

func (s *RequestService) Submit(ctx context.Context, requesterID uint, input model.SubmitRequestInput) (*model.Request, error) {
	requester, err := s.userDAO.GetUser(ctx, requesterID)
	if err != nil {
		return nil, err
	}
	if !requester.IsActive() {
		return nil, app_errors.ErrUserInactive
	}
	if requester.UnitID == nil {
		return nil, fmt.Errorf("%w: requester has no unit", app_errors.ErrInvalidRequestData)
	}

	motive, err := s.validationUtil.ValidateMotive(input)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", app_errors.ErrInvalidRequestData, err)
	}

	request := model.Request{
		RequesterID: requester.ID,
		UnitID:      requester.UnitID,
		SubmittedAt: time.Now(),

		FullName:   input.FullName,
		NationalID: input.NationalID,
		JobTitle:   input.JobTitle,
		Office:     input.Office,
		WorkArea:   input.WorkArea,

		Motive:     motive,
		MotiveText: input.MotiveText,

		HoursDate: input.HoursDate,
		HourStart: input.HourStart,
		HourEnd:   input.HourEnd,
		HourCount: input.HourCount,

		DayStart: input.DayStart,
		DayEnd:   input.DayEnd,
		DayCount: input.DayCount,

		RequesterSignature: input.RequesterSignature,

		Status: model.StatusPendingChief,
	}
	// Snapshot identity from the user record when the form left it out.
	if request.FullName == "" {
		request.FullName = requester.Name
	}
	if request.NationalID == "" {
		request.NationalID = requester.NationalID
	}

	created, err := s.requestDAO.CreateRequest(ctx, &request)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "request.submitted", *created)
	if err := s.notificationSvc.NotifyRequestChange(ctx, "submitted", *created); err != nil {
		logger.Warn("Failed to notify request submission", zap.Error(err), zap.Uint("requestID", created.ID))
	}
	s.recordAudit(ctx, requesterID, audit.ActionSubmitRequest, created.ID, model.StatusPendingChief, created)

	return created, nil
}

// DecideAsChief records the first-stage decision. The caller must be
// the chief bound to the request's unit right now; the state check is
// re-run inside the conditional write so a concurrent decision loses
// cleanly instead of overwriting.
func (s *RequestService) DecideAsChief(ctx context.Context, requestID uint, callerID uint, input model.ChiefDecisionInput) (*model.Request, error) {
	request, err := s.requestDAO.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != model.StatusPendingChief {
		return nil, app_errors.ErrInvalidRequestState
	}
	if input.Approve == nil {
		return nil, fmt.Errorf("%w: approve flag is required", app_errors.ErrInvalidRequestData)
	}

	unit, err := s.unitForRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	if !s.holdsBinding(ctx, unit.ChiefID, callerID) {
		return nil, &app_errors.AuthorizationError{
			Err:            app_errors.ErrNotChiefOfArea,
			RequestID:      request.ID,
			UnitID:         unit.ID,
			UnitName:       unit.Name,
			ExpectedUserID: unit.ChiefID,
			CallerID:       callerID,
		}
	}

	caller, err := s.userDAO.GetUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	toState := model.StatusPendingSecretary
	if !*input.Approve {
		toState = model.StatusRejected
	}

	now := time.Now()
	updates := map[string]interface{}{
		"estado":            toState,
		"chief_decider_id":  callerID,
		"chief_decided_at":  now,
		"chief_observation": input.Observation,
		"chief_signature":   input.Signature,
		"chief_name":        caller.Name,
	}
	applied, err := s.requestDAO.TransitionState(ctx, request.ID, model.StatusPendingChief, updates)
	if err != nil {
		return nil, err
	}
	if !applied {
		// Someone else decided between our read and our write.
		return nil, app_errors.ErrInvalidRequestState
	}

	updated, err := s.requestDAO.GetRequest(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "request.chief_decided", *updated)
	if err := s.notificationSvc.NotifyRequestChange(ctx, "chief_decided", *updated); err != nil {
		logger.Warn("Failed to notify chief decision", zap.Error(err), zap.Uint("requestID", updated.ID))
	}
	s.recordAudit(ctx, callerID, audit.ActionChiefDecide, updated.ID, toState, updates)

	return updated, nil
}

// DecideAsSecretary records the terminal decision. A secretary can
// only act once the chief has forwarded the request, and only over
// units whose parent secretariat they hold. Rejection forces the
// compliance flag pair to both-false regardless of input.
func (s *RequestService) DecideAsSecretary(ctx context.Context, requestID uint, callerID uint, input model.SecretaryDecisionInput) (*model.Request, error) {
	request, err := s.requestDAO.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != model.StatusPendingSecretary {
		return nil, app_errors.ErrInvalidRequestState
	}
	if input.Approve == nil {
		return nil, fmt.Errorf("%w: approve flag is required", app_errors.ErrInvalidRequestData)
	}

	unit, err := s.unitForRequest(ctx, request)
	if err != nil {
		return nil, err
	}
	if unit.ParentID == nil {
		return nil, &app_errors.AuthorizationError{
			Err:       app_errors.ErrNotSecretaryOfArea,
			RequestID: request.ID,
			UnitID:    unit.ID,
			UnitName:  unit.Name,
			CallerID:  callerID,
		}
	}
	parent, err := s.unitDAO.GetUnit(ctx, *unit.ParentID)
	if err != nil {
		return nil, err
	}
	if !s.holdsBinding(ctx, parent.SecretaryID, callerID) {
		return nil, &app_errors.AuthorizationError{
			Err:            app_errors.ErrNotSecretaryOfArea,
			RequestID:      request.ID,
			UnitID:         parent.ID,
			UnitName:       parent.Name,
			ExpectedUserID: parent.SecretaryID,
			CallerID:       callerID,
		}
	}

	caller, err := s.userDAO.GetUser(ctx, callerID)
	if err != nil {
		return nil, err
	}

	toState := model.StatusApproved
	compliesYes, compliesNo := input.CompliesWithLaw, !input.CompliesWithLaw
	if !*input.Approve {
		toState = model.StatusRejected
		compliesYes, compliesNo = false, false
	}

	now := time.Now()
	updates := map[string]interface{}{
		"estado":                toState,
		"secretary_decider_id":  callerID,
		"secretary_decided_at":  now,
		"secretary_observation": input.Observation,
		"secretary_signature":   input.Signature,
		"secretary_name":        caller.Name,
		"ajusta_ley_si":         compliesYes,
		"ajusta_ley_no":         compliesNo,
	}
	applied, err := s.requestDAO.TransitionState(ctx, request.ID, model.StatusPendingSecretary, updates)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, app_errors.ErrInvalidRequestState
	}

	updated, err := s.requestDAO.GetRequest(ctx, request.ID)
	if err != nil {
		return nil, err
	}

	s.eventBus.Publish(ctx, "request.secretary_decided", *updated)
	if err := s.notificationSvc.NotifyRequestChange(ctx, "secretary_decided", *updated); err != nil {
		logger.Warn("Failed to notify secretary decision", zap.Error(err), zap.Uint("requestID", updated.ID))
	}
	s.recordAudit(ctx, callerID, audit.ActionSecretaryDecide, updated.ID, toState, updates)

	return updated, nil
}

// ListInbox is the personal "my requests" view. Secretary scope, when
// the caller holds any secretario binding, replaces chief scope: only
// requests awaiting their decision under their secretariats' children.
// Chiefs see everything in their areas; everyone else sees what they
// themselves submitted.
func (s *RequestService) ListInbox(ctx context.Context, callerID uint) ([]*model.Request, error) {
	secretariats, err := s.unitDAO.UnitsSecretariedBy(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if len(secretariats) > 0 {
		children, err := s.unitDAO.ChildrenOfAll(ctx, unitIDs(secretariats))
		if err != nil {
			return nil, err
		}
		return s.requestDAO.ListByUnits(ctx, unitIDs(children), []string{model.StatusPendingSecretary})
	}

	chiefed, err := s.unitDAO.UnitsChiefedBy(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if len(chiefed) > 0 {
		return s.requestDAO.ListByUnits(ctx, unitIDs(chiefed), nil)
	}

	return s.requestDAO.ListByRequester(ctx, callerID)
}

func (s *RequestService) GetRequest(ctx context.Context, requestID uint) (*model.Request, error) {
	return s.requestDAO.GetRequest(ctx, requestID)
}

func (s *RequestService) unitForRequest(ctx context.Context, request *model.Request) (*model.Unit, error) {
	if request.UnitID == nil {
		return nil, fmt.Errorf("%w: request has no unit", app_errors.ErrInvalidRequestData)
	}
	return s.unitDAO.GetUnit(ctx, *request.UnitID)
}

// holdsBinding reports whether the binding slot is held by callerID. A
// binding pointing at a missing or inactive user counts as absent.
func (s *RequestService) holdsBinding(ctx context.Context, boundID *uint, callerID uint) bool {
	if boundID == nil || *boundID != callerID {
		return false
	}
	bound, err := s.userDAO.GetUser(ctx, *boundID)
	if err != nil {
		return false
	}
	return bound.IsActive()
}

func unitIDs(units []*model.Unit) []uint {
	ids := make([]uint, 0, len(units))
	for _, u := range units {
		ids = append(ids, u.ID)
	}
	return ids
}

func (s *RequestService) recordAudit(ctx context.Context, actorID uint, action string, requestID uint, outcome string, details interface{}) {
	change, _ := json.Marshal(details)
	entry := audit.Entry{
		Timestamp:     time.Now(),
		ActorID:       fmt.Sprintf("%d", actorID),
		Action:        action,
		ResourceID:    fmt.Sprintf("request:%d", requestID),
		Outcome:       outcome,
		ChangeDetails: change,
	}
	if err := s.auditService.Record(ctx, entry); err != nil {
		logger.Warn("Failed to record audit entry", zap.Error(err), zap.String("action", action))
	}
}
