// api/service/export_service.go
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
	"github.com/alcaldia-digital/ausentismo/api/export"
	logger "github.com/alcaldia-digital/ausentismo/api/logging"
	"github.com/alcaldia-digital/ausentismo/api/model"
)

// IExportService renders the final permit document.
type IExportService interface {
	ExportApprovedDocument(ctx context.Context, requestID uint, callerID uint) ([]byte, error)
}

// ExportService gates rendering on the terminal aprobada state; a
// request in any other state cannot produce a document.
type ExportService struct {
	requestDAO   dao.IRequestDAO
	auditService audit.Service
}

var _ IExportService = &ExportService{}

// NewExportService creates a new instance of ExportService
func NewExportService(requestDAO dao.IRequestDAO, auditService audit.Service) *ExportService {
	return &ExportService{requestDAO: requestDAO, auditService: auditService}
}

func (s *ExportService) ExportApprovedDocument(ctx context.Context, requestID uint, callerID uint) ([]byte, error) {
	request, err := s.requestDAO.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if request.Status != model.StatusApproved {
		return nil, app_errors.ErrRequestNotApproved
	}

	document, err := export.Render(export.NewSnapshot(request))
	if err != nil {
		logger.Error("Failed to render permit document", zap.Error(err), zap.Uint("requestID", requestID))
		return nil, app_errors.ErrInternalServer
	}

	change, _ := json.Marshal(map[string]uint{"request_id": requestID})
	entry := audit.Entry{
		Timestamp:     time.Now(),
		ActorID:       fmt.Sprintf("%d", callerID),
		Action:        audit.ActionExportDocument,
		ResourceID:    fmt.Sprintf("request:%d", requestID),
		Outcome:       "exported",
		ChangeDetails: change,
	}
	if err := s.auditService.Record(ctx, entry); err != nil {
		logger.Warn("Failed to record audit entry", zap.Error(err), zap.String("action", audit.ActionExportDocument))
	}

	return document, nil
}
