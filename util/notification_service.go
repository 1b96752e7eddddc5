// api/util/notification_service.go

package util

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	logger "github.com/alcaldia-digital/ausentismo/api/logging"
	"github.com/alcaldia-digital/ausentismo/api/model"
)

type NotificationService struct {
	// You might want to add dependencies here, such as a message queue client
}

func NewNotificationService() *NotificationService {
	return &NotificationService{}
}

// NotifyRequestChange tells the next actor in the chain that a request
// moved. Currently a structured log; a mail hook plugs in here.
func (n *NotificationService) NotifyRequestChange(ctx context.Context, changeType string, request model.Request) error {
	switch changeType {
	case "submitted":
		logger.Info("NOTIFICATION: Request submitted",
			zap.Uint("requestID", request.ID),
			zap.Uint("requesterID", request.RequesterID))
	case "chief_decided":
		logger.Info("NOTIFICATION: Chief decided on request",
			zap.Uint("requestID", request.ID),
			zap.String("state", request.Status))
	case "secretary_decided":
		logger.Info("NOTIFICATION: Secretary decided on request",
			zap.Uint("requestID", request.ID),
			zap.String("state", request.Status))
	default:
		return fmt.Errorf("unknown change type: %s", changeType)
	}

	return nil
}

func (n *NotificationService) NotifyUnitChange(ctx context.Context, changeType string, unit model.Unit) error {
	logger.Info("Notifying unit change",
		zap.String("changeType", changeType),
		zap.Uint("unitID", unit.ID),
		zap.String("unitName", unit.Name))
	return nil
}

func (n *NotificationService) NotifyUserChange(ctx context.Context, changeType string, user model.User) error {
	logger.Info("Notifying user change",
		zap.String("changeType", changeType),
		zap.Uint("userID", user.ID),
		zap.String("username", user.Username))
	return nil
}

func (n *NotificationService) NotifyAdmins(ctx context.Context, message string) error {
	// Logic to notify all system administrators
	logger.Info("Notifying admins", zap.String("message", message))
	return nil
}
