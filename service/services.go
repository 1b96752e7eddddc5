// api/service/services.go
package service

import (
	"time"

	"gorm.io/gorm"

	"github.com/alcaldia-digital/ausentismo/api/audit"
	"github.com/alcaldia-digital/ausentismo/api/dao"
	"github.com/alcaldia-digital/ausentismo/api/util"
)

type Services struct {
	Identity IIdentityService
	Auth     IAuthService
	Unit     IUnitService
	User     IUserService
	Request  IRequestService
	Board    IBoardService
	Export   IExportService
	Audit    audit.Service
}

func InitializeServices(
	db *gorm.DB,
	auditService audit.Service,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
	adminList *AdminList,
	jwtSecret string,
	tokenTTL time.Duration,
) (*Services, error) {
	unitDAO := dao.NewUnitDAO(db)
	userDAO := dao.NewUserDAO(db)
	requestDAO := dao.NewRequestDAO(db)

	identity := NewIdentityService(unitDAO, adminList)

	services := &Services{
		Identity: identity,
		Auth:     NewAuthService(userDAO, unitDAO, identity, validationUtil, auditService, jwtSecret, tokenTTL),
		Unit:     NewUnitService(unitDAO, userDAO, validationUtil, cacheService, notificationSvc, eventBus, auditService),
		User:     NewUserService(userDAO, identity, validationUtil, cacheService, auditService),
		Request:  NewRequestService(requestDAO, unitDAO, userDAO, validationUtil, notificationSvc, eventBus, auditService),
		Board:    NewBoardService(unitDAO, requestDAO, userDAO, identity),
		Export:   NewExportService(requestDAO, auditService),
		Audit:    auditService,
	}

	return services, nil
}
