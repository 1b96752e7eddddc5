// api/controller/admin_controller.go
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alcaldia-digital/ausentismo/api/audit"
	app_errors "github.com/alcaldia-digital/ausentismo/api/errors"
	"github.com/alcaldia-digital/ausentismo/api/model"
	"github.com/alcaldia-digital/ausentismo/api/service"
	"github.com/alcaldia-digital/ausentismo/api/util"
	helper_util "github.com/alcaldia-digital/ausentismo/api/util/helper"
)

// AdminController exposes the administrator surface: unit lifecycle,
// role-binding assignments, user administration, and the audit trail.
type AdminController struct {
	unitService  service.IUnitService
	userService  service.IUserService
	auditService audit.Service
}

func NewAdminController(unitService service.IUnitService, userService service.IUserService, auditService audit.Service) *AdminController {
	return &AdminController{
		unitService:  unitService,
		userService:  userService,
		auditService: auditService,
	}
}

// RegisterRoutes registers the API routes. The group is expected to
// carry the admin-only middleware.
func (ac *AdminController) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	{
		admin.POST("/units", ac.CreateUnit)
		admin.PUT("/units/:id", ac.UpdateUnit)
		admin.PUT("/units/:id/status", ac.SetUnitStatus)
		admin.PUT("/areas/:id/chief", ac.AssignChief)
		admin.PUT("/secretariats/:id/secretary", ac.AssignSecretary)
		admin.GET("/users", ac.ListUsers)
		admin.PUT("/users/:id/status", ac.SetUserStatus)
		admin.GET("/audit-logs", ac.AuditLogs)
	}
}

// CreateUnit endpoint
func (ac *AdminController) CreateUnit(c *gin.Context) {
	var unit model.Unit
	if err := c.ShouldBindJSON(&unit); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid unit data", app_errors.ErrInvalidUnitData)
		return
	}
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	created, err := ac.unitService.CreateUnit(c, unit, callerID)
	if err != nil {
		ac.respondUnitError(c, err, "Failed to create unit")
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateUnit endpoint
func (ac *AdminController) UpdateUnit(c *gin.Context) {
	unitID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid unit id", err)
		return
	}
	var patch model.UnitPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid unit data", app_errors.ErrInvalidUnitData)
		return
	}
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := ac.unitService.UpdateUnit(c, unitID, patch, callerID)
	if err != nil {
		ac.respondUnitError(c, err, "Failed to update unit")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// SetUnitStatus endpoint
func (ac *AdminController) SetUnitStatus(c *gin.Context) {
	unitID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid unit id", err)
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Status is required", app_errors.ErrInvalidUnitData)
		return
	}
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := ac.unitService.SetUnitStatus(c, unitID, body.Status, callerID)
	if err != nil {
		ac.respondUnitError(c, err, "Failed to change unit status")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// assignmentInput accepts either a user id or a login handle.
type assignmentInput struct {
	UserID   *uint  `json:"user_id"`
	Username string `json:"username"`
}

func (ac *AdminController) resolveAssignee(c *gin.Context, input assignmentInput) (uint, bool) {
	if input.UserID != nil {
		return *input.UserID, true
	}
	if input.Username == "" {
		util.RespondWithError(c, http.StatusBadRequest, "A user id or username is required", app_errors.ErrInvalidUserData)
		return 0, false
	}
	user, err := ac.userService.GetUserByUsername(c, input.Username)
	if err != nil {
		if errors.Is(err, app_errors.ErrUserNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to look up user", err)
		}
		return 0, false
	}
	return user.ID, true
}

// AssignChief endpoint
func (ac *AdminController) AssignChief(c *gin.Context) {
	areaID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid area id", err)
		return
	}
	var input assignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid assignment data", app_errors.ErrInvalidUserData)
		return
	}
	userID, ok := ac.resolveAssignee(c, input)
	if !ok {
		return
	}
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := ac.unitService.AssignChief(c, areaID, userID, callerID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrUnitNotArea):
			util.RespondWithError(c, http.StatusBadRequest, "Chiefs can only be assigned to areas", err)
		default:
			ac.respondUnitError(c, err, "Failed to assign chief")
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// AssignSecretary endpoint
func (ac *AdminController) AssignSecretary(c *gin.Context) {
	rootID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid secretariat id", err)
		return
	}
	var input assignmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid assignment data", app_errors.ErrInvalidUserData)
		return
	}
	userID, ok := ac.resolveAssignee(c, input)
	if !ok {
		return
	}
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := ac.unitService.AssignSecretary(c, rootID, userID, callerID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrUnitNotRoot):
			util.RespondWithError(c, http.StatusBadRequest, "Secretaries can only be assigned to secretariats", err)
		default:
			ac.respondUnitError(c, err, "Failed to assign secretary")
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// ListUsers endpoint
func (ac *AdminController) ListUsers(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", app_errors.ErrInvalidPagination)
		return
	}

	users, err := ac.userService.ListUsers(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list users", err)
		return
	}

	c.JSON(http.StatusOK, users)
}

// SetUserStatus endpoint
func (ac *AdminController) SetUserStatus(c *gin.Context) {
	userID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Status is required", app_errors.ErrInvalidUserData)
		return
	}
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := ac.userService.SetUserStatus(c, userID, body.Status, callerID); err != nil {
		switch {
		case errors.Is(err, app_errors.ErrInvalidUserData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, app_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to change user status", err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": userID, "status": body.Status})
}

// AuditLogs endpoint. Defaults to the last 30 days when no range is
// given; timestamps are RFC3339.
func (ac *AdminController) AuditLogs(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		parsed, err := helper_util.ParseTime(raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid from timestamp", err)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := helper_util.ParseTime(raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid to timestamp", err)
			return
		}
		to = parsed
	}

	entries, err := ac.auditService.QueryLogs(c, from, to, c.Query("actor_id"), c.Query("resource_id"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit logs", err)
		return
	}
	if entries == nil {
		entries = []audit.Entry{}
	}

	c.JSON(http.StatusOK, entries)
}

func (ac *AdminController) respondUnitError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app_errors.ErrInvalidUnitData):
		util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, app_errors.ErrParentInactive):
		util.RespondWithError(c, http.StatusBadRequest, "Cannot activate a unit under an inactive parent", err)
	case errors.Is(err, app_errors.ErrUnitNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Unit not found", err)
	case errors.Is(err, app_errors.ErrUserNotFound):
		util.RespondWithError(c, http.StatusNotFound, "User not found", err)
	case errors.Is(err, app_errors.ErrDatabaseOperation):
		util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, fallback, err)
	}
}
