// api/controller/request_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app_errors "github.com/alcaldia-digital/ausentismo/api/errors"
	"github.com/alcaldia-digital/ausentismo/api/model"
	"github.com/alcaldia-digital/ausentismo/api/service"
	"github.com/alcaldia-digital/ausentismo/api/util"
)

type RequestController struct {
	requestService service.IRequestService
	boardService   service.IBoardService
	exportService  service.IExportService
}

func NewRequestController(requestService service.IRequestService, boardService service.IBoardService, exportService service.IExportService) *RequestController {
	return &RequestController{
		requestService: requestService,
		boardService:   boardService,
		exportService:  exportService,
	}
}

// RegisterRoutes registers the API routes
func (rc *RequestController) RegisterRoutes(r *gin.RouterGroup) {
	requests := r.Group("/requests")
	{
		requests.POST("", rc.SubmitRequest)
		requests.GET("/inbox", rc.Inbox)
		requests.GET("/board", rc.Board)
		requests.GET("/:id", rc.GetRequest)
		requests.PUT("/:id/chief-decision", rc.ChiefDecision)
		requests.PUT("/:id/secretary-decision", rc.SecretaryDecision)
		requests.GET("/:id/document", rc.Document)
	}
}

// SubmitRequest endpoint
func (rc *RequestController) SubmitRequest(c *gin.Context) {
	var input model.SubmitRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid request data", app_errors.ErrInvalidRequestData)
		return
	}
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	created, err := rc.requestService.Submit(c, callerID, input)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrInvalidRequestData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, app_errors.ErrUserInactive):
			util.RespondWithError(c, http.StatusForbidden, "User is inactive", err)
		case errors.Is(err, app_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		case errors.Is(err, app_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to submit request", app_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Inbox endpoint
func (rc *RequestController) Inbox(c *gin.Context) {
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	requests, err := rc.requestService.ListInbox(c, callerID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list requests", err)
		return
	}
	if requests == nil {
		requests = []*model.Request{}
	}

	c.JSON(http.StatusOK, requests)
}

// Board endpoint
func (rc *RequestController) Board(c *gin.Context) {
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var filter model.BoardFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid board filters", err)
		return
	}

	board, err := rc.boardService.GetBoard(c, callerID, util.CallerUsername(c), filter)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to build board", err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// GetRequest endpoint
func (rc *RequestController) GetRequest(c *gin.Context) {
	requestID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid request id", err)
		return
	}

	request, err := rc.requestService.GetRequest(c, requestID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrRequestNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Request not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get request", err)
		}
		return
	}

	c.JSON(http.StatusOK, request)
}

// ChiefDecision endpoint
func (rc *RequestController) ChiefDecision(c *gin.Context) {
	requestID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid request id", err)
		return
	}
	var input model.ChiefDecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "The approve flag is required", app_errors.ErrInvalidRequestData)
		return
	}
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := rc.requestService.DecideAsChief(c, requestID, callerID, input)
	if err != nil {
		rc.respondDecisionError(c, err, "Failed to record chief decision")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// SecretaryDecision endpoint
func (rc *RequestController) SecretaryDecision(c *gin.Context) {
	requestID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid request id", err)
		return
	}
	var input model.SecretaryDecisionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "The approve flag is required", app_errors.ErrInvalidRequestData)
		return
	}
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := rc.requestService.DecideAsSecretary(c, requestID, callerID, input)
	if err != nil {
		rc.respondDecisionError(c, err, "Failed to record secretary decision")
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Document endpoint
func (rc *RequestController) Document(c *gin.Context) {
	requestID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid request id", err)
		return
	}
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	document, err := rc.exportService.ExportApprovedDocument(c, requestID, callerID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrRequestNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Request not found", err)
		case errors.Is(err, app_errors.ErrRequestNotApproved):
			util.RespondWithError(c, http.StatusConflict, "Only approved requests can be exported", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to export document", err)
		}
		return
	}

	c.Data(http.StatusOK, "text/plain; charset=utf-8", document)
}

// respondDecisionError maps the workflow errors. A denied decision
// echoes the diagnostic context so support can see which binding was
// expected.
func (rc *RequestController) respondDecisionError(c *gin.Context, err error, fallback string) {
	var authErr *app_errors.AuthorizationError
	switch {
	case errors.As(err, &authErr):
		util.RespondWithDetailedError(c, http.StatusForbidden, "Caller does not hold the required binding", err, authErr)
	case errors.Is(err, app_errors.ErrRequestNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Request not found", err)
	case errors.Is(err, app_errors.ErrInvalidRequestState):
		util.RespondWithError(c, http.StatusConflict, "Request is not in the expected state", err)
	case errors.Is(err, app_errors.ErrInvalidRequestData):
		util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, app_errors.ErrDatabaseOperation):
		util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, fallback, err)
	}
}
