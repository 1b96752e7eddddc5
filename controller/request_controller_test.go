// api/controller/request_controller_test.go
package controller_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/alcaldia-digital/ausentismo/api/controller"
	app_errors "github.com/alcaldia-digital/ausentismo/api/errors"
	logger "github.com/alcaldia-digital/ausentismo/api/logging"
	"github.com/alcaldia-digital/ausentismo/api/model"
	mock_service "github.com/alcaldia-digital/ausentismo/api/test/service_mock"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// setupRouter wires the controller behind a stand-in for the auth
// middleware that plants the caller identity.
func setupRouter(rc *controller.RequestController, callerID uint, username string) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("callerID", callerID)
		c.Set("callerUsername", username)
		c.Next()
	})
	api := router.Group("/")
	rc.RegisterRoutes(api)
	return router
}

func TestRequestController(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRequestService := mock_service.NewMockIRequestService(ctrl)
	mockBoardService := mock_service.NewMockIBoardService(ctrl)
	mockExportService := mock_service.NewMockIExportService(ctrl)

	requestController := controller.NewRequestController(mockRequestService, mockBoardService, mockExportService)
	router := setupRouter(requestController, 30, "juan")

	t.Run("SubmitRequest_Success", func(t *testing.T) {
		mockRequestService.EXPECT().
			Submit(gomock.Any(), uint(30), gomock.Any()).
			Return(&model.Request{ID: 1, RequesterID: 30, Status: model.StatusPendingChief}, nil)

		body := strings.NewReader(`{"medical_appointment":true}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/requests", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("SubmitRequest_Failure_InvalidMotive", func(t *testing.T) {
		mockRequestService.EXPECT().
			Submit(gomock.Any(), uint(30), gomock.Any()).
			Return(nil, app_errors.ErrInvalidRequestData)

		body := strings.NewReader(`{}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/requests", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Inbox_Success", func(t *testing.T) {
		mockRequestService.EXPECT().
			ListInbox(gomock.Any(), uint(30)).
			Return([]*model.Request{{ID: 1}, {ID: 2}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/requests/inbox", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Inbox_EmptyIsAnArrayNotNull", func(t *testing.T) {
		mockRequestService.EXPECT().
			ListInbox(gomock.Any(), uint(30)).
			Return(nil, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/requests/inbox", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
	})

	t.Run("Board_Success", func(t *testing.T) {
		mockBoardService.EXPECT().
			GetBoard(gomock.Any(), uint(30), "juan", gomock.Any()).
			Return(&model.Board{Totals: map[string]int{model.StatusApproved: 2}}, nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/requests/board?states=aprobada", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("GetRequest_Failure_NotFound", func(t *testing.T) {
		mockRequestService.EXPECT().
			GetRequest(gomock.Any(), uint(999)).
			Return(nil, app_errors.ErrRequestNotFound)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/requests/999", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("ChiefDecision_Success", func(t *testing.T) {
		mockRequestService.EXPECT().
			DecideAsChief(gomock.Any(), uint(1), uint(30), gomock.Any()).
			Return(&model.Request{ID: 1, Status: model.StatusPendingSecretary}, nil)

		body := strings.NewReader(`{"approve":true}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/requests/1/chief-decision", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("ChiefDecision_Failure_MissingApproveFlag", func(t *testing.T) {
		body := strings.NewReader(`{}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/requests/1/chief-decision", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("ChiefDecision_Failure_NotTheChief", func(t *testing.T) {
		expected := uint(20)
		mockRequestService.EXPECT().
			DecideAsChief(gomock.Any(), uint(1), uint(30), gomock.Any()).
			Return(nil, &app_errors.AuthorizationError{
				Err:            app_errors.ErrNotChiefOfArea,
				RequestID:      1,
				UnitID:         5,
				UnitName:       "Tesoreria",
				ExpectedUserID: &expected,
				CallerID:       30,
			})

		body := strings.NewReader(`{"approve":true}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/requests/1/chief-decision", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)

		// The denial payload carries the diagnostic context.
		var payload struct {
			Detail struct {
				UnitName       string `json:"unit_name"`
				ExpectedUserID *uint  `json:"expected_user_id"`
			} `json:"detail"`
		}
		assert.NoError(t, json.NewDecoder(w.Body).Decode(&payload))
		assert.Equal(t, "Tesoreria", payload.Detail.UnitName)
		if assert.NotNil(t, payload.Detail.ExpectedUserID) {
			assert.Equal(t, expected, *payload.Detail.ExpectedUserID)
		}
	})

	t.Run("SecretaryDecision_Failure_WrongState", func(t *testing.T) {
		mockRequestService.EXPECT().
			DecideAsSecretary(gomock.Any(), uint(1), uint(30), gomock.Any()).
			Return(nil, app_errors.ErrInvalidRequestState)

		body := strings.NewReader(`{"approve":true,"complies_with_law":true}`)
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/requests/1/secretary-decision", body)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Document_Success", func(t *testing.T) {
		mockExportService.EXPECT().
			ExportApprovedDocument(gomock.Any(), uint(1), uint(30)).
			Return([]byte("PERMISO DE AUSENTISMO LABORAL No. 1"), nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/requests/1/document", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "PERMISO DE AUSENTISMO")
	})

	t.Run("Document_Failure_NotApproved", func(t *testing.T) {
		mockExportService.EXPECT().
			ExportApprovedDocument(gomock.Any(), uint(1), uint(30)).
			Return(nil, app_errors.ErrRequestNotApproved)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/requests/1/document", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}
