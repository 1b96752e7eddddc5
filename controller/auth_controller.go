// api/controller/auth_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app_errors "github.com/alcaldia-digital/ausentismo/api/errors"
	"github.com/alcaldia-digital/ausentismo/api/service"
	"github.com/alcaldia-digital/ausentismo/api/util"
)

type AuthController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// RegisterPublicRoutes registers the routes that do not require a
// bearer token.
func (ac *AuthController) RegisterPublicRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", ac.Register)
		auth.POST("/login", ac.Login)
	}
}

// RegisterRoutes registers the authenticated routes
func (ac *AuthController) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.GET("/me", ac.Me)
	}
}

// Register endpoint
func (ac *AuthController) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid registration data", app_errors.ErrInvalidUserData)
		return
	}

	result, err := ac.authService.Register(c, input)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrInvalidUserData):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, app_errors.ErrUnitNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Unit not found", err)
		case errors.Is(err, app_errors.ErrUserConflict):
			util.RespondWithError(c, http.StatusConflict, "Username or national id already registered", err)
		case errors.Is(err, app_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to register user", app_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, result)
}

// Login endpoint
func (ac *AuthController) Login(c *gin.Context) {
	var credentials struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&credentials); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Username and password are required", app_errors.ErrInvalidUserData)
		return
	}

	result, err := ac.authService.Login(c, credentials.Username, credentials.Password)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrInvalidCredentials):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid username or password", err)
		case errors.Is(err, app_errors.ErrUserInactive):
			util.RespondWithError(c, http.StatusForbidden, "User is inactive", err)
		case errors.Is(err, app_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to log in", app_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusOK, result)
}

// Me endpoint
func (ac *AuthController) Me(c *gin.Context) {
	callerID, err := util.CallerID(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	profile, err := ac.authService.Me(c, callerID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to load profile", err)
		}
		return
	}

	c.JSON(http.StatusOK, profile)
}
