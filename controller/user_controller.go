// api/controller/user_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app_errors "github.com/alcaldia-digital/ausentismo/api/errors"
	"github.com/alcaldia-digital/ausentismo/api/service"
	"github.com/alcaldia-digital/ausentismo/api/util"
)

type UserController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// RegisterRoutes registers the API routes
func (uc *UserController) RegisterRoutes(r *gin.RouterGroup) {
	users := r.Group("/users")
	{
		users.GET("/:id", uc.GetUser)
	}
}

// GetUser endpoint
func (uc *UserController) GetUser(c *gin.Context) {
	userID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid user id", err)
		return
	}

	user, err := uc.userService.GetUser(c, userID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get user", err)
		}
		return
	}

	c.JSON(http.StatusOK, user)
}
