// api/router/router.go

package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/alcaldia-digital/ausentismo/api/controller"
	"github.com/alcaldia-digital/ausentismo/api/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	jwtSecret string,
	isAdmin func(username string) bool,
	rateLimitRequests int,
	rateLimitDuration time.Duration,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.RateLimiter(rateLimitRequests, rateLimitDuration))

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": "ausentismo-api"})
	})

	public := router.Group("/api")
	controllers.Auth.RegisterPublicRoutes(public)

	api := router.Group("/api")
	api.Use(middleware.Auth(jwtSecret))
	{
		controllers.Auth.RegisterRoutes(api)
		controllers.Unit.RegisterRoutes(api)
		controllers.User.RegisterRoutes(api)
		controllers.Request.RegisterRoutes(api)

		admin := api.Group("")
		admin.Use(middleware.AdminOnly(isAdmin))
		controllers.Admin.RegisterRoutes(admin)
	}

	return router
}
