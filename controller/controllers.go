// api/controller/controllers.go
package controller

import "github.com/alcaldia-digital/ausentismo/api/service"

type Controllers struct {
	Auth    *AuthController
	Unit    *UnitController
	Admin   *AdminController
	User    *UserController
	Request *RequestController
}

func InitializeControllers(services *service.Services) *Controllers {
	return &Controllers{
		Auth:    NewAuthController(services.Auth),
		Unit:    NewUnitController(services.Unit),
		Admin:   NewAdminController(services.Unit, services.User, services.Audit),
		User:    NewUserController(services.User),
		Request: NewRequestController(services.Request, services.Board, services.Export),
	}
}
