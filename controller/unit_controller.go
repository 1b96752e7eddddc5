// api/controller/unit_controller.go
package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	app_errors "github.com/alcaldia-digital/ausentismo/api/errors"
	"github.com/alcaldia-digital/ausentismo/api/model"
	"github.com/alcaldia-digital/ausentismo/api/service"
	"github.com/alcaldia-digital/ausentismo/api/util"
)

type UnitController struct {
	unitService service.IUnitService
}

func NewUnitController(unitService service.IUnitService) *UnitController {
	return &UnitController{
		unitService: unitService,
	}
}

// RegisterRoutes registers the API routes
func (uc *UnitController) RegisterRoutes(r *gin.RouterGroup) {
	units := r.Group("/units")
	{
		units.GET("", uc.ListUnits)
		units.GET("/search", uc.SearchUnits)
		units.GET("/:id", uc.GetUnit)
		units.GET("/:id/children", uc.GetChildren)
		units.GET("/:id/parent", uc.GetParent)
	}
}

// ListUnits endpoint. Defaults to active units only; all=1 includes
// inactive ones (the administrative view).
func (uc *UnitController) ListUnits(c *gin.Context) {
	filter := model.UnitFilter{ActiveOnly: c.Query("all") != "1"}
	if c.Query("roots") == "1" {
		filter.RootsOnly = true
	}
	if parent := c.Query("parent_id"); parent != "" {
		parentID, err := parseID(parent)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid parent id", err)
			return
		}
		filter.ParentID = &parentID
	}

	units, err := uc.unitService.ListUnits(c, filter)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list units", err)
		return
	}

	c.JSON(http.StatusOK, units)
}

// SearchUnits endpoint
func (uc *UnitController) SearchUnits(c *gin.Context) {
	units, err := uc.unitService.SearchUnits(c, c.Query("q"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to search units", err)
		return
	}

	c.JSON(http.StatusOK, units)
}

// GetUnit endpoint
func (uc *UnitController) GetUnit(c *gin.Context) {
	unitID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid unit id", err)
		return
	}

	unit, err := uc.unitService.GetUnit(c, unitID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrUnitNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Unit not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get unit", err)
		}
		return
	}

	c.JSON(http.StatusOK, unit)
}

// GetChildren endpoint
func (uc *UnitController) GetChildren(c *gin.Context) {
	unitID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid unit id", err)
		return
	}

	children, err := uc.unitService.ChildrenOf(c, unitID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list children", err)
		return
	}

	c.JSON(http.StatusOK, children)
}

// GetParent endpoint. Returns null for a root secretariat.
func (uc *UnitController) GetParent(c *gin.Context) {
	unitID, err := parseID(c.Param("id"))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid unit id", err)
		return
	}

	parent, err := uc.unitService.ParentOf(c, unitID)
	if err != nil {
		switch {
		case errors.Is(err, app_errors.ErrUnitNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Unit not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to get parent unit", err)
		}
		return
	}

	c.JSON(http.StatusOK, parent)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
