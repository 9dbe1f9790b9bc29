// internal/handlers/manufacturer.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/haspco/safety-catalog/internal/i18n"
	"github.com/haspco/safety-catalog/internal/services"
	"github.com/haspco/safety-catalog/internal/utils"
)

type ManufacturerHandler struct {
	manufacturerService *services.ManufacturerService
}

func NewManufacturerHandler(manufacturerService *services.ManufacturerService) *ManufacturerHandler {
	return &ManufacturerHandler{manufacturerService: manufacturerService}
}

// GET /api/manufacturers
func (h *ManufacturerHandler) GetManufacturers(c *gin.Context) {
	manufacturers, err := h.manufacturerService.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.InternalErrorResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyManufacturerFetchError))
		return
	}

	utils.SuccessResponse(c, manufacturers)
}

// GET /api/manufacturers/:manufacturerName
func (h *ManufacturerHandler) GetManufacturer(c *gin.Context) {
	manufacturer, err := h.manufacturerService.Get(c.Request.Context(), c.Param("manufacturerName"))
	if err != nil {
		if errors.Is(err, services.ErrManufacturerNotFound) {
			utils.NotFoundResponse(c, "manufacturer")
			return
		}
		c.Error(err)
		utils.InternalErrorResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyManufacturerFetchError))
		return
	}

	utils.SuccessResponse(c, manufacturer)
}
