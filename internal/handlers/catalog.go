// internal/handlers/catalog.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/haspco/safety-catalog/internal/catalog"
	"github.com/haspco/safety-catalog/internal/i18n"
	"github.com/haspco/safety-catalog/internal/services"
	"github.com/haspco/safety-catalog/internal/utils"
)

type CatalogHandler struct {
	catalogService *services.CatalogService
}

func NewCatalogHandler(catalogService *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// GET /api/catalog/tree?by=manufacturer|category
func (h *CatalogHandler) GetTree(c *gin.Context) {
	by, ok := h.groupBy(c)
	if !ok {
		return
	}

	idx, err := h.catalogService.Tree(c.Request.Context(), by)
	if err != nil {
		h.fail(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"by":   idx.By,
		"tree": idx.Root,
	})
}

// GET /api/catalog/options
func (h *CatalogHandler) GetOptions(c *gin.Context) {
	by, sel, ok := h.selection(c)
	if !ok {
		return
	}

	result, err := h.catalogService.Options(c.Request.Context(), sel, by)
	if err != nil {
		h.fail(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}

// GET /api/catalog/browse
func (h *CatalogHandler) Browse(c *gin.Context) {
	by, sel, ok := h.selection(c)
	if !ok {
		return
	}

	view, err := h.catalogService.Browse(c.Request.Context(), sel, by)
	if err != nil {
		h.fail(c, err)
		return
	}

	utils.SuccessResponse(c, view)
}

// GET /api/categories
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, h.catalogService.Categories())
}

func (h *CatalogHandler) groupBy(c *gin.Context) (catalog.GroupBy, bool) {
	raw := c.Query("by")
	by, ok := catalog.ParseGroupBy(raw)
	if !ok {
		utils.BadRequestResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyCatalogInvalidGrouping, raw), nil)
	}
	return by, ok
}

func (h *CatalogHandler) selection(c *gin.Context) (catalog.GroupBy, catalog.Selection, bool) {
	by, ok := h.groupBy(c)
	if !ok {
		return "", catalog.Selection{}, false
	}

	var sel catalog.Selection
	if err := c.ShouldBindQuery(&sel); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return "", catalog.Selection{}, false
	}
	return by, sel, true
}

func (h *CatalogHandler) fail(c *gin.Context, err error) {
	c.Error(err)
	utils.InternalErrorResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyCatalogFetchError))
}
