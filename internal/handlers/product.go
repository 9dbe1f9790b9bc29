// internal/handlers/product.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/haspco/safety-catalog/internal/catalog"
	"github.com/haspco/safety-catalog/internal/i18n"
	"github.com/haspco/safety-catalog/internal/services"
	"github.com/haspco/safety-catalog/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{
		productService: productService,
	}
}

// GET /api/products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products, source, err := h.productService.List(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.InternalErrorResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductFetchError))
		return
	}

	c.Header("X-Catalog-Source", string(source))
	utils.SuccessResponse(c, products)
}

// GET /api/products/search
func (h *ProductHandler) SearchProducts(c *gin.Context) {
	var filter catalog.Filter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.BadRequestResponse(c, "", err.Error())
		return
	}

	result, err := h.productService.Search(c.Request.Context(), filter, utils.GetPaginationParams(c))
	if err != nil {
		c.Error(err)
		utils.InternalErrorResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductFetchError))
		return
	}

	utils.PaginatedResponse(c, result)
}

// GET /api/products/featured
func (h *ProductHandler) GetFeaturedProducts(c *gin.Context) {
	products, err := h.productService.Featured(c.Request.Context())
	if err != nil {
		c.Error(err)
		utils.InternalErrorResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductFetchError))
		return
	}

	utils.SuccessResponse(c, products)
}

// GET /api/products/:productId
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.productService.Get(c.Request.Context(), c.Param("productId"))
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "product")
			return
		}
		c.Error(err)
		utils.InternalErrorResponse(c, i18n.T(utils.GetLangFromContext(c), i18n.KeyProductFetchError))
		return
	}

	utils.SuccessResponse(c, product)
}

// POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	lang := utils.GetLangFromContext(c)

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationJSONBody), err.Error())
		return
	}

	productID, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		if validationErrors := utils.GetValidationErrors(err); len(validationErrors) > 0 {
			utils.ValidationErrorResponse(c, validationErrors)
			return
		}
		var fieldErr *services.FieldError
		if errors.As(err, &fieldErr) {
			utils.ValidationErrorResponse(c, []utils.ValidationError{{
				Field:   fieldErr.Field,
				Tag:     "json",
				Message: fieldErr.Err.Error(),
			}})
			return
		}
		c.Error(err)
		utils.InternalErrorResponse(c, i18n.T(lang, i18n.KeyProductCreateError))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   i18n.T(lang, i18n.KeyProductCreated),
		"productId": productID,
	})
}
