// internal/handlers/product.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/javajoker/library-shop/internal/catalog"
	"github.com/javajoker/library-shop/internal/i18n"
	"github.com/javajoker/library-shop/internal/utils"
)

type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(cat *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: cat}
}

// GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	utils.SuccessResponse(c, h.catalog.Categories())
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	products := h.catalog.ByCategory(params.Category)
	result := utils.CreatePaginationResult(utils.Paginate(products, params), int64(len(products)), params)

	utils.SetPaginationHeaders(c, result)
	utils.PaginatedResponse(c, result)
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
		return
	}

	utils.SuccessResponse(c, product)
}
