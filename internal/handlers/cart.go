// internal/handlers/cart.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/library-shop/internal/i18n"
	"github.com/javajoker/library-shop/internal/services"
	"github.com/javajoker/library-shop/internal/utils"
)

type CartHandler struct {
	cartService *services.CartService
}

type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"notblank"`
}

type UpdateCartItemRequest struct {
	Delta int `json:"delta" validate:"ne=0"`
}

func NewCartHandler(cartService *services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, h.cartService.Get(session))
}

// POST /cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	summary, err := h.cartService.Add(session, req.ProductID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, summary, gin.H{"message": i18n.T(lang, i18n.KeyCartItemAdded)})
}

// PATCH /cart/items/:id
func (h *CartHandler) UpdateItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	summary, err := h.cartService.UpdateQuantity(session, c.Param("id"), req.Delta)
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, summary, gin.H{"message": i18n.T(lang, i18n.KeyCartUpdated)})
}

// DELETE /cart/items/:id
func (h *CartHandler) RemoveItem(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := requireSession(c)
	if !ok {
		return
	}

	summary, err := h.cartService.Remove(session, c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, summary, gin.H{"message": i18n.T(lang, i18n.KeyCartItemRemoved)})
}

func (h *CartHandler) handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProductNotFound):
		utils.NotFoundResponse(c, i18n.KeyProductNotFound)
	case errors.Is(err, services.ErrCartItemMissing):
		utils.NotFoundResponse(c, i18n.KeyCartItemMissing)
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
