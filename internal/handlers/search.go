// internal/handlers/search.go
package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/library-shop/internal/i18n"
	"github.com/javajoker/library-shop/internal/models"
	"github.com/javajoker/library-shop/internal/services"
	"github.com/javajoker/library-shop/internal/utils"
)

// ImageField is the multipart field carrying the uploaded image.
const ImageField = "image"

type SearchHandler struct {
	searchService *services.SearchService
	maxImageBytes int64
}

func NewSearchHandler(searchService *services.SearchService, maxImageBytes int64) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		maxImageBytes: maxImageBytes,
	}
}

// GET /search/products?q=
func (h *SearchHandler) SearchProducts(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	result, err := h.searchService.SearchText(c.Request.Context(), session, c.Query("q"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.respond(c, result)
}

// POST /search/image
func (h *SearchHandler) SearchImage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := requireSession(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile(ImageField)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationRequired, ImageField), err.Error())
		return
	}
	if h.maxImageBytes > 0 && fileHeader.Size > h.maxImageBytes {
		h.handleError(c, services.ErrImageTooLarge)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyFileUploadFailed), err.Error())
		return
	}

	result, err := h.searchService.SearchImage(c.Request.Context(), session, image)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.respond(c, result)
}

// GET /search/last
func (h *SearchHandler) GetLastSearch(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	result, ok := h.searchService.LastSearch(session)
	if !ok {
		utils.NotFoundResponse(c, i18n.KeySearchNone)
		return
	}

	h.respond(c, result)
}

func (h *SearchHandler) respond(c *gin.Context, result *models.SearchResult) {
	lang := utils.GetLangFromContext(c)

	message := i18n.T(lang, i18n.KeySearchResultsFound, len(result.Products))
	if len(result.Products) == 0 {
		message = i18n.T(lang, i18n.KeySearchNoResults)
	}

	utils.SuccessResponseWithMeta(c, result, gin.H{
		"message": message,
		"total":   len(result.Products),
	})
}

func (h *SearchHandler) handleError(c *gin.Context, err error) {
	lang := utils.GetLangFromContext(c)

	switch {
	case errors.Is(err, services.ErrEmptyQuery):
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeySearchEmptyQuery), nil)
	case errors.Is(err, services.ErrInvalidImage):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_FILE_TYPE", i18n.T(lang, i18n.KeyFileInvalidType), nil)
	case errors.Is(err, services.ErrImageTooLarge):
		utils.ErrorResponse(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", i18n.T(lang, i18n.KeyFileTooLarge),
			gin.H{"max_bytes": h.maxImageBytes})
	case errors.Is(err, services.ErrSuperseded):
		utils.ConflictResponse(c, "SUPERSEDED", i18n.T(lang, i18n.KeySearchSuperseded))
	default:
		utils.InternalErrorResponse(c, err.Error())
	}
}
