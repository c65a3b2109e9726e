// internal/handlers/chat.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/javajoker/library-shop/internal/i18n"
	"github.com/javajoker/library-shop/internal/services"
	"github.com/javajoker/library-shop/internal/utils"
)

type ChatHandler struct {
	chatService *services.ChatService
}

type SendMessageRequest struct {
	Message string `json:"message" validate:"notblank,max=4000"`
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// GET /chat/messages
func (h *ChatHandler) GetMessages(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	utils.SuccessResponse(c, h.chatService.Transcript(session))
}

// POST /chat/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	session, ok := requireSession(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyValidationInvalid, "input"), err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	reply, err := h.chatService.Send(c.Request.Context(), session, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyMessage):
			utils.BadRequestResponse(c, i18n.T(lang, i18n.KeyChatEmptyMessage), nil)
		case errors.Is(err, services.ErrSuperseded):
			utils.ConflictResponse(c, "SUPERSEDED", i18n.T(lang, i18n.KeyChatSuperseded))
		default:
			utils.InternalErrorResponse(c, err.Error())
		}
		return
	}

	utils.CreatedResponse(c, reply)
}
