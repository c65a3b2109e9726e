// internal/services/chat_service.go
package services

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/library-shop/internal/catalog"
	"github.com/javajoker/library-shop/internal/inference"
	"github.com/javajoker/library-shop/internal/models"
)

// ChatService runs the Digital Librarian conversation of a session.
type ChatService struct {
	client  *inference.Client
	catalog *catalog.Catalog
	now     func() time.Time
}

func NewChatService(client *inference.Client, cat *catalog.Catalog) *ChatService {
	return &ChatService{
		client:  client,
		catalog: cat,
		now:     time.Now,
	}
}

// Send appends the user message, asks the model with the prior transcript as history and
// appends the reply. Only related ids that exist in the catalog are kept on the reply.
func (s *ChatService) Send(ctx context.Context, session *Session, message string) (models.ChatMessageView, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return models.ChatMessageView{}, ErrEmptyMessage
	}

	opCtx, token, cancel := session.begin(ctx, OperationChat)
	defer cancel()

	session.mu.Lock()
	history := make([]models.Turn, 0, len(session.transcript))
	for _, m := range session.transcript {
		history = append(history, models.Turn{Role: m.Role, Text: m.Text})
	}
	session.transcript = append(session.transcript, newMessage(models.RoleUser, message, nil, s.now()))
	session.mu.Unlock()

	reply := s.client.Chat(opCtx, history, message)
	related := s.catalog.Lookup(reply.ProductIDs)
	modelMessage := newMessage(models.RoleModel, reply.Text, catalog.IDs(related), s.now())

	committed := session.complete(OperationChat, token, func() {
		session.transcript = append(session.transcript, modelMessage)
	})
	if !committed {
		logrus.WithField("session_id", session.ID).Info("Chat reply superseded by a newer message")
		return models.ChatMessageView{}, ErrSuperseded
	}

	logrus.WithFields(logrus.Fields{
		"session_id": session.ID,
		"related":    len(related),
	}).Info("Chat reply recorded")
	return models.ChatMessageView{ChatMessage: modelMessage, RelatedProducts: related}, nil
}

// Transcript returns the session conversation with related products resolved.
func (s *ChatService) Transcript(session *Session) []models.ChatMessageView {
	session.mu.Lock()
	messages := make([]models.ChatMessage, len(session.transcript))
	copy(messages, session.transcript)
	session.mu.Unlock()

	views := make([]models.ChatMessageView, 0, len(messages))
	for _, m := range messages {
		views = append(views, models.ChatMessageView{
			ChatMessage:     m,
			RelatedProducts: s.catalog.Lookup(m.RelatedProductIDs),
		})
	}
	return views
}
