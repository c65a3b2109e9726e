// internal/inference/client.go
package inference

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/library-shop/internal/catalog"
	"github.com/javajoker/library-shop/internal/models"
	"github.com/javajoker/library-shop/internal/prompt"
)

const (
	// ApologyReply replaces the chat reply when the model cannot be reached.
	ApologyReply = "I apologize, but I seem to have lost my place in the catalog."
	// EmptyReply replaces a chat response that came back without text.
	EmptyReply = "I'm having trouble checking the archives right now."
)

// Outcome is the result of a search call. Err is set only when the model call itself failed; IDs
// is then empty. A body that cannot be decoded is an empty answer, not a failure.
type Outcome struct {
	IDs []string
	Err error
}

// Client runs the three storefront inference operations. Callers never receive an error: failures
// are logged and turned into empty results or the apology reply.
type Client struct {
	generator Generator
	catalog   *catalog.Catalog
}

func NewClient(generator Generator, cat *catalog.Catalog) *Client {
	return &Client{
		generator: generator,
		catalog:   cat,
	}
}

// SearchText asks the model for products matching a free-text query.
func (c *Client) SearchText(ctx context.Context, query string) []string {
	return c.SearchTextOutcome(ctx, query).IDs
}

func (c *Client) SearchTextOutcome(ctx context.Context, query string) Outcome {
	return c.search(ctx, "text_search", Request{
		Prompt: prompt.Search(c.catalog, query),
		JSON:   true,
	})
}

// SearchImage asks the model for products similar to an image.
func (c *Client) SearchImage(ctx context.Context, image []byte, mimeType string) []string {
	return c.SearchImageOutcome(ctx, image, mimeType).IDs
}

func (c *Client) SearchImageOutcome(ctx context.Context, image []byte, mimeType string) Outcome {
	return c.search(ctx, "image_search", Request{
		Prompt:    prompt.Image(c.catalog),
		Image:     image,
		ImageMIME: mimeType,
		JSON:      true,
	})
}

func (c *Client) search(ctx context.Context, operation string, req Request) Outcome {
	log := logrus.WithField("operation", operation)

	raw, err := c.generator.Generate(ctx, req)
	if err != nil {
		log.WithError(err).Error("AI search failed")
		return Outcome{IDs: []string{}, Err: err}
	}

	ids, err := decodeProductIDs(raw)
	if err != nil {
		log.WithError(err).WithField("response_length", len(raw)).Warn("AI search returned malformed JSON")
		return Outcome{IDs: []string{}}
	}

	log.WithField("ids", len(ids)).Debug("AI search completed")
	return Outcome{IDs: ids}
}

// Chat sends the conversation so far plus the newest user message and decodes the sentinel
// formatted reply.
func (c *Client) Chat(ctx context.Context, history []models.Turn, message string) ChatReply {
	log := logrus.WithField("operation", "chat")

	raw, err := c.generator.Generate(ctx, Request{
		Prompt: prompt.Chat(c.catalog, history, message),
	})
	if err != nil {
		log.WithError(err).Error("Chat failed")
		return ChatReply{Text: ApologyReply, ProductIDs: []string{}}
	}

	if strings.TrimSpace(raw) == "" {
		raw = EmptyReply
	}

	reply, err := decodeChatReply(raw)
	if err != nil {
		log.WithError(err).WithField("response_length", len(raw)).Warn("Failed to parse hidden JSON in chat")
	}
	return reply
}
