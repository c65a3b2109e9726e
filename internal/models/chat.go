// internal/models/chat.go
package models

import "time"

type ChatMessage struct {
	ID                string    `json:"id"`
	Role              Role      `json:"role"`
	Text              string    `json:"text"`
	RelatedProductIDs []string  `json:"related_product_ids,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ChatMessageView is a transcript entry with its related products resolved against the catalog.
type ChatMessageView struct {
	ChatMessage
	RelatedProducts []Product `json:"related_products,omitempty"`
}

// Turn is one role and text pair of conversation history as sent to the model.
type Turn struct {
	Role Role
	Text string
}
