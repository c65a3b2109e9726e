// internal/inference/decoder.go
package inference

import (
	"encoding/json"
	"strings"

	"github.com/javajoker/library-shop/internal/prompt"
)

// ChatReply is a decoded chat response.
type ChatReply struct {
	Text       string   `json:"text"`
	ProductIDs []string `json:"product_ids"`
}

type productIDsPayload struct {
	ProductIDs []json.RawMessage `json:"productIds"`
}

// DecodeProductIDs reads the productIds array of a JSON object. Empty input, a missing or null
// field and invalid JSON all yield an empty list. Array elements that are not non-empty strings are skipped.
func DecodeProductIDs(raw string) []string {
	ids, _ := decodeProductIDs(raw)
	return ids
}

func decodeProductIDs(raw string) ([]string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []string{}, nil
	}

	var payload productIDsPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return []string{}, err
	}

	ids := make([]string, 0, len(payload.ProductIDs))
	for _, element := range payload.ProductIDs {
		var id string
		if err := json.Unmarshal(element, &id); err != nil || id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// DecodeChatReply splits a chat response on the sentinel. The text before the first one, trimmed,
// is the reply. The text between the first and the second sentinel is parsed as a productIds
// object; anything after a second sentinel is ignored. When that part is missing or is not valid
// JSON the reply is kept with no ids. Without a sentinel the whole response is the reply.
func DecodeChatReply(raw string) ChatReply {
	reply, _ := decodeChatReply(raw)
	return reply
}

func decodeChatReply(raw string) (ChatReply, error) {
	parts := strings.SplitN(raw, prompt.Sentinel, 3)
	reply := ChatReply{Text: strings.TrimSpace(parts[0]), ProductIDs: []string{}}
	if len(parts) < 2 {
		return reply, nil
	}

	ids, err := decodeProductIDs(parts[1])
	if err != nil {
		return reply, err
	}
	reply.ProductIDs = ids
	return reply, nil
}
