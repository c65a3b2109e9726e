// internal/models/common.go
package models

// Enums
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

type SearchKind string

const (
	SearchKindText  SearchKind = "text"
	SearchKindImage SearchKind = "image"
)

// SearchSource tells which path produced a search result.
type SearchSource string

const (
	SearchSourceAI       SearchSource = "ai"
	SearchSourceFallback SearchSource = "fallback"
	SearchSourceNone     SearchSource = "none"
)

type SearchResult struct {
	Query            string       `json:"query"`
	Kind             SearchKind   `json:"kind"`
	Products         []Product    `json:"products"`
	Source           SearchSource `json:"source"`
	SuggestLibrarian bool         `json:"suggest_librarian"`
}
