// internal/inference/generator.go
package inference

import (
	"context"
	"errors"
)

var ErrNoCredentials = errors.New("inference: no API credential configured")

// Request is a single call to the language model.
type Request struct {
	Prompt string
	// Image is sent as inline data ahead of the prompt when set.
	Image     []byte
	ImageMIME string
	// JSON asks for the schema-constrained {productIds: string[]} object instead of free text.
	JSON bool
}

// Generator performs one inference call and returns the raw response text.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
