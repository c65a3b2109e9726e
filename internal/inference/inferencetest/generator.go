// Package inferencetest provides a testify mock of the inference generator.
package inferencetest

import (
	"context"
	"strings"

	"github.com/stretchr/testify/mock"

	"github.com/javajoker/library-shop/internal/inference"
)

type Generator struct {
	mock.Mock
}

func (g *Generator) Generate(ctx context.Context, req inference.Request) (string, error) {
	args := g.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// JSONRequest matches schema-constrained search requests.
func JSONRequest() interface{} {
	return mock.MatchedBy(func(req inference.Request) bool { return req.JSON })
}

// TextRequest matches chat requests.
func TextRequest() interface{} {
	return mock.MatchedBy(func(req inference.Request) bool { return !req.JSON })
}

// PromptContaining matches any request whose prompt contains s.
func PromptContaining(s string) interface{} {
	return mock.MatchedBy(func(req inference.Request) bool { return strings.Contains(req.Prompt, s) })
}
