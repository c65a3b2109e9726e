// internal/inference/gemini.go
package inference

import (
	"context"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"

	"github.com/javajoker/library-shop/internal/prompt"
)

const DefaultModel = "gemini-2.5-flash"

type GeminiConfig struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint. Empty uses the SDK default.
	BaseURL    string
	HTTPClient *http.Client
}

// Gemini calls the hosted Gemini API through the genai SDK.
type Gemini struct {
	client *genai.Client
	model  string
}

// productIDsSchema constrains search responses to {"productIds": ["..."]}.
var productIDsSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		prompt.ProductIDsField: {
			Type:  genai.TypeArray,
			Items: &genai.Schema{Type: genai.TypeString},
		},
	},
}

// NewGemini builds the generator. A missing API key is not an error: the generator is returned
// without a client and every call fails with ErrNoCredentials.
func NewGemini(ctx context.Context, cfg GeminiConfig) (*Gemini, error) {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	g := &Gemini{model: model}
	if cfg.APIKey == "" {
		logrus.Warn("Gemini API key is not set - AI search and chat will fall back to empty results")
		return g, nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: cfg.HTTPClient,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	g.client = client

	return g, nil
}

func (g *Gemini) Model() string {
	return g.model
}

func (g *Gemini) Generate(ctx context.Context, req Request) (string, error) {
	if g.client == nil {
		return "", ErrNoCredentials
	}

	parts := make([]*genai.Part, 0, 2)
	if len(req.Image) > 0 {
		parts = append(parts, genai.NewPartFromBytes(req.Image, req.ImageMIME))
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt))
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	var config *genai.GenerateContentConfig
	if req.JSON {
		config = &genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   productIDsSchema,
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}
	if resp == nil {
		return "", nil
	}

	return resp.Text(), nil
}
