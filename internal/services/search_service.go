// internal/services/search_service.go
package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/library-shop/internal/catalog"
	"github.com/javajoker/library-shop/internal/inference"
	"github.com/javajoker/library-shop/internal/models"
)

const (
	MIMEJPEG = "image/jpeg"
	MIMEPNG  = "image/png"
)

// SearchService turns model answers into catalog products and records the last search of a session.
type SearchService struct {
	client        *inference.Client
	catalog       *catalog.Catalog
	maxImageBytes int64
}

func NewSearchService(client *inference.Client, cat *catalog.Catalog, maxImageBytes int64) *SearchService {
	return &SearchService{
		client:        client,
		catalog:       cat,
		maxImageBytes: maxImageBytes,
	}
}

// SearchText runs a free-text search. When the model answered but named no known product,
// a local substring match over the catalog is used instead.
func (s *SearchService) SearchText(ctx context.Context, session *Session, query string) (*models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	opCtx, token, cancel := session.begin(ctx, OperationSearch)
	defer cancel()

	outcome := s.client.SearchTextOutcome(opCtx, query)
	result := &models.SearchResult{
		Query: query,
		Kind:  models.SearchKindText,
	}

	switch {
	case outcome.Err != nil:
		result.Products = []models.Product{}
		result.Source = models.SearchSourceNone
	default:
		result.Products = s.catalog.Resolve(outcome.IDs)
		result.Source = models.SearchSourceAI
		if len(result.Products) == 0 {
			result.Products = s.catalog.Match(query)
			result.Source = models.SearchSourceFallback
		}
	}
	result.SuggestLibrarian = len(result.Products) == 0

	return s.commit(session, token, result)
}

// SearchImage runs a visual search. There is no local fallback for images.
func (s *SearchService) SearchImage(ctx context.Context, session *Session, image []byte) (*models.SearchResult, error) {
	mimeType, err := s.ValidateImage(image)
	if err != nil {
		return nil, err
	}

	opCtx, token, cancel := session.begin(ctx, OperationSearch)
	defer cancel()

	outcome := s.client.SearchImageOutcome(opCtx, image, mimeType)
	result := &models.SearchResult{
		Kind:     models.SearchKindImage,
		Products: s.catalog.Resolve(outcome.IDs),
		Source:   models.SearchSourceAI,
	}
	if outcome.Err != nil {
		result.Source = models.SearchSourceNone
	}
	result.SuggestLibrarian = len(result.Products) == 0

	return s.commit(session, token, result)
}

func (s *SearchService) commit(session *Session, token uint64, result *models.SearchResult) (*models.SearchResult, error) {
	committed := session.complete(OperationSearch, token, func() {
		session.lastSearch = result
	})
	if !committed {
		logrus.WithFields(logrus.Fields{
			"session_id": session.ID,
			"kind":       result.Kind,
		}).Info("Search superseded by a newer request")
		return nil, ErrSuperseded
	}

	logrus.WithFields(logrus.Fields{
		"session_id": session.ID,
		"kind":       result.Kind,
		"source":     result.Source,
		"results":    len(result.Products),
	}).Info("Search completed")
	return result, nil
}

// LastSearch returns the most recent completed search of the session.
func (s *SearchService) LastSearch(session *Session) (*models.SearchResult, bool) {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.lastSearch == nil {
		return nil, false
	}
	result := *session.lastSearch
	return &result, true
}

// ValidateImage checks the upload size and signature and returns the detected MIME type.
func (s *SearchService) ValidateImage(image []byte) (string, error) {
	if len(image) == 0 {
		return "", ErrInvalidImage
	}
	if s.maxImageBytes > 0 && int64(len(image)) > s.maxImageBytes {
		return "", fmt.Errorf("%w: %d bytes", ErrImageTooLarge, len(image))
	}

	mimeType := detectImageType(image)
	if mimeType == "" {
		return "", ErrInvalidImage
	}
	return mimeType, nil
}

func detectImageType(buffer []byte) string {
	// Check for JPEG
	if len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF {
		return MIMEJPEG
	}

	// Check for PNG
	if len(buffer) >= 8 && buffer[0] == 0x89 && buffer[1] == 0x50 && buffer[2] == 0x4E && buffer[3] == 0x47 {
		return MIMEPNG
	}

	return ""
}
