package router

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/javajoker/library-shop/internal/catalog"
	"github.com/javajoker/library-shop/internal/config"
	"github.com/javajoker/library-shop/internal/i18n"
	"github.com/javajoker/library-shop/internal/inference/inferencetest"
	"github.com/javajoker/library-shop/internal/middleware"
	"github.com/javajoker/library-shop/internal/services"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	Meta map[string]interface{} `json:"meta"`
}

type RouterTestSuite struct {
	suite.Suite
	generator *inferencetest.Generator
	sessions  *services.SessionStore
	router    *gin.Engine
	sessionID string
}

func testConfig() *config.Config {
	return &config.Config{
		Session:   config.SessionConfig{TTL: time.Hour},
		RateLimit: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000, InferencePerMinute: 600, InferenceBurst: 100},
		Upload:    config.UploadConfig{ImageMaxBytes: 1024},
		CORS:      config.CORSConfig{AllowedOrigins: []string{"*"}},
		I18n:      config.I18nConfig{DefaultLocale: "en"},
	}
}

func (suite *RouterTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	require.NoError(suite.T(), i18n.Initialize("en"))
}

func (suite *RouterTestSuite) SetupTest() {
	cat, err := catalog.Default()
	require.NoError(suite.T(), err)

	suite.generator = &inferencetest.Generator{}
	suite.sessions = services.NewSessionStore(time.Hour)
	suite.router = Initialize(testConfig(), Dependencies{
		Catalog:   cat,
		Generator: suite.generator,
		Sessions:  suite.sessions,
	})
	suite.sessionID = suite.sessions.Create().ID
}

func (suite *RouterTestSuite) TearDownTest() {
	suite.generator.AssertExpectations(suite.T())
}

func (suite *RouterTestSuite) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, _ := http.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(middleware.SessionHeader, suite.sessionID)
	return suite.serve(req)
}

func (suite *RouterTestSuite) serve(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var response envelope
	_ = json.Unmarshal(w.Body.Bytes(), &response)
	return w, response
}

func (suite *RouterTestSuite) TestHealth() {
	w, _ := suite.do(http.MethodGet, "/health", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "healthy")
}

func (suite *RouterTestSuite) TestCategories() {
	w, response := suite.do(http.MethodGet, "/v1/categories", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	var categories []string
	require.NoError(suite.T(), json.Unmarshal(response.Data, &categories))
	assert.Equal(suite.T(), catalog.CategoryAll, categories[0])
}

func (suite *RouterTestSuite) TestProductsPagination() {
	w, response := suite.do(http.MethodGet, "/v1/products?page=2&limit=5", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.True(suite.T(), response.Success)
	assert.Equal(suite.T(), "12", w.Header().Get("X-Total-Count"))
	assert.Equal(suite.T(), "3", w.Header().Get("X-Total-Pages"))

	var products []map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(response.Data, &products))
	require.Len(suite.T(), products, 5)
	assert.Equal(suite.T(), "p6", products[0]["id"])
}

func (suite *RouterTestSuite) TestProductsByCategory() {
	_, response := suite.do(http.MethodGet, "/v1/products?category=Stationery", nil)

	var products []map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(response.Data, &products))
	for _, p := range products {
		assert.Equal(suite.T(), "Stationery", p["category"])
	}
	assert.NotEmpty(suite.T(), products)
}

func (suite *RouterTestSuite) TestProductNotFound() {
	w, response := suite.do(http.MethodGet, "/v1/products/p404", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), "NOT_FOUND", response.Error.Code)
	assert.Equal(suite.T(), "Product not found", response.Error.Message)
}

func (suite *RouterTestSuite) TestSearchProducts() {
	suite.generator.On("Generate", mock.Anything, inferencetest.PromptContaining(`User Query: "a gift"`)).
		Return(`{"productIds":["p2"]}`, nil).Once()

	w, response := suite.do(http.MethodGet, "/v1/search/products?q=a+gift", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), "Found 1 results", response.Meta["message"])

	var result struct {
		Products []map[string]interface{} `json:"products"`
		Source   string                   `json:"source"`
	}
	require.NoError(suite.T(), json.Unmarshal(response.Data, &result))
	assert.Equal(suite.T(), "ai", result.Source)
	require.Len(suite.T(), result.Products, 1)
	assert.Equal(suite.T(), "p2", result.Products[0]["id"])

	w, _ = suite.do(http.MethodGet, "/v1/search/last", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

func (suite *RouterTestSuite) TestSearchBlankQuery() {
	w, response := suite.do(http.MethodGet, "/v1/search/products?q=++", nil)
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	assert.False(suite.T(), response.Success)
}

func (suite *RouterTestSuite) TestSearchFailureSuggestsLibrarian() {
	suite.generator.On("Generate", mock.Anything, inferencetest.JSONRequest()).
		Return("", errors.New("unavailable")).Once()

	w, response := suite.do(http.MethodGet, "/v1/search/products?q=mug", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	var result struct {
		Products         []interface{} `json:"products"`
		SuggestLibrarian bool          `json:"suggest_librarian"`
	}
	require.NoError(suite.T(), json.Unmarshal(response.Data, &result))
	assert.NotNil(suite.T(), result.Products)
	assert.Empty(suite.T(), result.Products)
	assert.True(suite.T(), result.SuggestLibrarian)
}

func (suite *RouterTestSuite) TestLastSearchWithoutSearch() {
	w, _ := suite.do(http.MethodGet, "/v1/search/last", nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) imageRequest(content []byte) *http.Request {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, _ := writer.CreateFormFile("image", "photo.png")
	_, _ = part.Write(content)
	_ = writer.Close()

	req, _ := http.NewRequest(http.MethodPost, "/v1/search/image", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set(middleware.SessionHeader, suite.sessionID)
	return req
}

func (suite *RouterTestSuite) TestSearchImage() {
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	suite.generator.On("Generate", mock.Anything, mock.Anything).Return(`{"productIds":["p6"]}`, nil).Once()

	w, response := suite.serve(suite.imageRequest(png))
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), string(response.Data), `"p6"`)
}

func (suite *RouterTestSuite) TestSearchImageRejectsUnknownType() {
	w, response := suite.serve(suite.imageRequest([]byte("GIF89a not allowed")))
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), "INVALID_FILE_TYPE", response.Error.Code)
}

func (suite *RouterTestSuite) TestSearchImageTooLarge() {
	large := append([]byte{0xFF, 0xD8, 0xFF}, make([]byte, 4096)...)
	w, _ := suite.serve(suite.imageRequest(large))
	assert.Equal(suite.T(), http.StatusRequestEntityTooLarge, w.Code)
}

func (suite *RouterTestSuite) TestCartFlow() {
	w, _ := suite.do(http.MethodPost, "/v1/cart/items", map[string]string{"product_id": "p1"})
	require.Equal(suite.T(), http.StatusOK, w.Code)
	suite.do(http.MethodPost, "/v1/cart/items", map[string]string{"product_id": "p1"})

	w, response := suite.do(http.MethodPatch, "/v1/cart/items/p1", map[string]int{"delta": -1})
	require.Equal(suite.T(), http.StatusOK, w.Code)

	var summary struct {
		Count    int     `json:"count"`
		Subtotal float64 `json:"subtotal"`
	}
	require.NoError(suite.T(), json.Unmarshal(response.Data, &summary))
	assert.Equal(suite.T(), 1, summary.Count)

	w, response = suite.do(http.MethodDelete, "/v1/cart/items/p1", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	require.NoError(suite.T(), json.Unmarshal(response.Data, &summary))
	assert.Zero(suite.T(), summary.Count)
	assert.Zero(suite.T(), summary.Subtotal)
}

func (suite *RouterTestSuite) TestCartValidation() {
	w, response := suite.do(http.MethodPost, "/v1/cart/items", map[string]string{"product_id": " "})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), "VALIDATION_ERROR", response.Error.Code)

	w, _ = suite.do(http.MethodPost, "/v1/cart/items", map[string]string{"product_id": "p404"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w, _ = suite.do(http.MethodPatch, "/v1/cart/items/p2", map[string]int{"delta": 1})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

func (suite *RouterTestSuite) TestChatFlow() {
	suite.generator.On("Generate", mock.Anything, inferencetest.TextRequest()).
		Return(`How about the bookends?|||{"productIds":["p1"]}`, nil).Once()

	w, response := suite.do(http.MethodPost, "/v1/chat/messages", map[string]string{"message": "a gift"})
	require.Equal(suite.T(), http.StatusCreated, w.Code)
	assert.Contains(suite.T(), string(response.Data), "How about the bookends?")

	w, response = suite.do(http.MethodGet, "/v1/chat/messages", nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)

	var transcript []struct {
		Role            string                   `json:"role"`
		Text            string                   `json:"text"`
		RelatedProducts []map[string]interface{} `json:"related_products"`
	}
	require.NoError(suite.T(), json.Unmarshal(response.Data, &transcript))
	require.Len(suite.T(), transcript, 3)
	assert.Equal(suite.T(), services.WelcomeMessage, transcript[0].Text)
	assert.Equal(suite.T(), "user", transcript[1].Role)
	require.Len(suite.T(), transcript[2].RelatedProducts, 1)
	assert.Equal(suite.T(), "p1", transcript[2].RelatedProducts[0]["id"])
}

func (suite *RouterTestSuite) TestChatBlankMessage() {
	w, _ := suite.do(http.MethodPost, "/v1/chat/messages", map[string]string{"message": "   "})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *RouterTestSuite) TestNewSessionIssued() {
	req, _ := http.NewRequest(http.MethodGet, "/v1/cart", nil)
	w, _ := suite.serve(req)

	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.NotEmpty(suite.T(), w.Header().Get(middleware.SessionHeader))
	assert.NotEqual(suite.T(), suite.sessionID, w.Header().Get(middleware.SessionHeader))
	assert.Equal(suite.T(), 2, suite.sessions.Len())
}

func (suite *RouterTestSuite) TestLocalizedMessages() {
	req, _ := http.NewRequest(http.MethodGet, "/v1/products/p404", nil)
	req.Header.Set("Accept-Language", "zh-TW")
	_, response := suite.serve(req)

	require.NotNil(suite.T(), response.Error)
	assert.Equal(suite.T(), i18n.T("zh_TW", i18n.KeyProductNotFound), response.Error.Message)
}

func TestRouterTestSuite(t *testing.T) {
	suite.Run(t, new(RouterTestSuite))
}
