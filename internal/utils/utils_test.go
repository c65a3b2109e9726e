package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Paginate(items, PaginationParams{Page: 1, Limit: 2}))
	assert.Equal(t, []int{5}, Paginate(items, PaginationParams{Page: 3, Limit: 2}))
	assert.Empty(t, Paginate(items, PaginationParams{Page: 4, Limit: 2}))

	result := CreatePaginationResult(nil, int64(len(items)), PaginationParams{Page: 1, Limit: 2})
	assert.Equal(t, 3, result.TotalPages)
}

func TestGetPaginationParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/products?page=-3&limit=500&category=Books", nil)

	params := GetPaginationParams(c)
	assert.Equal(t, 1, params.Page)
	assert.Equal(t, 20, params.Limit)
	assert.Equal(t, "Books", params.Category)
}

type sampleRequest struct {
	Message string `json:"message" validate:"notblank,max=10"`
	Delta   int    `json:"delta" validate:"ne=0"`
}

func TestValidateStruct(t *testing.T) {
	require.NoError(t, ValidateStruct(&sampleRequest{Message: "hi", Delta: 1}))

	errs := GetValidationErrors(ValidateStruct(&sampleRequest{Message: "   ", Delta: 0}))
	require.Len(t, errs, 2)
	assert.Equal(t, "message", errs[0].Field)
	assert.Equal(t, "notblank", errs[0].Tag)
	assert.Equal(t, "Message is required", errs[0].Message)
	assert.Equal(t, "delta", errs[1].Field)
	assert.Equal(t, "Delta must not be 0", errs[1].Message)

	assert.Empty(t, GetValidationErrors(nil))
}
