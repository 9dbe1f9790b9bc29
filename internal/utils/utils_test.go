// internal/utils/utils_test.go
package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func contextFor(target string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestGetPaginationParams(t *testing.T) {
	tests := []struct {
		query string
		want  PaginationParams
	}{
		{"", PaginationParams{Page: 1, Limit: DefaultPageSize}},
		{"?page=3&limit=20", PaginationParams{Page: 3, Limit: 20}},
		{"?page=0&limit=0", PaginationParams{Page: 1, Limit: DefaultPageSize}},
		{"?page=abc&limit=-5", PaginationParams{Page: 1, Limit: DefaultPageSize}},
		{"?limit=1000", PaginationParams{Page: 1, Limit: MaxPageSize}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := contextFor("/api/products/search" + tt.query)
			assert.Equal(t, tt.want, GetPaginationParams(c))
		})
	}
}

func TestBounds(t *testing.T) {
	p := PaginationParams{Page: 2, Limit: 9}
	start, end := p.Bounds(20)
	assert.Equal(t, 9, start)
	assert.Equal(t, 18, end)

	start, end = PaginationParams{Page: 3, Limit: 9}.Bounds(20)
	assert.Equal(t, 18, start)
	assert.Equal(t, 20, end)

	start, end = PaginationParams{Page: 5, Limit: 9}.Bounds(20)
	assert.Equal(t, 20, start)
	assert.Equal(t, 20, end)

	start, end = PaginationParams{Page: 1, Limit: 9}.Bounds(0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)
}

func TestBoundsHugePage(t *testing.T) {
	for _, p := range []PaginationParams{
		{Page: 1024819115206086202, Limit: 9},
		{Page: math.MaxInt, Limit: MaxPageSize},
		{Page: 2, Limit: math.MaxInt},
	} {
		start, end := p.Bounds(20)
		assert.Equal(t, 20, start, "page %d limit %d", p.Page, p.Limit)
		assert.Equal(t, 20, end, "page %d limit %d", p.Page, p.Limit)
	}

	start, end := PaginationParams{Page: 1, Limit: math.MaxInt}.Bounds(20)
	assert.Equal(t, 0, start)
	assert.Equal(t, 20, end)
}

func TestPaginatedResponse(t *testing.T) {
	c, w := contextFor("/")

	result := CreatePaginationResult([]int{1, 2}, 11, PaginationParams{Page: 1, Limit: 9})
	PaginatedResponse(c, result)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "11", w.Header().Get("X-Total-Count"))
	assert.Equal(t, "2", w.Header().Get("X-Total-Pages"))
	assert.JSONEq(t, `{"data":[1,2],"pagination":{"page":1,"limit":9,"total":11,"total_pages":2}}`, w.Body.String())
}

func TestErrorResponseShape(t *testing.T) {
	c, w := contextFor("/")

	ErrorResponse(c, http.StatusNotFound, "Product not found", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Product not found"}`, w.Body.String())
	assert.True(t, c.IsAborted())
}

type createRequest struct {
	Name     string `validate:"required,max=10"`
	Category string `validate:"label"`
}

func TestValidationErrors(t *testing.T) {
	err := ValidateStruct(createRequest{Category: "bad\x00label"})
	require.Error(t, err)

	details := GetValidationErrors(err)
	require.Len(t, details, 2)
	assert.Equal(t, ValidationError{Field: "name", Tag: "required", Message: "Name is required"}, details[0])
	assert.Equal(t, "category", details[1].Field)
	assert.Equal(t, "label", details[1].Tag)

	assert.NoError(t, ValidateStruct(createRequest{Name: "Helmet", Category: "Head Protection"}))
}

func TestAdminToken(t *testing.T) {
	token, err := GenerateAdminToken("s3cret", "editor", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateAdminToken("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, "editor", claims.Subject)
	assert.Equal(t, "admin", claims.Role)

	_, err = ValidateAdminToken("other", token)
	assert.Error(t, err)

	expired, err := GenerateAdminToken("s3cret", "editor", -time.Minute)
	require.NoError(t, err)
	_, err = ValidateAdminToken("s3cret", expired)
	assert.Error(t, err)

	_, err = GenerateAdminToken("", "editor", time.Hour)
	assert.Error(t, err)
}
