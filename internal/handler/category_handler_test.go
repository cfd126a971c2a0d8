package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"newsroom/internal/domain"
	"newsroom/internal/mocks"
)

func TestCategoryHandler_ListCategories(t *testing.T) {
	mockService := mocks.NewMockCategoryServiceInterface(t)
	mockService.EXPECT().ListCategories(mock.Anything).Return(domain.DefaultCategories)

	router := gin.New()
	router.GET("/api/categories", NewCategoryHandler(mockService).ListCategories)

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response []domain.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response, 6)
	assert.Equal(t, domain.Category{ID: "1", Name: "All", Slug: "all"}, response[0])
	assert.Equal(t, "Science", response[5].Name)
}
