package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		page, size                int
		wantLimit, wantOff, wantP int
	}{
		{0, 0, DefaultPageSize, 0, 1},
		{1, 10, 10, 0, 1},
		{3, 10, 10, 20, 3},
		{2, 500, MaxPageSize, MaxPageSize, 2},
		{-4, -1, DefaultPageSize, 0, 1},
		{math.MaxInt, MaxPageSize, MaxPageSize, (MaxPage - 1) * MaxPageSize, MaxPage},
		{MaxPage + 1, 10, 10, (MaxPage - 1) * 10, MaxPage},
	}
	for _, tt := range tests {
		limit, off, page := Paginate(tt.page, tt.size)
		assert.Equal(t, tt.wantLimit, limit)
		assert.Equal(t, tt.wantOff, off)
		assert.Equal(t, tt.wantP, page)
		assert.GreaterOrEqual(t, off, 0)
		assert.LessOrEqual(t, off, math.MaxInt32)
	}
}

func TestParseIDParam(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/projects/:id", func(c *gin.Context) {
		id, ok := ParseIDParam(c, "id")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id})
	})

	for path, want := range map[string]int{
		"/projects/12":  http.StatusOK,
		"/projects/0":   http.StatusBadRequest,
		"/projects/-3":  http.StatusBadRequest,
		"/projects/abc": http.StatusBadRequest,
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}
