package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestInternalTokenAuth(t *testing.T) {
	router := gin.New()
	router.GET("/metrics", InternalTokenAuth("scrape-token"), func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/open", InternalTokenAuth(""), func(c *gin.Context) { c.Status(http.StatusOK) })

	tests := []struct {
		name   string
		path   string
		header string
		want   int
	}{
		{"valid", "/metrics", "Bearer scrape-token", http.StatusOK},
		{"missing", "/metrics", "", http.StatusUnauthorized},
		{"wrong scheme", "/metrics", "Basic scrape-token", http.StatusUnauthorized},
		{"wrong token", "/metrics", "Bearer nope", http.StatusForbidden},
		{"not configured", "/open", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}
