package utils

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"freelahub/internal/pkg/response"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 50

	// MaxPage keeps the offset within int32 for any page size.
	MaxPage = math.MaxInt32 / MaxPageSize
)

// ParseIDParam reads a positive int64 path parameter. On failure it writes
// a 400 and returns false.
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name)
		return 0, false
	}
	return id, true
}

// Paginate normalizes a 1-based page and page size into limit and offset.
func Paginate(page, size int) (limit, offset, normalizedPage int) {
	switch {
	case page < 1:
		page = 1
	case page > MaxPage:
		page = MaxPage
	}
	switch {
	case size <= 0:
		size = DefaultPageSize
	case size > MaxPageSize:
		size = MaxPageSize
	}
	return size, (page - 1) * size, page
}
