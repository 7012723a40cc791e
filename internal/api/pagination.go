package api

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 20
	maxLimit     = 50
)

var errBadPagination = errors.New("invalid pagination parameters")

// parsePagination reads limit/offset query params. Non-numeric or
// non-positive limits are rejected; oversized limits are clamped to 50
// and negative offsets to 0.
func parsePagination(c *gin.Context) (limit, offset int, err error) {
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		return 0, 0, errBadPagination
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		return 0, 0, errBadPagination
	}

	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset, nil
}
