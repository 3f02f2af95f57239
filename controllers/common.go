package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// notModified writes the ETag validator and answers 304 when the
// client's cached copy is still current. The validator is set in both
// cases; RFC 7232 wants the 304 to repeat it.
func notModified(c *gin.Context, etag string) bool {
	c.Header("ETag", etag)
	if match := c.GetHeader("If-None-Match"); match != "" && match == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

// pagingParams translates ?page=&size= into a Mongo skip/limit pair.
// ok is false when the caller did not ask for pagination.
func pagingParams(c *gin.Context) (skip, limit int64, ok bool) {
	sizeStr := c.Query("size")
	if sizeStr == "" {
		return 0, 0, false
	}
	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil || size <= 0 {
		return 0, 0, false
	}
	page, err := strconv.ParseInt(c.Query("page"), 10, 64)
	if err != nil || page < 0 {
		page = 0
	}
	return page * size, size, true
}
