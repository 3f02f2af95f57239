package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func pagingContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestNotModified(t *testing.T) {
	gin.SetMode(gin.TestMode)
	const etag = `"abc123"`

	t.Run("fresh client gets the validator and the body path", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)

		assert.False(t, notModified(c, etag))
		assert.Equal(t, etag, w.Header().Get("ETag"))
	})

	t.Run("matching validator answers 304 and repeats the ETag", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.Header.Set("If-None-Match", etag)

		assert.True(t, notModified(c, etag))
		assert.Equal(t, 304, w.Code)
		assert.Equal(t, etag, w.Header().Get("ETag"))
	})

	t.Run("stale validator falls through", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest("GET", "/", nil)
		c.Request.Header.Set("If-None-Match", `"old"`)

		assert.False(t, notModified(c, etag))
		assert.Equal(t, etag, w.Header().Get("ETag"))
	})
}

func TestPagingParams(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantSkip  int64
		wantLimit int64
		wantOK    bool
	}{
		{"first page of two", "page=0&size=2", 0, 2, true},
		{"third page of ten", "page=2&size=10", 20, 10, true},
		{"size without page starts at zero", "size=5", 0, 5, true},
		{"no size means no pagination", "page=3", 0, 0, false},
		{"garbage size means no pagination", "page=0&size=abc", 0, 0, false},
		{"zero size means no pagination", "page=0&size=0", 0, 0, false},
		{"negative page clamps to zero", "page=-1&size=4", 0, 4, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skip, limit, ok := pagingParams(pagingContext(t, tt.query))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantSkip, skip)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}
