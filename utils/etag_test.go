package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGenerateETag(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.Now()

	etag := GenerateETag(id, at)

	assert.True(t, strings.HasPrefix(etag, `"`))
	assert.True(t, strings.HasSuffix(etag, `"`))
	assert.Equal(t, etag, GenerateETag(id, at), "same inputs, same tag")
	assert.NotEqual(t, etag, GenerateETag(id, at.Add(time.Second)), "update time changes the tag")
	assert.NotEqual(t, etag, GenerateETag(primitive.NewObjectID(), at), "id changes the tag")
}
