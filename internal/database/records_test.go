package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSearchFilter(t *testing.T) {
	assert.Empty(t, SearchFilter("   ", "name"))

	f := SearchFilter("a.b+", "name", "email")
	or, ok := f["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 2)

	first := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, `a\.b\+`, first.Pattern)
	assert.Equal(t, "i", first.Options)
}
