package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc123", bearerToken("Bearer abc123"))
	assert.Equal(t, "abc123", bearerToken("bearer abc123"), "scheme match is case-insensitive")
	assert.Empty(t, bearerToken(""))
	assert.Empty(t, bearerToken("Bearer"))
	assert.Empty(t, bearerToken("Bearer "))
	assert.Empty(t, bearerToken("Basic abc123"))
}
