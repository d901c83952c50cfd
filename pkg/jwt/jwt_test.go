package jwt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse_RoundTrip(t *testing.T) {
	token, err := Generate("s3cret", 42, "admin", "catalogo-api", 5)
	require.NoError(t, err)

	userID, role, err := Parse("s3cret", token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "admin", role)
}

func TestParse_WrongSecret(t *testing.T) {
	token, err := Generate("s3cret", 42, "admin", "catalogo-api", 5)
	require.NoError(t, err)

	_, _, err = Parse("otro", token)
	assert.Error(t, err, "una firma con otro secret debe rechazarse")
}

func TestParse_Expired(t *testing.T) {
	token, err := Generate("s3cret", 42, "viewer", "catalogo-api", -1)
	require.NoError(t, err)

	_, _, err = Parse("s3cret", token)
	assert.Error(t, err, "un token vencido debe rechazarse")
}

func TestEmptySecret(t *testing.T) {
	_, err := Generate("", 1, "admin", "x", 5)
	assert.Error(t, err)
	_, _, err = Parse("", "abc")
	assert.Error(t, err)
}
