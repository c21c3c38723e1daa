package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	jwtSecret = []byte("secret-de-test")
	jwtSecretOnce.Do(func() {})
}

func TestGenererEtValiderToken(t *testing.T) {
	token, err := GenererToken(42, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValiderToken(token)
	require.NoError(t, err)
	assert.EqualValues(t, 42, claims.UserID)
	assert.True(t, claims.IsAdmin)
}

func TestValiderTokenInvalide(t *testing.T) {
	_, err := ValiderToken("pas.un.token")
	assert.Error(t, err)
}

func TestValiderTokenTrafique(t *testing.T) {
	token, err := GenererToken(7, false)
	require.NoError(t, err)

	_, err = ValiderToken(token + "x")
	assert.Error(t, err)
}
