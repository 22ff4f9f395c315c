package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientTokenRoundTrip(t *testing.T) {
	secret := []byte("secret")

	tok, err := GenerateClientToken("client-1", secret, time.Hour)
	require.NoError(t, err)

	id, err := VerifyClientToken(tok, secret)
	require.NoError(t, err)
	assert.Equal(t, "client-1", id)
}

func TestClientTokenWrongSecret(t *testing.T) {
	tok, err := GenerateClientToken("client-1", []byte("a"), time.Hour)
	require.NoError(t, err)

	_, err = VerifyClientToken(tok, []byte("b"))
	assert.Error(t, err)
}

func TestClientTokenExpired(t *testing.T) {
	tok, err := GenerateClientToken("client-1", []byte("a"), -time.Minute)
	require.NoError(t, err)

	_, err = VerifyClientToken(tok, []byte("a"))
	assert.Error(t, err)
}
