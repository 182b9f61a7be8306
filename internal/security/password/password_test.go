package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("clave-segura")
	require.NoError(t, err)
	assert.True(t, Verify("clave-segura", hash))
	assert.False(t, Verify("otra-cosa", hash))
}

func TestHashRejectsShort(t *testing.T) {
	_, err := Hash("abc")
	assert.ErrorIs(t, err, ErrTooShort)
}

func TestVerifyBadHash(t *testing.T) {
	assert.False(t, Verify("clave-segura", "no-es-un-hash"))
}
