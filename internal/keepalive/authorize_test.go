package keepalive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthorize_Order(t *testing.T) {
	a := NewAuthorizer("tok", nil)

	v, _ := a.Authorize("", "")
	assert.Equal(t, AuthMissingToken, v)

	v, _ = a.Authorize("Basic abc", "")
	assert.Equal(t, AuthMissingToken, v)

	v, provided := a.Authorize("Bearer nope", "")
	assert.Equal(t, AuthInvalidToken, v)
	assert.Equal(t, "nope", provided)

	v, _ = a.Authorize("Bearer tok", "")
	assert.Equal(t, AuthOK, v)

	// Bearer case-insensitive y con espacios alrededor del token.
	v, _ = a.Authorize("bearer  tok ", "")
	assert.Equal(t, AuthOK, v)
}

func TestAuthorize_MisconfiguredBeforeCompare(t *testing.T) {
	a := NewAuthorizer("", nil)
	v, _ := a.Authorize("Bearer anything", "")
	assert.Equal(t, AuthMisconfigured, v)
}

func TestAuthorize_Allowlist(t *testing.T) {
	a := NewAuthorizer("tok", []string{" 1.2.3.4 ", "", "10.0.0.1"})

	v, _ := a.Authorize("Bearer tok", "1.2.3.4")
	assert.Equal(t, AuthOK, v)

	v, _ = a.Authorize("Bearer tok", "5.6.7.8")
	assert.Equal(t, AuthIPDenied, v)

	// Sin IP con allowlist configurada: denegado.
	v, _ = a.Authorize("Bearer tok", "")
	assert.Equal(t, AuthIPDenied, v)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "", MaskToken(""))
	m := MaskToken("super-secret")
	assert.Len(t, m, 12)
	assert.NotContains(t, m, "super")
	assert.Equal(t, m, MaskToken("super-secret"))
	assert.NotEqual(t, m, MaskToken("other-secret"))
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "", ClientIP(""))
	assert.Equal(t, "1.2.3.4", ClientIP("1.2.3.4"))
	assert.Equal(t, "1.2.3.4", ClientIP(" 1.2.3.4 , 10.0.0.1"))
}
