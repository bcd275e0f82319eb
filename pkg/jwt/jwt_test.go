package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateParse(t *testing.T) {
	tok, err := Generate("secreto", "u-1", "tienda-1", "bizflow", 5)
	require.NoError(t, err)

	userID, accountID, err := Parse("secreto", tok)
	require.NoError(t, err)
	assert.Equal(t, "u-1", userID)
	assert.Equal(t, "tienda-1", accountID)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	tok, err := Generate("secreto", "u-1", "tienda-1", "bizflow", 5)
	require.NoError(t, err)
	_, _, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate("secreto", "u-1", "tienda-1", "bizflow", -1)
	require.NoError(t, err)
	_, _, err = Parse("secreto", tok)
	assert.Error(t, err)
}

func TestParse_SinCuenta(t *testing.T) {
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Minute))},
		UserID:           "u-1",
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secreto"))
	require.NoError(t, err)
	_, _, err = Parse("secreto", tok)
	assert.Error(t, err)
}

func TestGenerate_Validaciones(t *testing.T) {
	_, err := Generate("", "u", "a", "i", 1)
	assert.Error(t, err)
	_, err = Generate("s", "u", "", "i", 1)
	assert.Error(t, err)
}
