package utils

import (
	"testing"
	"time"

	"novamart_back_end/internal/config"
	"novamart_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateJWTRoundTrip(t *testing.T) {
	config.C.JWTSecret = "secret-de-test"
	config.C.TokenTTL = 2 * time.Hour

	user := models.User{ID: "u-42", Email: "ada@x.com"}
	tokenString, err := GenerateJWT(user)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("secret-de-test"), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "u-42", claims["user_id"])
	assert.Equal(t, "ada@x.com", claims["email"])

	exp, _ := claims["exp"].(float64)
	iat, _ := claims["iat"].(float64)
	assert.Equal(t, 2*time.Hour, time.Duration(exp-iat)*time.Second)
}

// Deux émissions pour le même utilisateur restent valides indépendamment.
func TestGenerateJWTIndependentTokens(t *testing.T) {
	config.C.JWTSecret = "secret-de-test"
	config.C.TokenTTL = time.Hour

	user := models.User{ID: "u-42", Email: "ada@x.com"}
	t1, err := GenerateJWT(user)
	require.NoError(t, err)
	t2, err := GenerateJWT(user)
	require.NoError(t, err)

	for _, ts := range []string{t1, t2} {
		token, err := jwt.Parse(ts, func(*jwt.Token) (interface{}, error) {
			return []byte("secret-de-test"), nil
		})
		require.NoError(t, err)
		assert.True(t, token.Valid)
	}
}

func TestResetTokenRoundTrip(t *testing.T) {
	config.C.JWTSecret = "secret-de-test"
	config.C.ResetTokenTTL = 15 * time.Minute

	token, err := GenerateResetToken("u-7")
	require.NoError(t, err)

	userID, err := ParseResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u-7", userID)
}

func TestResetTokenExpired(t *testing.T) {
	config.C.JWTSecret = "secret-de-test"
	config.C.ResetTokenTTL = -time.Minute

	token, err := GenerateResetToken("u-7")
	require.NoError(t, err)

	_, err = ParseResetToken(token)
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

// Un bearer token de session ne doit pas passer pour un token de reset.
func TestResetTokenRejectsSessionToken(t *testing.T) {
	config.C.JWTSecret = "secret-de-test"
	config.C.TokenTTL = time.Hour

	sessionToken, err := GenerateJWT(models.User{ID: "u-7", Email: "a@b.c"})
	require.NoError(t, err)

	_, err = ParseResetToken(sessionToken)
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestGenerateJWTWrongSecretRejected(t *testing.T) {
	config.C.JWTSecret = "secret-de-test"
	config.C.TokenTTL = time.Hour

	tokenString, err := GenerateJWT(models.User{ID: "u-1", Email: "a@b.c"})
	require.NoError(t, err)

	_, err = jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return []byte("mauvais-secret"), nil
	})
	assert.Error(t, err)
}
