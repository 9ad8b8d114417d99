package utils

import (
	"errors"
	"time"

	"novamart_back_end/internal/config"
	"novamart_back_end/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// GenerateJWT émet un bearer token signé HS256 pour l'utilisateur.
// L'expiration est la seule invalidation côté token ; la claim iat permet au
// middleware de rejeter les tokens émis avant le dernier reset/suppression.
func GenerateJWT(user models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"iat":     now.Unix(),
		"exp":     now.Add(config.C.TokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.C.JWTSecret))
}

// ================== TOKEN DE RÉINITIALISATION ==================

var ErrInvalidResetToken = errors.New("token de réinitialisation invalide ou expiré")

// GenerateResetToken émet le token à usage unique du lien de réinitialisation.
// Signé et à courte durée de vie ; il est aussi stocké sur la ligne
// utilisateur pour garantir l'usage unique.
func GenerateResetToken(userID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": userID,
		"purpose": "password_reset",
		"iat":     now.Unix(),
		"exp":     now.Add(config.C.ResetTokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.C.JWTSecret))
}

// ParseResetToken vérifie signature, expiration et usage, puis retourne
// l'identifiant utilisateur porté par le token.
func ParseResetToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidResetToken
		}
		return []byte(config.C.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidResetToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidResetToken
	}
	if purpose, _ := claims["purpose"].(string); purpose != "password_reset" {
		return "", ErrInvalidResetToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", ErrInvalidResetToken
	}
	return userID, nil
}
