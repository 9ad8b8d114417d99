package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"novamart_back_end/internal/cache"
	"novamart_back_end/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired vérifie le bearer token et place user_id / email dans le
// contexte Gin. Pas de token → 401 ; token invalide ou expiré → 403.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Token manquant"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Format Authorization invalide"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("méthode de signature inattendue: %v", token.Header["alg"])
			}
			return []byte(config.C.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			// jwt.Parse vérifie déjà la signature et l'expiration
			c.JSON(http.StatusForbidden, gin.H{"message": "Token invalide"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"message": "Token invalide"})
			c.Abort()
			return
		}

		// Un token de reset porte une claim "purpose" : il ouvre le
		// formulaire de réinitialisation, jamais les routes protégées
		if _, hasPurpose := claims["purpose"]; hasPurpose {
			c.JSON(http.StatusForbidden, gin.H{"message": "Token invalide"})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			c.JSON(http.StatusForbidden, gin.H{"message": "Token invalide"})
			c.Abort()
			return
		}

		// Tokens émis avant le dernier reset/suppression → refusés
		if iat, ok := claims["iat"].(float64); ok {
			if cache.InvalidatedByFloor(int64(iat), cache.TokenFloor(userID)) {
				c.JSON(http.StatusForbidden, gin.H{"message": "Token invalide"})
				c.Abort()
				return
			}
		}

		c.Set("user_id", userID)
		if email, ok := claims["email"].(string); ok {
			c.Set("email", email)
		}

		c.Next()
	}
}
