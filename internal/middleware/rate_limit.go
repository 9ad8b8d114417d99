package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"novamart_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

const (
	// Limites par endpoint
	LoginMaxAttempts          = 5
	SignupMaxAttempts         = 3
	ForgotPasswordMaxAttempts = 3

	// Durées de cooldown
	LoginCooldown          = 15 * time.Minute
	SignupCooldown         = 30 * time.Minute
	ForgotPasswordCooldown = 10 * time.Minute
)

// peekEmail lit l'email dans le body sans le consommer pour le handler.
func peekEmail(c *gin.Context) string {
	bodyBytes, _ := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

	var input struct {
		Email string `json:"email"`
	}
	if err := json.Unmarshal(bodyBytes, &input); err != nil {
		return ""
	}
	return input.Email
}

func inCooldown(ctx context.Context, cooldownKey string, c *gin.Context) bool {
	if database.Redis.Exists(ctx, cooldownKey).Val() > 0 {
		ttl := database.Redis.TTL(ctx, cooldownKey).Val()
		c.JSON(http.StatusTooManyRequests, gin.H{
			"message":     fmt.Sprintf("Trop de tentatives. Réessayez dans %d minutes", int(ttl.Minutes())+1),
			"retry_after": int(ttl.Seconds()),
		})
		c.Abort()
		return true
	}
	return false
}

// LoginRateLimit limite les tentatives de connexion par email
func LoginRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := peekEmail(c)
		if email == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "login_attempts:" + email
		cooldownKey := "login_cooldown:" + email

		if inCooldown(ctx, cooldownKey, c) {
			return
		}

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= LoginMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", LoginCooldown)
			database.Redis.Del(ctx, key)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":     fmt.Sprintf("Trop de tentatives échouées. Compte bloqué pendant %d minutes", int(LoginCooldown.Minutes())),
				"retry_after": int(LoginCooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		// Échec → on incrémente ; succès → on repart de zéro
		if c.Writer.Status() == http.StatusBadRequest {
			database.Redis.Incr(ctx, key)
			database.Redis.Expire(ctx, key, LoginCooldown)
		} else if c.Writer.Status() == http.StatusOK {
			database.Redis.Del(ctx, key)
			database.Redis.Del(ctx, cooldownKey)
		}
	}
}

// SignupRateLimit limite les inscriptions par IP
func SignupRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background()
		ip := c.ClientIP()
		key := "signup_attempts:" + ip
		cooldownKey := "signup_cooldown:" + ip

		if inCooldown(ctx, cooldownKey, c) {
			return
		}

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= SignupMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", SignupCooldown)
			database.Redis.Del(ctx, key)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":     fmt.Sprintf("Trop d'inscriptions. Réessayez dans %d minutes", int(SignupCooldown.Minutes())),
				"retry_after": int(SignupCooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		if c.Writer.Status() == http.StatusCreated {
			database.Redis.Incr(ctx, key)
			database.Redis.Expire(ctx, key, SignupCooldown)
		}
	}
}

// ForgotPasswordRateLimit limite les demandes de réinitialisation par email
func ForgotPasswordRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := peekEmail(c)
		if email == "" {
			c.Next()
			return
		}

		ctx := context.Background()
		key := "forgot_password_attempts:" + email
		cooldownKey := "forgot_password_cooldown:" + email

		if inCooldown(ctx, cooldownKey, c) {
			return
		}

		attempts, _ := database.Redis.Get(ctx, key).Int()
		if attempts >= ForgotPasswordMaxAttempts {
			database.Redis.Set(ctx, cooldownKey, "1", ForgotPasswordCooldown)
			database.Redis.Del(ctx, key)

			c.JSON(http.StatusTooManyRequests, gin.H{
				"message":     fmt.Sprintf("Trop de demandes. Réessayez dans %d minutes", int(ForgotPasswordCooldown.Minutes())),
				"retry_after": int(ForgotPasswordCooldown.Seconds()),
			})
			c.Abort()
			return
		}

		c.Next()

		// Chaque demande traitée compte, même si l'email est inconnu
		if c.Writer.Status() == http.StatusOK || c.Writer.Status() == http.StatusNotFound {
			database.Redis.Incr(ctx, key)
			database.Redis.Expire(ctx, key, ForgotPasswordCooldown)
		}
	}
}
