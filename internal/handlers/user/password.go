package user

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"novamart_back_end/internal/cache"
	"novamart_back_end/internal/config"
	"novamart_back_end/internal/database"
	"novamart_back_end/internal/utils"

	"github.com/gin-gonic/gin"
)

// ================== FORGOT PASSWORD (demande de réinitialisation) ==================

// POST /forgot-password
func ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Email requis"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	var userID string
	if err := session.Query(database.StmtGetUserIDByEmail, input.Email).Scan(&userID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Aucun compte avec cet email"})
		return
	}

	var name, email, password, storedToken string
	var storedExpires int64
	if err := session.Query(database.StmtGetUserByID, userID).
		Scan(&name, &email, &password, &storedToken, &storedExpires); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la génération du lien"})
		return
	}

	resetToken, err := utils.GenerateResetToken(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la génération du lien"})
		return
	}

	// Token + expiration stockés sur la ligne utilisateur : un nouveau lien
	// écrase le précédent, un lien consommé est effacé (usage unique)
	expires := time.Now().Add(config.C.ResetTokenTTL).Unix()
	if err := session.Query(database.StmtSetResetToken, resetToken, expires, userID).Exec(); err != nil {
		log.Printf("❌ Erreur sauvegarde token reset: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la génération du lien"})
		return
	}

	// L'envoi se fait en arrière-plan : un échec SMTP est loggé, pas exposé
	go sendPasswordResetEmail(input.Email, name, resetToken)

	c.JSON(http.StatusOK, gin.H{"message": "Un lien de réinitialisation a été envoyé"})
}

// POST /reset-password
func ResetPassword(c *gin.Context) {
	var input struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}

	if err := utils.ValidatePassword(input.NewPassword); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	userID, err := utils.ParseResetToken(input.Token)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token invalide ou expiré"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	var name, email, password, storedToken string
	var storedExpires int64
	if err := session.Query(database.StmtGetUserByID, userID).
		Scan(&name, &email, &password, &storedToken, &storedExpires); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token invalide ou expiré"})
		return
	}

	if !storedResetTokenValid(storedToken, input.Token, storedExpires, time.Now().Unix()) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Token invalide ou expiré"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la réinitialisation"})
		return
	}

	// Remplace le hash et efface les champs de reset en une écriture
	if err := session.Query(database.StmtUpdatePassword, hashedPassword, userID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la mise à jour"})
		return
	}

	// Les tokens de session émis avant le reset ne sont plus acceptés
	cache.BumpTokenFloor(userID)

	log.Printf("✅ Mot de passe réinitialisé pour %s", email)
	c.JSON(http.StatusOK, gin.H{"message": "Mot de passe réinitialisé avec succès"})
}

// storedResetTokenValid décide si un reset peut consommer le token présenté.
// Usage unique : le token doit être exactement celui encore stocké sur la
// ligne utilisateur (un reset réussi le remet à vide), et l'expiration
// stockée fait foi même si la signature du token est encore valable.
func storedResetTokenValid(stored, presented string, storedExpires, now int64) bool {
	if stored == "" || stored != presented {
		return false
	}
	return now <= storedExpires
}

// ================== UTILITAIRES ==================

func sendPasswordResetEmail(email, name, token string) {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", config.C.FrontendURL, token)

	subject := "Réinitialisation de votre mot de passe NovaMart"
	htmlBody := utils.PasswordResetHTML(name, resetLink)

	if err := utils.SendEmail(email, subject, htmlBody); err != nil {
		log.Printf("❌ Erreur envoi email reset à %s: %v", email, err)
	} else {
		log.Printf("✅ Email de réinitialisation envoyé à %s", email)
	}
}
