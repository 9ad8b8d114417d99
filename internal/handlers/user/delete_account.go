package user

import (
	"context"
	"log"
	"net/http"
	"time"

	"novamart_back_end/internal/cache"
	"novamart_back_end/internal/database"

	"github.com/gin-gonic/gin"
)

// DeleteAccount supprime le compte authentifié et toutes ses données :
// ligne utilisateur, index email, panier, et invalide les tokens en cours.
//
// DELETE /delete-account
func DeleteAccount(c *gin.Context) {
	userID := c.GetString("user_id")

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	var name, email, password, resetToken string
	var resetExpires int64
	if err := session.Query(database.StmtGetUserByID, userID).
		Scan(&name, &email, &password, &resetToken, &resetExpires); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Utilisateur introuvable"})
		return
	}

	log.Printf("🗑️ Début de la suppression du compte: %s (%s)", email, userID)

	// 1. Panier
	if err := CartSync.Clear(context.Background(), userID); err != nil {
		log.Printf("⚠️ Erreur suppression panier: %v", err)
	} else {
		log.Printf("✅ Panier supprimé")
	}

	// 2. Index email
	if err := session.Query(database.StmtDeleteUserByEmail, email).Exec(); err != nil {
		log.Printf("⚠️ Erreur suppression users_by_email: %v", err)
	} else {
		log.Printf("✅ Index users_by_email supprimé")
	}

	// 3. Ligne utilisateur
	if err := session.Query(database.StmtDeleteUser, userID).Exec(); err != nil {
		log.Printf("❌ Erreur suppression utilisateur: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur lors de la suppression du compte"})
		return
	}

	// 4. Les tokens déjà émis pour ce compte deviennent inutilisables
	cache.BumpTokenFloor(userID)

	log.Printf("✅ Utilisateur %s (%s) complètement supprimé", email, userID)

	c.JSON(http.StatusOK, gin.H{
		"message":    "Votre compte et toutes vos données ont été supprimés définitivement",
		"deleted_at": time.Now().Format(time.RFC3339),
	})
}
