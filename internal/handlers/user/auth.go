package user

import (
	"log"
	"net/http"
	"time"

	"novamart_back_end/internal/database"
	"novamart_back_end/internal/models"
	"novamart_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ================== AUTH LOCALE ==================

// Message volontairement identique pour email inconnu et mot de passe faux :
// impossible d'énumérer les comptes via le formulaire de connexion.
const invalidCredentialsMsg = "Email ou mot de passe incorrect"

// POST /signup
func Signup(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}

	if input.Name == "" || input.Email == "" || input.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Tous les champs sont requis"})
		return
	}

	// Politique de mot de passe vérifiée avant toute écriture
	if err := utils.ValidatePassword(input.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur création utilisateur"})
		return
	}

	id := uuid.New().String()

	// L'insertion conditionnelle dans users_by_email sert de contrainte
	// d'unicité : si l'email est déjà pris, rien n'est écrit.
	applied, err := session.Query(database.StmtInsertUserByEmail, input.Email, id).
		MapScanCAS(make(map[string]interface{}))
	if err != nil {
		log.Printf("❌ Erreur réservation email %s: %v", input.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur création utilisateur"})
		return
	}
	if !applied {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Un compte avec cet email existe déjà"})
		return
	}

	if err := session.Query(database.StmtInsertUser,
		id, input.Name, input.Email, hashedPassword, time.Now()).Exec(); err != nil {
		log.Printf("❌ Erreur création utilisateur %s: %v", input.Email, err)
		// On libère l'email réservé pour ne pas bloquer une nouvelle tentative
		_ = session.Query(database.StmtDeleteUserByEmail, input.Email).Exec()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur création utilisateur"})
		return
	}

	user := models.User{ID: id, Name: input.Name, Email: input.Email}
	token, err := utils.GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur génération token"})
		return
	}

	log.Printf("✅ Nouvel utilisateur inscrit: %s", input.Email)
	c.JSON(http.StatusCreated, gin.H{
		"message": "Inscription réussie",
		"token":   token,
		"name":    user.Name,
		"email":   user.Email,
	})
}

// POST /login
func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Données invalides"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur connexion base de données"})
		return
	}

	var userID string
	if err := session.Query(database.StmtGetUserIDByEmail, input.Email).Scan(&userID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidCredentialsMsg})
		return
	}

	var name, email, password, resetToken string
	var resetExpires int64
	if err := session.Query(database.StmtGetUserByID, userID).
		Scan(&name, &email, &password, &resetToken, &resetExpires); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidCredentialsMsg})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, password)
	if err != nil || !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": invalidCredentialsMsg})
		return
	}

	token, err := utils.GenerateJWT(models.User{ID: userID, Name: name, Email: email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Erreur génération token"})
		return
	}

	log.Printf("✅ Connexion réussie pour %s", email)
	c.JSON(http.StatusOK, gin.H{
		"message": "Connexion réussie",
		"token":   token,
		"name":    name,
		"email":   email,
	})
}

// GET /me
func Me(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"userId": userID,
		"name":   name,
		"email":  email,
	})
}
