package models

type User struct {
	ID       string `json:"user_id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"-"`

	// Champs de réinitialisation de mot de passe (vides hors demande en cours)
	ResetToken   string `json:"-"`
	ResetExpires int64  `json:"-"`
}
