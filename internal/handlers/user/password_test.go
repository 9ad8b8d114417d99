package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoredResetTokenValid(t *testing.T) {
	const now = int64(1_000_000)

	tests := []struct {
		name      string
		stored    string
		presented string
		expires   int64
		valid     bool
	}{
		{name: "token stocké et non expiré", stored: "tok-1", presented: "tok-1", expires: now + 60, valid: true},
		{name: "dernière seconde de validité", stored: "tok-1", presented: "tok-1", expires: now, valid: true},
		{name: "token expiré", stored: "tok-1", presented: "tok-1", expires: now - 1, valid: false},
		{name: "token déjà consommé", stored: "", presented: "tok-1", expires: now + 60, valid: false},
		{name: "token différent du stocké", stored: "tok-1", presented: "tok-2", expires: now + 60, valid: false},
		{name: "aucune demande en cours", stored: "", presented: "", expires: 0, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, storedResetTokenValid(tt.stored, tt.presented, tt.expires, now))
		})
	}
}

// Un token consommé par un premier reset ne doit pas en permettre un second :
// la réécriture du mot de passe remet le token stocké à vide.
func TestStoredResetTokenSingleUse(t *testing.T) {
	const now = int64(1_000_000)

	stored := "tok-1"
	assert.True(t, storedResetTokenValid(stored, "tok-1", now+60, now))

	// Ce que StmtUpdatePassword écrit après un reset réussi
	stored = ""
	assert.False(t, storedResetTokenValid(stored, "tok-1", now+60, now))
}
