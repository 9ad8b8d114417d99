package database

// Requêtes CQL fréquentes sur le keyspace utilisateurs. La table
// users_by_email sert d'index d'unicité : l'email y est la clé de partition.
const (
	StmtGetUserIDByEmail = "SELECT user_id FROM users_by_email WHERE email = ?"

	StmtGetUserByID = "SELECT name, email, password, reset_token, reset_expires FROM users WHERE user_id = ?"

	StmtInsertUser = `INSERT INTO users (user_id, name, email, password, reset_token, reset_expires, created_at)
		VALUES (?, ?, ?, ?, '', 0, ?)`

	// LWT : sert de contrainte d'unicité sur l'email
	StmtInsertUserByEmail = "INSERT INTO users_by_email (email, user_id) VALUES (?, ?) IF NOT EXISTS"

	StmtSetResetToken = "UPDATE users SET reset_token = ?, reset_expires = ? WHERE user_id = ?"

	StmtUpdatePassword = "UPDATE users SET password = ?, reset_token = '', reset_expires = 0 WHERE user_id = ?"

	StmtDeleteUser = "DELETE FROM users WHERE user_id = ?"

	StmtDeleteUserByEmail = "DELETE FROM users_by_email WHERE email = ?"
)
