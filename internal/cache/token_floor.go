package cache

import (
	"context"
	"strconv"
	"time"

	"novamart_back_end/internal/config"
	"novamart_back_end/internal/database"
)

// Plancher de validité des tokens : il n'y a pas de liste de révocation,
// mais un timestamp par utilisateur. Tout token émis (claim iat) avant ce
// plancher est refusé par le middleware. Le plancher est posé lors d'un
// reset de mot de passe ou d'une suppression de compte.

func tokenFloorKey(userID string) string {
	return "token_floor:" + userID
}

// BumpTokenFloor invalide tous les tokens émis jusqu'à maintenant.
// La clé vit aussi longtemps qu'un token peut vivre ; au-delà, les anciens
// tokens sont de toute façon expirés.
func BumpTokenFloor(userID string) {
	if database.Redis == nil {
		return
	}
	ctx := context.Background()
	database.Redis.Set(ctx, tokenFloorKey(userID), time.Now().Unix(), config.C.TokenTTL)
}

// InvalidatedByFloor dit si un token émis à iat tombe sous le plancher.
// L'égalité compte : le plancher est posé à la seconde du reset, et un token
// émis dans cette même seconde peut lui être antérieur.
func InvalidatedByFloor(iat, floor int64) bool {
	return floor > 0 && iat <= floor
}

// TokenFloor retourne le plancher de l'utilisateur (0 si aucun).
func TokenFloor(userID string) int64 {
	if database.Redis == nil {
		return 0
	}
	ctx := context.Background()
	val, err := database.Redis.Get(ctx, tokenFloorKey(userID)).Result()
	if err != nil {
		return 0
	}
	floor, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0
	}
	return floor
}
