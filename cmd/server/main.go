package main

import (
	"context"
	"log"

	"novamart_back_end/internal/cart"
	"novamart_back_end/internal/config"
	"novamart_back_end/internal/database"
	"novamart_back_end/internal/handlers/payement"
	"novamart_back_end/internal/handlers/user"
	"novamart_back_end/internal/middleware"
	"novamart_back_end/internal/routes"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v83"
)

func main() {
	config.Load()

	stripe.Key = config.C.StripeSecretKey
	if stripe.Key == "" {
		log.Println("⚠️ Clé Stripe manquante — endpoints de paiement indisponibles")
	} else {
		log.Println("✅ Stripe initialisé")
	}

	database.ConnectDatabases()

	// ✅ Pré-chauffer le cache Redis
	warmupRedisCache()

	// Synchroniseur de paniers partagé par les handlers panier et paiement
	sync := cart.NewSynchronizer(
		cart.NewRedisStore(database.Redis),
		cart.PolicyFromString(config.C.MissingQuantity),
	)
	user.CartSync = sync
	payement.CartSync = sync
	payement.Consumed = payement.NewRedisConsumedIntents(database.Redis)

	r := gin.Default()
	r.Use(middleware.CORS())
	routes.RegisterRoutes(r)

	log.Println("🚀 Serveur NovaMart lancé sur le port", config.C.Port)
	r.Run(":" + config.C.Port)
}

// warmupRedisCache pré-chauffe le cache Redis pour éviter la latence du premier appel
func warmupRedisCache() {
	ctx := context.Background()
	if err := database.Redis.Ping(ctx).Err(); err == nil {
		log.Println("✅ Cache Redis pré-chauffé")
	}
}
