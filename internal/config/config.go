package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config regroupe toute la configuration du serveur, chargée depuis
// l'environnement (et .env en développement).
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Auth
	JWTSecret     string        `env:"JWT_SECRET" envDefault:"super_secret"`
	TokenTTL      time.Duration `env:"TOKEN_TTL" envDefault:"24h"`
	ResetTokenTTL time.Duration `env:"RESET_TOKEN_TTL" envDefault:"15m"`

	// CORS : origines exactes + motifs regex pour les déploiements preview
	FrontendURL    string   `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173,http://localhost:3000"`
	OriginPatterns []string `env:"ORIGIN_PATTERNS" envSeparator:","`

	// ScyllaDB (keyspace utilisateurs)
	ScyllaHosts    []string `env:"SCYLLA_HOSTS" envSeparator:"," envDefault:"127.0.0.1"`
	ScyllaKeyspace string   `env:"SCYLLA_KEYSPACE" envDefault:"novamart_users"`
	ScyllaUsername string   `env:"SCYLLA_USERNAME"`
	ScyllaPassword string   `env:"SCYLLA_PASSWORD"`

	// Redis (paniers, rate limiting, invalidation de tokens)
	RedisHost     string `env:"REDIS_HOST" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	// SMTP
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	EmailFrom    string `env:"EMAIL_FROM" envDefault:"noreply@novamart.shop"`

	// Stripe
	StripeSecretKey string `env:"STRIPE_SECRET_KEY"`

	// Politique quand le client omet la quantité sur POST /cart :
	// "reject" (400) ou "default_one" (quantité 1)
	MissingQuantity string `env:"CART_MISSING_QUANTITY" envDefault:"reject"`
}

// C est la configuration globale du processus, remplie par Load().
var C Config

func Load() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  Aucun fichier .env trouvé — on continue avec les variables d'environnement du système")
	} else {
		log.Println("✅ Fichier .env chargé avec succès")
	}

	if err := env.Parse(&C); err != nil {
		log.Fatalf("❌ Configuration invalide: %v", err)
	}
}
