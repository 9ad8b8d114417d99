package database

import (
	"context"
	"log"
	"time"

	"novamart_back_end/internal/config"

	"github.com/gocql/gocql"
	"github.com/redis/go-redis/v9"
)

// --- Variables Globales ---
var (
	Scylla      *gocql.Session
	Redis       *redis.Client
	RedisClient *redis.Client // Alias pour compatibilité
)

// --- Initialisation ---
func ConnectDatabases() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 1. Initialiser ScyllaDB (keyspace utilisateurs)
	connectScylla()

	// 2. Initialiser Redis
	connectRedis(ctx)

	log.Println("✅ Toutes les bases de données sont connectées")
}

// =============================================
// SCYLLA DB (keyspace utilisateurs)
// =============================================

func connectScylla() {
	cfg := config.C

	cluster := gocql.NewCluster(cfg.ScyllaHosts...)
	cluster.Keyspace = cfg.ScyllaKeyspace
	cluster.Consistency = gocql.Quorum
	cluster.Timeout = 5 * time.Second
	cluster.NumConns = 20
	cluster.ReconnectInterval = 1 * time.Second

	if cfg.ScyllaUsername != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.ScyllaUsername,
			Password: cfg.ScyllaPassword,
		}
	}

	// Politique de sélection d'hôtes optimisée
	cluster.PoolConfig.HostSelectionPolicy = gocql.TokenAwareHostPolicy(gocql.RoundRobinHostPolicy())

	session, err := cluster.CreateSession()
	if err != nil {
		log.Fatalf("❌ Échec initialisation ScyllaDB: %v", err)
	}

	// Note: Les tables doivent être créées manuellement via scripts/scylla_init.cql
	Scylla = session
	log.Printf("✅ Session ScyllaDB ouverte sur le keyspace '%s'", cfg.ScyllaKeyspace)
}

// GetUsersSession retourne la session pour le keyspace users
func GetUsersSession() (*gocql.Session, error) {
	if Scylla == nil {
		return nil, gocql.ErrNoConnections
	}
	return Scylla, nil
}

// CloseScylla ferme la session ScyllaDB
func CloseScylla() {
	if Scylla != nil {
		Scylla.Close()
		log.Println("🔌 Session ScyllaDB fermée")
	}
}

// =============================================
// REDIS
// =============================================
func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.C.RedisHost,
		Password: config.C.RedisPassword,
		DB:       0,
	})
	RedisClient = Redis // Alias pour compatibilité

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Fatal("❌ Erreur connexion Redis:", err)
	}
	log.Println("✅ Connecté à Redis")
}
