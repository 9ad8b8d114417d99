package middleware

import (
	"log"
	"regexp"
	"time"

	"novamart_back_end/internal/config"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// OriginRules est la configuration CORS injectée : origines exactes du front
// plus motifs regex pour les hostnames des déploiements preview.
type OriginRules struct {
	Exact    []string
	Patterns []*regexp.Regexp
}

// NewOriginRules compile les motifs ; un motif invalide est ignoré (et loggé)
// plutôt que de faire tomber le serveur.
func NewOriginRules(exact, patterns []string) OriginRules {
	rules := OriginRules{Exact: exact}
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			log.Printf("⚠️ Motif d'origine CORS invalide ignoré: %q (%v)", p, err)
			continue
		}
		rules.Patterns = append(rules.Patterns, re)
	}
	return rules
}

// IsOriginAllowed décide si une origine cross-origin est acceptée.
func IsOriginAllowed(origin string, rules OriginRules) bool {
	if origin == "" {
		return false
	}
	for _, o := range rules.Exact {
		if origin == o {
			return true
		}
	}
	for _, re := range rules.Patterns {
		if re.MatchString(origin) {
			return true
		}
	}
	return false
}

// CORS construit le middleware cross-origin. Les requêtes OPTIONS de
// preflight sont traitées ici, avant toute authentification.
func CORS() gin.HandlerFunc {
	rules := NewOriginRules(config.C.AllowedOrigins, config.C.OriginPatterns)

	return cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return IsOriginAllowed(origin, rules)
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
