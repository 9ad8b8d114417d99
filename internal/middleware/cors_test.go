package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOriginAllowed(t *testing.T) {
	rules := NewOriginRules(
		[]string{"http://localhost:5173", "https://novamart.shop"},
		[]string{`^https://preview-[a-z0-9]+\.novamart\.shop$`},
	)

	tests := []struct {
		name    string
		origin  string
		allowed bool
	}{
		{name: "origine exacte", origin: "http://localhost:5173", allowed: true},
		{name: "origine exacte https", origin: "https://novamart.shop", allowed: true},
		{name: "preview au motif", origin: "https://preview-abc123.novamart.shop", allowed: true},
		{name: "preview hors motif", origin: "https://preview-ABC.novamart.shop", allowed: false},
		{name: "sous-domaine inconnu", origin: "https://evil.novamart.shop", allowed: false},
		{name: "hôte usurpé", origin: "https://novamart.shop.evil.com", allowed: false},
		{name: "origine vide", origin: "", allowed: false},
		{name: "autre port", origin: "http://localhost:4000", allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, IsOriginAllowed(tt.origin, rules))
		})
	}
}

func TestNewOriginRulesIgnoresBadPattern(t *testing.T) {
	rules := NewOriginRules(nil, []string{`[invalide`, `^https://ok\.example$`})
	assert.Len(t, rules.Patterns, 1)
	assert.True(t, IsOriginAllowed("https://ok.example", rules))
}
