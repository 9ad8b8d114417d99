package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidatedByFloor(t *testing.T) {
	tests := []struct {
		name        string
		iat         int64
		floor       int64
		invalidated bool
	}{
		{name: "émis avant le plancher", iat: 100, floor: 200, invalidated: true},
		{name: "émis dans la même seconde que le plancher", iat: 200, floor: 200, invalidated: true},
		{name: "émis après le plancher", iat: 201, floor: 200, invalidated: false},
		{name: "aucun plancher posé", iat: 100, floor: 0, invalidated: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.invalidated, InvalidatedByFloor(tt.iat, tt.floor))
		})
	}
}
