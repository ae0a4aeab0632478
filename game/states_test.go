package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsOneShot(t *testing.T) {
	tests := map[string]bool{
		"Idle":     false,
		"Walking":  false,
		"Running":  false,
		"Dance":    false,
		"Death":    true,
		"Sitting":  true,
		"Standing": true,
		"Jump":     true,
		"Yes":      true,
		"No":       true,
		"Wave":     true,
		"Punch":    true,
		"ThumbsUp": true,
		"Custom":   false,
		"":         false,
	}
	for name, want := range tests {
		assert.Equal(t, want, IsOneShot(name), name)
	}
}
