package genres

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	tests := map[string]string{
		"Tech House":       "tech-house",
		"  Drum & Bass  ":  "drum-bass",
		"Hip-Hop / R&B":    "hip-hop-rb",
		"reggaeton_latino": "reggaeton-latino",
		"":                 "",
	}

	for in, want := range tests {
		assert.Equal(t, want, GenerateSlug(in), in)
	}
}

func TestParseQuery(t *testing.T) {
	assert.Equal(t, []string{"tech house", "techno"}, ParseQuery("Tech House, techno", "TECHNO"))
	assert.Empty(t, ParseQuery(""))
	assert.Empty(t, ParseQuery(" , "))
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"House", "Techno"}, Names([]Genre{{Name: "House"}, {Name: "Techno"}}))
}
