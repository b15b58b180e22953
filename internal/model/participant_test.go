package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatParticipant(t *testing.T) {
	tests := []struct {
		raw          string
		wantName     string
		wantInitials string
	}{
		{"jane.doe@example.com", "Jane Doe", "JD"},
		{"bob@example.com", "Bob", "B"},
		{"", "", ""},
		{"mary_ann-smith@school.edu", "Mary Ann Smith", "MA"},
		{"..john..@x.org", "John", "J"},
		{"mcDonald.o'neil@x.org", "McDonald O'neil", "MO"},
		{"no-at-sign", "No At Sign", "NA"},
		{"@example.com", "@example.com", "@E"},
		{"---@example.com", "---@example.com", "--"},
		{"élodie.ünal@example.fr", "Élodie Ünal", "ÉÜ"},
		{"a@b@c", "A", "A"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got := FormatParticipant(tt.raw)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantInitials, got.Initials)
		})
	}
}

func TestFormatParticipant_KeepsRestOfWordUnchanged(t *testing.T) {
	got := FormatParticipant("jOHN.sMITH@example.com")
	assert.Equal(t, "JOHN SMITH", got.Name)
	assert.Equal(t, "JS", got.Initials)

	got = FormatParticipant("alice.LIDDELL@example.com")
	assert.Equal(t, "Alice LIDDELL", got.Name)
}
