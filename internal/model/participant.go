package model

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ParticipantDisplay is the readable identity derived from a participant email.
type ParticipantDisplay struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
}

// FormatParticipant turns an identifier such as "jane.doe@example.com" into
// the display name "Jane Doe" and initials "JD". Only the first letter of each
// word is uppercased; the rest is left as written.
func FormatParticipant(raw string) ParticipantDisplay {
	// Casers keep state and must not be shared across goroutines.
	upper := cases.Upper(language.Und)

	local, _, _ := strings.Cut(raw, "@")
	words := strings.FieldsFunc(local, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})

	display := ParticipantDisplay{Name: raw}
	if len(words) == 0 {
		display.Initials = upper.String(firstRunes(raw, 2))
		return display
	}

	titled := make([]string, len(words))
	for i, w := range words {
		first := firstRunes(w, 1)
		titled[i] = upper.String(first) + w[len(first):]
	}
	display.Name = strings.Join(titled, " ")

	var initials strings.Builder
	for _, w := range words[:min(2, len(words))] {
		initials.WriteString(upper.String(firstRunes(w, 1)))
	}
	display.Initials = initials.String()
	return display
}

func firstRunes(s string, n int) string {
	end := 0
	for i := 0; i < n && end < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[end:])
		end += size
	}
	return s[:end]
}
