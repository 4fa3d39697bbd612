package breed

import (
	"unicode"
	"unicode/utf8"
)

// Summary is one entry of the breed list. PhotoURL is nil when no representative
// photo could be fetched for the breed.
type Summary struct {
	ID       string  `json:"id"`
	PhotoURL *string `json:"photo_url"`
}

type Detail struct {
	ID     string   `json:"id"`
	Images []string `json:"images"`
}

// DisplayName upper-cases the first rune of a breed id: "hound" -> "Hound".
func DisplayName(id string) string {
	r, size := utf8.DecodeRuneInString(id)
	if r == utf8.RuneError {
		return id
	}
	return string(unicode.ToUpper(r)) + id[size:]
}
