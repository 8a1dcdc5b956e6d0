package strutil

import "strings"

// TitleFromEnum converts an upper-case enum token to a display label:
// "CLIENT_LABEL" becomes "Client Label". Empty segments from doubled or
// leading underscores are dropped.
func TitleFromEnum(token string) string {
	parts := strings.Split(token, "_")
	words := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		lower := strings.ToLower(p)
		words = append(words, strings.ToUpper(lower[:1])+lower[1:])
	}
	return strings.Join(words, " ")
}
