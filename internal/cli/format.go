package cli

import "golang.org/x/text/unicode/norm"

// truncate shortens s to at most max runes, appending "..." when cut.
// Text is NFC-normalized first so the limit counts composed characters
// instead of splitting combining sequences.
func truncate(s string, max int) string {
	s = norm.NFC.String(s)
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
