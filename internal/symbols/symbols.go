// Package symbols turns the free-text ticker input into a symbol set.
package symbols

import "strings"

// Parse splits raw on commas, trims and upper-cases each token.
// Empty tokens are dropped and repeated symbols keep their first position,
// so "aapl, msft,,AAPL" yields [AAPL MSFT]. The result is never nil.
func Parse(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		s := strings.ToUpper(strings.TrimSpace(p))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Join is the inverse used to prefill an input field.
func Join(symbols []string) string {
	return strings.Join(symbols, ",")
}
