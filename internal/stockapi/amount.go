package stockapi

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// amount decodes a JSON number or a scraped price string such as "$1,182.52".
type amount struct {
	decimal.Decimal
}

func (a *amount) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || b[0] != '"' {
		return a.Decimal.UnmarshalJSON(b)
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	d, err := parseAmount(s)
	if err != nil {
		return err
	}
	a.Decimal = d
	return nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimLeftFunc(clean, func(r rune) bool { return unicode.Is(unicode.Sc, r) })
	clean = strings.ReplaceAll(strings.TrimSpace(clean), ",", "")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, err)
	}
	return d, nil
}
