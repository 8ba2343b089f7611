package dashboard

import (
	"fmt"

	"stockdash/internal/market"
)

// View is what a renderer draws. Exactly one of Loading, Error or Sections is meaningful:
// Loading wins over Error, and Error hides every section.
type View struct {
	Loading  bool      `json:"loading"`
	Error    string    `json:"error,omitempty"`
	Days     string    `json:"days"`
	Sections []Section `json:"sections"`
}

// Section is the block for one symbol.
type Section struct {
	Symbol      string `json:"symbol"`
	PriceLine   string `json:"price_line"`
	AverageLine string `json:"average_line"`
	// HasChart is set when the backend returned a series for the symbol, even an empty one.
	HasChart bool           `json:"has_chart"`
	Chart    []market.Point `json:"chart,omitempty"`
}

// View derives the rendering of s.
func (s State) View() View {
	v := View{Days: s.Inputs.Days, Sections: []Section{}}
	if s.Loading() {
		v.Loading = true
		return v
	}
	if msg := s.Err(); msg != "" {
		v.Error = msg
		return v
	}
	for _, sym := range s.Inputs.Symbols {
		sec := Section{
			Symbol:      sym,
			PriceLine:   "Current Price: $" + amount(s.Prices.Data, sym),
			AverageLine: fmt.Sprintf("Average Price over %s days: $%s", s.Inputs.Days, amount(s.Averages.Data, sym)),
		}
		if points, ok := s.Historical.Data[sym]; ok {
			sec.HasChart = true
			sec.Chart = points
		}
		v.Sections = append(v.Sections, sec)
	}
	return v
}

func amount[M ~map[string]V, V fmt.Stringer](m M, sym string) string {
	if v, ok := m[sym]; ok {
		return v.String()
	}
	return ""
}
