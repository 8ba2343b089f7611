// Package dashboard keeps a symbol set and lookback window in sync with the
// stock backend and derives what the dashboard shows from the results.
//
// Each refresh is a generation. A generation runs three fetch sequences
// (prices, historical, averages) concurrently; every sequence reports into its
// own Slot through Reduce, and the loading flag and error message shown to the
// user are derived from the three slots. Events from an older generation are
// ignored.
package dashboard

import (
	"stockdash/internal/market"
	"stockdash/internal/symbols"
)

// Messages shown to the user. They are deliberately coarse: the detail goes to the log.
const (
	LoadingMessage          = "Loading..."
	PricesFailedMessage     = "Error fetching stock prices"
	HistoricalFailedMessage = "Error fetching historical data"
	AveragesFailedMessage   = "Error fetching average prices"
)

// Status of a single fetch sequence.
type Status int

const (
	Idle Status = iota
	Loading
	Succeeded
	Failed
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// MarshalText lets Status appear by name in JSON.
func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Slot is the outcome of one fetch sequence for the current generation.
type Slot[T any] struct {
	Status Status `json:"status"`
	Data   T      `json:"data"`
	Err    string `json:"error,omitempty"`
}

// Inputs are what the user typed.
type Inputs struct {
	Symbols []string `json:"symbols"`
	// Days is passed to the backend and shown in labels as typed.
	Days string `json:"days"`
}

// NewInputs parses the raw symbol field.
func NewInputs(rawSymbols, days string) Inputs {
	return Inputs{Symbols: symbols.Parse(rawSymbols), Days: days}
}

func (in Inputs) clone() Inputs {
	out := in
	out.Symbols = append([]string(nil), in.Symbols...)
	return out
}

// State is an immutable snapshot of the dashboard. Maps inside a State are
// never written after the State is built.
type State struct {
	Gen        uint64                     `json:"generation"`
	Inputs     Inputs                     `json:"inputs"`
	Prices     Slot[market.PriceMap]      `json:"prices"`
	Historical Slot[market.HistoricalMap] `json:"historical"`
	Averages   Slot[market.AverageMap]    `json:"averages"`
}

// Loading reports whether any sequence of the current generation is still running.
func (s State) Loading() bool {
	return s.Prices.Status == Loading || s.Historical.Status == Loading || s.Averages.Status == Loading
}

// Err returns the message of the first failed sequence, checked in the order
// prices, historical, averages. Empty when nothing failed.
func (s State) Err() string {
	switch {
	case s.Prices.Status == Failed:
		return s.Prices.Err
	case s.Historical.Status == Failed:
		return s.Historical.Err
	case s.Averages.Status == Failed:
		return s.Averages.Err
	}
	return ""
}

// Event is something that happened to a generation.
type Event interface {
	generation() uint64
}

// Started opens a new generation for the given inputs.
type Started struct {
	Gen    uint64
	Inputs Inputs
}

// PricesFetched ends the current price sequence.
type PricesFetched struct {
	Gen    uint64
	Prices market.PriceMap
	Err    error
}

// HistoricalFetched ends the historical sequence.
type HistoricalFetched struct {
	Gen        uint64
	Historical market.HistoricalMap
	Err        error
}

// AveragesFetched ends the average sequence.
type AveragesFetched struct {
	Gen      uint64
	Averages market.AverageMap
	Err      error
}

func (e Started) generation() uint64           { return e.Gen }
func (e PricesFetched) generation() uint64     { return e.Gen }
func (e HistoricalFetched) generation() uint64 { return e.Gen }
func (e AveragesFetched) generation() uint64   { return e.Gen }

// Reduce applies ev to s and returns the new state. It is pure.
//
// A Started event with a newer generation resets every slot to Loading with
// empty data. A *Fetched event only applies when its generation is current and
// its slot is still Loading; a failure leaves the slot with an empty map.
func Reduce(s State, ev Event) State {
	switch ev := ev.(type) {
	case Started:
		if ev.Gen <= s.Gen {
			return s
		}
		return State{
			Gen:        ev.Gen,
			Inputs:     ev.Inputs,
			Prices:     Slot[market.PriceMap]{Status: Loading, Data: market.PriceMap{}},
			Historical: Slot[market.HistoricalMap]{Status: Loading, Data: market.HistoricalMap{}},
			Averages:   Slot[market.AverageMap]{Status: Loading, Data: market.AverageMap{}},
		}
	case PricesFetched:
		if ev.Gen == s.Gen && s.Prices.Status == Loading {
			s.Prices = settle(ev.Prices, ev.Err, market.PriceMap{}, PricesFailedMessage)
		}
	case HistoricalFetched:
		if ev.Gen == s.Gen && s.Historical.Status == Loading {
			s.Historical = settle(ev.Historical, ev.Err, market.HistoricalMap{}, HistoricalFailedMessage)
		}
	case AveragesFetched:
		if ev.Gen == s.Gen && s.Averages.Status == Loading {
			s.Averages = settle(ev.Averages, ev.Err, market.AverageMap{}, AveragesFailedMessage)
		}
	}
	return s
}

func settle[T any](data T, err error, empty T, msg string) Slot[T] {
	if err != nil {
		return Slot[T]{Status: Failed, Data: empty, Err: msg}
	}
	return Slot[T]{Status: Succeeded, Data: data}
}
