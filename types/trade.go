package types

import "time"

// Trade is one round trip of the crossover strategy. An open trade has a zero
// ExitDate and is valued at the last close.
type Trade struct {
	Ticker     string    `json:"ticker"`
	EntryDate  time.Time `json:"entryDate"`
	EntryPrice float64   `json:"entryPrice"`
	ExitDate   time.Time `json:"exitDate"`
	ExitPrice  float64   `json:"exitPrice"`
	Units      float64   `json:"units"`
	ReturnPct  float64   `json:"returnPct"`
	Open       bool      `json:"open"`
}
