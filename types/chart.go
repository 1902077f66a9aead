package types

import (
	"time"
)

// EquityChart is the input of the charting sink: both equity curves already
// scaled by the initial capital.
type EquityChart struct {
	Ticker   string      `json:"ticker"`
	Dates    []time.Time `json:"dates"`
	Strategy []float64   `json:"strategy"`
	BuyHold  []float64   `json:"buyHold"`
	Start    time.Time   `json:"start"`
	End      time.Time   `json:"end"`
	Interval Interval    `json:"interval"`
}
