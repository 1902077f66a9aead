package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// writeCurveCSVFile writes the per-bar pipeline output to a CSV file at the given path.
func writeCurveCSVFile(path string, r *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create curve file: %w", err)
	}
	defer f.Close()

	if err := writeCurveCSV(f, r); err != nil {
		return err
	}
	return f.Close()
}

// writeCurveCSV writes one row per bar. Undefined averages are empty cells.
func writeCurveCSV(w io.Writer, r *Result) error {
	cw := csv.NewWriter(w)

	header := []string{
		"date",
		"close",
		"sma_short",
		"sma_long",
		"signal",
		"position",
		"close_ret",
		"signal_lag",
		"strat_ret",
		"bh_curve",
		"str_curve",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < r.Prices.Len(); i++ {
		record := []string{
			r.Prices.At(i).Date.Format(time.DateOnly),
			formatFloat(r.Prices.At(i).Close),
			r.Indicators.SMAShort[i].String(),
			r.Indicators.SMALong[i].String(),
			strconv.Itoa(r.Signals.Signal[i]),
			strconv.Itoa(r.Signals.Position[i]),
			formatFloat(r.Returns.CloseRet[i]),
			strconv.Itoa(r.Returns.SignalLag[i]),
			formatFloat(r.Returns.StratRet[i]),
			formatFloat(r.Returns.BHCurve[i]),
			formatFloat(r.Returns.STRCurve[i]),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
