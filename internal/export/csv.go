package export

import (
	"encoding/csv"
	"io"
	"strconv"
)

// WriteCSV writes a "time,p_ex" header followed by one row per sample.
// Values keep full float64 precision.
func WriteCSV(w io.Writer, times, values []float64) error {
	if len(times) != len(values) {
		return ErrNoData
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "p_ex"}); err != nil {
		return err
	}
	for i := range times {
		row := []string{
			strconv.FormatFloat(times[i], 'g', -1, 64),
			strconv.FormatFloat(values[i], 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
