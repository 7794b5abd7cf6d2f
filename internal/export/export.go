// Package export writes picker traces as CSV, JSON or SVG.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/wheelsim/internal/trace"
)

// Run is a recorded picker motion plus what produced it.
type Run struct {
	Label    string         `json:"label"`
	Min      int            `json:"min"`
	Max      int            `json:"max"`
	Wrap     bool           `json:"wrap"`
	Velocity float64        `json:"velocity,omitempty"`
	Samples  []trace.Sample `json:"samples"`
	Metrics  []trace.Result `json:"metrics"`
}

var csvHeader = []string{"t_ms", "offset", "position", "value", "state", "velocity"}

func WriteCSV(w io.Writer, samples []trace.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatInt(s.T, 10),
			strconv.Itoa(s.Offset),
			strconv.FormatFloat(s.Position, 'f', 1, 64),
			strconv.Itoa(s.Value),
			s.State.String(),
			strconv.FormatFloat(s.Velocity, 'f', 2, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteJSON(w io.Writer, run Run) error {
	if run.Samples == nil {
		run.Samples = []trace.Sample{}
	}
	if run.Metrics == nil {
		run.Metrics = []trace.Result{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(run)
}
