package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/san-kum/machinesim/internal/machine"
	"github.com/san-kum/machinesim/internal/sim"
)

type ExportData struct {
	Machine   int                  `json:"machine"`
	FrameRate float64              `json:"frame_rate"`
	Frames    int                  `json:"frames"`
	Times     []float64            `json:"times"`
	Snapshots []machine.Snapshot   `json:"snapshots"`
	Samples   map[string][]float64 `json:"samples,omitempty"`
	Metrics   map[string]float64   `json:"metrics,omitempty"`
}

func exportData(trace *sim.Trace) ExportData {
	return ExportData{
		Machine:   trace.Machine,
		FrameRate: trace.FrameRate,
		Frames:    trace.Len(),
		Times:     trace.Times(),
		Snapshots: trace.Snapshots,
		Samples:   trace.Samples,
		Metrics:   trace.Metrics,
	}
}

func ExportJSON(path string, trace *sim.Trace) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return WriteJSON(file, trace)
}

// WriteJSON writes the export document to w, for example os.Stdout.
func WriteJSON(w io.Writer, trace *sim.Trace) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(exportData(trace))
}
