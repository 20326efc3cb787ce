package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/machinesim/internal/machine"
	"github.com/san-kum/machinesim/internal/sim"
)

var ErrEmptyTrace = errors.New("storage: trace has no frames")

var frameHeader = []string{
	"frame", "time", "component", "kind",
	"x", "y", "rotation", "phase", "speed", "vx", "vy", "active",
}

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID         string             `json:"id"`
	Machine    int                `json:"machine"`
	Name       string             `json:"name"`
	Timestamp  time.Time          `json:"timestamp"`
	FrameRate  float64            `json:"frame_rate"`
	Frames     int                `json:"frames"`
	Components []string           `json:"components"`
	Metrics    map[string]float64 `json:"metrics"`
}

// Save writes trace to a new run directory and returns the run id.
func (s *Store) Save(name string, trace *sim.Trace) (string, error) {
	if trace == nil || trace.Len() == 0 {
		return "", ErrEmptyTrace
	}

	now := time.Now()
	runID := fmt.Sprintf("machine%d_%d", trace.Machine, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	first := trace.Snapshots[0]
	components := make([]string, len(first.Components))
	for i, c := range first.Components {
		components[i] = c.Name
	}

	meta := RunMetadata{
		ID:         runID,
		Machine:    trace.Machine,
		Name:       name,
		Timestamp:  now,
		FrameRate:  trace.FrameRate,
		Frames:     trace.Len() - 1,
		Components: components,
		Metrics:    trace.Metrics,
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "frames.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	if err := w.Write(frameHeader); err != nil {
		return "", err
	}
	for _, snap := range trace.Snapshots {
		for _, c := range snap.Components {
			if err := w.Write(frameRow(snap, c)); err != nil {
				return "", err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return runID, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}

func frameRow(snap machine.Snapshot, c machine.ComponentState) []string {
	return []string{
		strconv.Itoa(snap.Frame),
		formatFloat(snap.Time),
		c.Name,
		c.Kind,
		formatFloat(c.X),
		formatFloat(c.Y),
		formatFloat(c.Rotation),
		formatFloat(c.Phase),
		formatFloat(c.Speed),
		formatFloat(c.VX),
		formatFloat(c.VY),
		strconv.FormatBool(c.Active),
	}
}

// List returns the metadata of every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}

		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		if runs[i].Timestamp.Equal(runs[j].Timestamp) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadFrames reads a run's frames back into snapshots. Values carry the
// six decimal places they were written with.
func (s *Store) LoadFrames(runID string) ([]machine.Snapshot, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(filepath.Join(s.baseDir, runID, "frames.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(frameHeader)

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	snaps := make([]machine.Snapshot, 0, meta.Frames+1)
	for i, record := range records {
		if i == 0 {
			continue
		}
		frame, snapTime, st, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("storage: %s line %d: %w", runID, i+1, err)
		}
		if n := len(snaps); n == 0 || snaps[n-1].Frame != frame {
			snaps = append(snaps, machine.Snapshot{Machine: meta.Machine, Frame: frame, Time: snapTime})
		}
		last := &snaps[len(snaps)-1]
		last.Components = append(last.Components, st)
	}

	return snaps, nil
}

func parseRow(record []string) (int, float64, machine.ComponentState, error) {
	var st machine.ComponentState

	frame, err := strconv.Atoi(record[0])
	if err != nil {
		return 0, 0, st, err
	}
	vals := make([]float64, 0, 8)
	for _, field := range append([]string{record[1]}, record[4:11]...) {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return 0, 0, st, err
		}
		vals = append(vals, v)
	}
	active, err := strconv.ParseBool(record[11])
	if err != nil {
		return 0, 0, st, err
	}

	st = machine.ComponentState{
		Name:     record[2],
		Kind:     record[3],
		X:        vals[1],
		Y:        vals[2],
		Rotation: vals[3],
		Phase:    vals[4],
		Speed:    vals[5],
		VX:       vals[6],
		VY:       vals[7],
		Active:   active,
	}
	return frame, vals[0], st, nil
}
