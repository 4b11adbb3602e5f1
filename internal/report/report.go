package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Report records one cost evaluation for later inspection.
type Report struct {
	ID            string    `json:"id"`
	Scenario      string    `json:"scenario"`
	Quadrature    string    `json:"quadrature"`
	Timestamp     time.Time `json:"timestamp"`
	T0            float64   `json:"t0"`
	TF            float64   `json:"tf"`
	TerminalCost  float64   `json:"terminal_cost"`
	TotalCost     float64   `json:"total_cost"`
	Steps         int       `json:"steps"`
	TrackingError float64   `json:"tracking_error"`
}

type Writer struct {
	baseDir string
}

func New(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

func (w *Writer) Init() error {
	return os.MkdirAll(w.baseDir, 0755)
}

// Save writes the report metadata as JSON and the sampled running-cost
// rate as CSV, under a timestamped run directory.
func (w *Writer) Save(rep Report, times, rates []float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", rep.Scenario, time.Now().Unix())
	runDir := filepath.Join(w.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	rep.ID = runID
	rep.Timestamp = time.Now()

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return "", err
	}

	if len(times) != len(rates) {
		return "", fmt.Errorf("report: %d times but %d rates", len(times), len(rates))
	}
	if len(times) > 0 {
		csvPath := filepath.Join(runDir, "rates.csv")
		csvFile, err := os.Create(csvPath)
		if err != nil {
			return "", err
		}
		defer csvFile.Close()

		cw := csv.NewWriter(csvFile)
		if err := cw.Write([]string{"t", "rate"}); err != nil {
			return "", err
		}
		for i := range times {
			row := []string{
				strconv.FormatFloat(times[i], 'g', -1, 64),
				strconv.FormatFloat(rates[i], 'g', -1, 64),
			}
			if err := cw.Write(row); err != nil {
				return "", err
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// List returns the saved run reports, newest last.
func (w *Writer) List() ([]Report, error) {
	entries, err := os.ReadDir(w.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	reports := make([]Report, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(w.baseDir, e.Name(), "metadata.json"))
		if err != nil {
			continue
		}
		var rep Report
		if err := json.Unmarshal(data, &rep); err != nil {
			continue
		}
		reports = append(reports, rep)
	}
	return reports, nil
}
