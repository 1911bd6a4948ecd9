// Package export writes run summaries and batch reports to files.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/fleetsim/core/batch"
	"github.com/kilianp07/fleetsim/core/metrics"
)

// Document is what JSON and YAML exports contain.
type Document struct {
	Report batch.Report         `json:"report" yaml:"report"`
	Runs   []metrics.RunSummary `json:"runs" yaml:"runs"`
}

// WriteJSON writes the runs and their aggregate to w in JSON format.
func WriteJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// WriteYAML writes the runs and their aggregate to w in YAML format.
func WriteYAML(w io.Writer, doc Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

var csvHeader = []string{"run_id", "seed", "router", "vehicles", "depots", "orders", "ticks", "cargo_ticks", "router_ms", "active_ms", "idle_ms"}

// WriteCSV writes one row per run.
func WriteCSV(w io.Writer, runs []metrics.RunSummary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range runs {
		rec := []string{
			r.RunID,
			strconv.FormatInt(r.Seed, 10),
			r.Router,
			strconv.Itoa(r.Vehicles),
			strconv.Itoa(r.Depots),
			strconv.Itoa(r.Orders),
			strconv.Itoa(r.Ticks),
			strconv.Itoa(r.CargoTicks),
			ms(r.RouterTime),
			ms(r.ActiveTime),
			ms(r.IdleTime),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile picks the format from the extension of path.
func WriteFile(path string, doc Document) (err error) {
	ext := strings.ToLower(filepath.Ext(path))
	var write func(io.Writer) error
	switch ext {
	case ".json":
		write = func(w io.Writer) error { return WriteJSON(w, doc) }
	case ".yaml", ".yml":
		write = func(w io.Writer) error { return WriteYAML(w, doc) }
	case ".csv":
		write = func(w io.Writer) error { return WriteCSV(w, doc.Runs) }
	default:
		return fmt.Errorf("unsupported export format: %s", ext)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return write(f)
}

func ms(d time.Duration) string {
	return strconv.FormatFloat(float64(d)/float64(time.Millisecond), 'f', 3, 64)
}
