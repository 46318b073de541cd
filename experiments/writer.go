package experiments

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Writer stores experiment results as CSV files.
type Writer struct {
	baseDir string
}

func NewWriter(name string) (*Writer, error) {
	// Create a subfolder named by current timestamp
	timestamp := time.Now().UTC().Format(time.RFC3339)
	baseDir := filepath.Join("experiments", name, timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) WriteConfigs(configs []SearchConfig) error {
	// Create a file
	path := filepath.Join(w.baseDir, "search_configs.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create search configs file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"id", "iterations", "max_depth", "exploration_weight", "candidates"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write search configs header: %w", err)
	}

	// Write each row
	for _, config := range configs {
		row := []string{
			config.ID,
			strconv.Itoa(config.Iterations),
			strconv.Itoa(config.MaxDepth),
			strconv.FormatFloat(config.Weight, 'f', -1, 64),
			strconv.Itoa(config.Candidates),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write search config row: %w", err)
		}
	}

	return nil
}

func (w *Writer) WriteRecords(records []Record) error {
	// Create a file
	path := filepath.Join(w.baseDir, "run_records.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create run records file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	defer writer.Flush()

	// Write header
	header := []string{"config", "run", "run_id", "start_time", "duration",
		"iterations", "depth_guarded", "propose_calls", "score_calls", "cache_hits"}
	err = writer.Write(header)
	if err != nil {
		return fmt.Errorf("failed to write run records header: %w", err)
	}

	// Write each row
	for _, record := range records {
		row := []string{
			record.Config,
			strconv.Itoa(record.Run),
			record.RunID,
			record.StartTime.Format(time.RFC3339),
			record.Duration.String(),
			strconv.FormatInt(record.Iterations, 10),
			strconv.FormatInt(record.DepthGuarded, 10),
			strconv.FormatInt(record.ProposeCalls, 10),
			strconv.FormatInt(record.ScoreCalls, 10),
			strconv.FormatInt(record.CacheHits, 10),
		}
		err = writer.Write(row)
		if err != nil {
			return fmt.Errorf("failed to write run record row: %w", err)
		}
	}

	return nil
}
