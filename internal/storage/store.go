package storage

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

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
	ID          string             `json:"id"`
	System      string             `json:"system"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        int64              `json:"seed"`
	Angle       float64            `json:"angle"`
	Step        float64            `json:"step"`
	Pens        string             `json:"pens,omitempty"`
	Generations int                `json:"generations"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes one run: metadata.json, the flattened derivation of each
// generation in generations.txt, and a generation/module-count table in
// sizes.csv. Angle, step, and pens are recorded so a stored derivation
// can be re-parsed and rendered later.
func (s *Store) Save(system string, seed int64, angle, step float64, pens string, generations []string, sizes []float64, metrics map[string]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", system, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:          runID,
		System:      system,
		Timestamp:   time.Now(),
		Seed:        seed,
		Angle:       angle,
		Step:        step,
		Pens:        pens,
		Generations: len(generations),
		Metrics:     metrics,
	}

	metaPath := filepath.Join(runDir, "metadata.json")
	metaFile, err := os.Create(metaPath)
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	genPath := filepath.Join(runDir, "generations.txt")
	genFile, err := os.Create(genPath)
	if err != nil {
		return "", err
	}
	defer genFile.Close()
	for _, g := range generations {
		if _, err := fmt.Fprintln(genFile, g); err != nil {
			return "", err
		}
	}

	csvPath := filepath.Join(runDir, "sizes.csv")
	csvFile, err := os.Create(csvPath)
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"generation", "modules"}); err != nil {
		return "", err
	}
	for i, size := range sizes {
		row := []string{strconv.Itoa(i + 1), strconv.FormatFloat(size, 'f', 0, 64)}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return runID, nil
}

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

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	metaPath := filepath.Join(s.baseDir, runID, "metadata.json")
	data, err := os.ReadFile(metaPath)
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadGenerations returns the flattened derivation strings of a run, one
// per generation.
func (s *Store) LoadGenerations(runID string) ([]string, error) {
	genPath := filepath.Join(s.baseDir, runID, "generations.txt")
	file, err := os.Open(genPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	generations := make([]string, 0)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		generations = append(generations, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return generations, nil
}

// LoadSizes returns the per-generation module counts of a run.
func (s *Store) LoadSizes(runID string) ([]float64, error) {
	csvPath := filepath.Join(s.baseDir, runID, "sizes.csv")
	file, err := os.Open(csvPath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	sizes := make([]float64, 0, len(records))
	for i := 1; i < len(records); i++ {
		if len(records[i]) < 2 {
			continue
		}
		v, err := strconv.ParseFloat(records[i][1], 64)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, v)
	}
	return sizes, nil
}
