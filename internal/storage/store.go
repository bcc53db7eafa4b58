// Package storage keeps spectrum captures on disk, one directory per capture
// holding metadata.json and bars.csv.
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

	"github.com/google/uuid"
)

var ErrEmptyCapture = errors.New("storage: capture has no frames")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type CaptureMetadata struct {
	ID        string    `json:"id"`
	Track     string    `json:"track"`
	Timestamp time.Time `json:"timestamp"`
	FFTSize   int       `json:"fft_size"`
	Bars      int       `json:"bars"`
	Height    float64   `json:"height"`
	FPS       int       `json:"fps"`
	Frames    int       `json:"frames"`
	Peak      float64   `json:"peak"`
}

// Save writes a capture. frames[i] holds the bar heights of frame i. The
// id, timestamp, frame count and peak are filled in from the data.
func (s *Store) Save(meta CaptureMetadata, frames [][]float64) (string, error) {
	if len(frames) == 0 {
		return "", ErrEmptyCapture
	}

	meta.ID = "cap_" + uuid.NewString()[:8]
	meta.Timestamp = time.Now()
	meta.Frames = len(frames)
	meta.Bars = len(frames[0])
	meta.Peak = 0
	for _, f := range frames {
		for _, h := range f {
			if h > meta.Peak {
				meta.Peak = h
			}
		}
	}

	dir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "bars.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)

	header := []string{"frame"}
	for i := 0; i < meta.Bars; i++ {
		header = append(header, fmt.Sprintf("b%d", i))
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	for i, f := range frames {
		row := []string{strconv.Itoa(i)}
		for _, h := range f {
			row = append(row, strconv.FormatFloat(h, 'f', 3, 64))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return meta.ID, nil
}

// List returns every readable capture, newest first.
func (s *Store) List() ([]CaptureMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []CaptureMetadata{}, nil
		}
		return nil, err
	}

	caps := make([]CaptureMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		caps = append(caps, *meta)
	}

	sort.Slice(caps, func(i, j int) bool {
		return caps[i].Timestamp.After(caps[j].Timestamp)
	})
	return caps, nil
}

func (s *Store) Load(id string) (*CaptureMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, id, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta CaptureMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadFrames reads the bar heights of every frame back.
func (s *Store) LoadFrames(id string) ([][]float64, error) {
	file, err := os.Open(filepath.Join(s.baseDir, id, "bars.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return [][]float64{}, nil
	}

	frames := make([][]float64, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 2 {
			continue
		}
		frame := make([]float64, 0, len(record)-1)
		for _, field := range record[1:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("storage: %s: bad height %q: %w", id, field, err)
			}
			frame = append(frame, v)
		}
		frames = append(frames, frame)
	}
	return frames, nil
}
