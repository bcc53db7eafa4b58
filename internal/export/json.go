package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/hashviz/internal/storage"
)

type CaptureData struct {
	storage.CaptureMetadata
	Means   []float64   `json:"means"`
	Heights [][]float64 `json:"heights"`
}

// JSON writes the capture's metadata and every frame as one document.
func JSON(w io.Writer, meta storage.CaptureMetadata, frames [][]float64) error {
	data := CaptureData{
		CaptureMetadata: meta,
		Means:           Means(frames),
		Heights:         frames,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
