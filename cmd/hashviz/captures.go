package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/hashviz/internal/audio"
	"github.com/san-kum/hashviz/internal/export"
	"github.com/san-kum/hashviz/internal/spectrum"
	"github.com/san-kum/hashviz/internal/storage"
)

const scanFPS = 60

func runSpectrum(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := args[0]

	src, format, err := audio.OpenTrack(path)
	if err != nil {
		return err
	}
	defer src.Close()

	an, err := audio.NewAnalyser(cfg.Audio.FFTSize)
	if err != nil {
		return err
	}

	layout := cfg.Spectrum
	bars := spectrum.Build(layout, 0, 0)
	frames := make([][]float64, 0, src.Len()*scanFPS/int(format.SampleRate)+1)

	n, err := audio.Scan(src, format, an, scanFPS, func(frame int, buckets []byte) {
		spectrum.Update(bars, buckets, layout.Height)
		frames = append(frames, spectrum.Heights(bars))
	})
	if err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: no audio", path)
	}
	log.Debug("track scanned", zap.String("track", path), zap.Int("frames", n))

	means := export.Means(frames)
	fmt.Printf("track: %s\n", path)
	fmt.Printf("frames: %d (%s at %d fps)\n\n", n, format.SampleRate.D(src.Len()).Round(10*time.Millisecond), scanFPS)

	graph := asciigraph.Plot(downsample(means, 120),
		asciigraph.Height(12),
		asciigraph.Caption("mean bar height"),
	)
	fmt.Println(graph)

	if !save {
		return nil
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	id, err := st.Save(storage.CaptureMetadata{
		Track:   path,
		FFTSize: an.FFTSize(),
		Height:  layout.Height,
		FPS:     scanFPS,
	}, frames)
	if err != nil {
		return err
	}
	fmt.Printf("\ncapture id: %s\n", id)
	return nil
}

// downsample averages series into at most n buckets so the plot fits a
// terminal.
func downsample(series []float64, n int) []float64 {
	if len(series) <= n {
		return series
	}
	out := make([]float64, n)
	per := float64(len(series)) / float64(n)
	for i := range out {
		lo, hi := int(float64(i)*per), int(float64(i+1)*per)
		var sum float64
		for _, v := range series[lo:hi] {
			sum += v
		}
		out[i] = sum / float64(hi-lo)
	}
	return out
}

func listCaptures(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	caps, err := st.List()
	if err != nil {
		return err
	}

	if len(caps) == 0 {
		fmt.Println("no captures found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTRACK\tCAPTURED\tFRAMES\tBARS\tPEAK")

	for _, c := range caps {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.1f\n",
			c.ID,
			c.Track,
			humanize.Time(c.Timestamp),
			humanize.Comma(int64(c.Frames)),
			c.Bars,
			c.Peak,
		)
	}

	return w.Flush()
}

func exportCapture(cmd *cobra.Command, args []string) error {
	id := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(id)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("%s: no frames", id)
	}

	if asJSON {
		return writeOut(func(w io.Writer) error { return export.JSON(w, *meta, frames) })
	}

	var svg string
	if envelope {
		svg = export.EnvelopeSVG(export.Means(frames), 800, 200)
	} else {
		idx := frameIdx
		if idx < 0 {
			idx = loudest(frames)
		}
		if idx >= len(frames) {
			return fmt.Errorf("%s: frame %d out of range (0-%d)", id, idx, len(frames)-1)
		}
		layout := spectrum.DefaultLayout()
		layout.Height = meta.Height
		svg = export.BarsSVG(frames[idx], layout)
	}

	return writeOut(func(w io.Writer) error {
		_, err := fmt.Fprintln(w, svg)
		return err
	})
}

// writeOut sends an export to --out, or stdout when unset.
func writeOut(write func(w io.Writer) error) error {
	if outFile == "" {
		return write(os.Stdout)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := write(f); err != nil {
		return err
	}
	info, err := f.Stat()
	if err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s)\n", outFile, humanize.Bytes(uint64(info.Size())))
	return nil
}

func loudest(frames [][]float64) int {
	means := export.Means(frames)
	best := 0
	for i, m := range means {
		if m > means[best] {
			best = i
		}
	}
	return best
}
