// Package export renders stored spectrum captures as SVG.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/hashviz/internal/spectrum"
)

const (
	Background = "#0a0a0a"
	BarColor   = "#0ab3ff"
	LineColor  = "#a05fff"
)

// BarsSVG draws one frame of bar heights inside the layout's area. Bars
// grow up from the bottom edge like the live visualizer.
func BarsSVG(heights []float64, layout spectrum.Layout) string {
	if len(heights) == 0 || layout.Width <= 0 || layout.Height <= 0 {
		return ""
	}

	bars := spectrum.Build(spectrum.Layout{
		Width:  layout.Width,
		Height: layout.Height,
		Count:  len(heights),
	}, 0, 0)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s">
`, layout.Width, layout.Height, layout.Width, layout.Height, Background, BarColor))

	for i, b := range bars {
		h := heights[i]
		if h <= 0 {
			continue
		}
		if h > layout.Height {
			h = layout.Height
		}
		sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>
`, b.X, b.Y-h, b.W, h))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// EnvelopeSVG plots a per-frame series (typically the mean bar height) as a
// polyline scaled to fit width x height.
func EnvelopeSVG(series []float64, width, height int) string {
	if len(series) < 2 {
		return ""
	}

	minY, maxY := series[0], series[0]
	for _, v := range series {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeY := maxY - minY
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeY = maxY - minY

	stepX := float64(width) / float64(len(series)-1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, Background, LineColor))

	for i, v := range series {
		x := float64(i) * stepX
		y := float64(height) - (v-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// Means reduces each frame to its average bar height.
func Means(frames [][]float64) []float64 {
	out := make([]float64, len(frames))
	for i, f := range frames {
		if len(f) == 0 {
			continue
		}
		var sum float64
		for _, h := range f {
			sum += h
		}
		out[i] = sum / float64(len(f))
	}
	return out
}
