// Package chart renders forecast temperature charts to PNG files and cleans
// up old ones.
package chart

import (
	"errors"
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/i474232898/weather-route-assistant/internal/weather"
)

const (
	filePrefix = "forecast_"
	fileExt    = ".png"
)

var (
	errTooFewDays = errors.New("at least two days are needed to draw a chart")

	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)
)

// Renderer writes charts into a single directory. It implements
// weather.ChartRenderer.
type Renderer struct {
	dir string
	now func() time.Time
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir, now: time.Now}
}

// Dir is the directory charts are written to.
func (r *Renderer) Dir() string {
	return r.dir
}

// FileName returns the chart file name for a city. Parts that needed
// sanitizing carry a short hash of the raw text so that, e.g., two Hangul city
// names do not share a file.
func FileName(city, country string) string {
	return filePrefix + safeName(city) + "_" + safeName(country) + fileExt
}

func safeName(s string) string {
	clean := unsafeChars.ReplaceAllString(s, "_")
	if clean == s {
		return s
	}
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return fmt.Sprintf("%s-%08x", clean, h.Sum32())
}

// Render draws mean, max and min temperature per day and returns the file name
// relative to the chart directory. An existing chart for the same city is
// overwritten.
func (r *Renderer) Render(city, country string, days []weather.DailyStats) (string, error) {
	if len(days) < 2 {
		return "", errTooFewDays
	}

	xs := make([]time.Time, len(days))
	means := make([]float64, len(days))
	maxes := make([]float64, len(days))
	mins := make([]float64, len(days))
	for i, d := range days {
		xs[i] = d.Date
		means[i] = d.Mean
		maxes[i] = d.Max
		mins[i] = d.Min
	}

	title := city
	if country != "" {
		title = city + ", " + country
	}

	graph := gochart.Chart{
		Title: title + " forecast",
		XAxis: gochart.XAxis{
			Name:           "Date",
			ValueFormatter: gochart.TimeDateValueFormatter,
		},
		YAxis: gochart.YAxis{
			Name: "Temperature (°C)",
		},
		Series: []gochart.Series{
			gochart.TimeSeries{Name: "Mean", XValues: xs, YValues: means},
			gochart.TimeSeries{Name: "Max", XValues: xs, YValues: maxes},
			gochart.TimeSeries{Name: "Min", XValues: xs, YValues: mins},
		},
	}
	graph.Elements = []gochart.Renderable{gochart.Legend(&graph)}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("create chart dir: %w", err)
	}

	// Render into a temporary file and rename it into place so readers never
	// see a partial chart.
	tmp, err := os.CreateTemp(r.dir, ".forecast-*.png")
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	if err := writeChart(&graph, tmp); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}

	name := FileName(city, country)
	if err := os.Rename(tmp.Name(), filepath.Join(r.dir, name)); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("move chart into place: %w", err)
	}
	return name, nil
}

// writeChart renders graph into f and always closes f.
func writeChart(graph *gochart.Chart, f *os.File) error {
	if err := graph.Render(gochart.PNG, f); err != nil {
		_ = f.Close()
		return fmt.Errorf("render chart: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close chart file: %w", err)
	}
	return nil
}

// Prune removes chart files last modified more than maxAge ago and reports how
// many were removed. Other files in the directory are left alone.
func (r *Renderer) Prune(maxAge time.Duration) (int, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, nil
		}
		return 0, fmt.Errorf("read chart dir: %w", err)
	}

	cutoff := r.now().Add(-maxAge)
	var removed int
	var errs []error
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileExt) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(r.dir, name)); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}
