// Package output provides result formatting and export.
package output

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tstromberg/cachelab/internal/benchmark"
)

//go:embed template.html
var templateFS embed.FS

// Results holds all benchmark results for HTML output.
type Results struct {
	Timestamp   string
	HitRate     *HitRateData
	Latency     *LatencyData
	Throughput  *ThroughputData
	Memory      *MemoryData
	Rankings    []Ranking
	MedalTable  *MedalTable
	MachineInfo MachineInfo
}

// MachineInfo holds information about the benchmark environment.
type MachineInfo struct {
	OS          string
	Arch        string
	NumCPU      int
	GoVersion   string
	CommandLine string
}

// Ranking represents an overall ranking entry.
type Ranking struct {
	Rank   int
	Name   string
	Score  float64
	Gold   int
	Silver int
	Bronze int
}

// BenchmarkMedal represents a single benchmark's top 3 placements.
// Each slot holds every cache tied at that position.
type BenchmarkMedal struct {
	Name   string
	Gold   []string
	Silver []string
	Bronze []string
}

// CategoryMedals holds medals for a benchmark category with its winner.
type CategoryMedals struct {
	Name       string
	Benchmarks []BenchmarkMedal
	Rankings   []Ranking
}

// MedalTable holds all benchmark medals organized by category.
type MedalTable struct {
	Categories []CategoryMedals
}

// MemoryData holds memory benchmark data.
type MemoryData struct {
	Results  []benchmark.MemoryResult
	Capacity int
	ValSize  int
}

// HitRateData holds hit rate benchmark data.
type HitRateData struct {
	Zipf      []benchmark.HitRateResult
	Loop      []benchmark.HitRateResult
	Uniform   []benchmark.HitRateResult
	Trace     []benchmark.HitRateResult
	TraceName string
	Sizes     []int
}

// LatencyData holds latency benchmark data.
type LatencyData struct {
	Results            []benchmark.LatencyResult
	IntResults         []benchmark.LatencyResult
	GetOrSetResults    []benchmark.GetOrSetLatencyResult
	IntGetOrSetResults []benchmark.GetOrSetLatencyResult
}

// ThroughputData holds throughput benchmark data.
type ThroughputData struct {
	MixedResults    []benchmark.ThroughputResult
	GetResults      []benchmark.ThroughputResult
	SetResults      []benchmark.ThroughputResult
	IntMixedResults []benchmark.ThroughputResult
	GetOrSetResults []benchmark.ThroughputResult
	Threads         []int
}

// Section types let one template block render every variant of a table.

type hitRateSection struct {
	Title string
	Data  []benchmark.HitRateResult
	Sizes []int
}

type latencySection struct {
	Title string
	Data  []benchmark.LatencyResult
}

type getOrSetSection struct {
	Title string
	Data  []benchmark.GetOrSetLatencyResult
}

type throughputSection struct {
	Title   string
	Data    []benchmark.ThroughputResult
	Threads []int
}

// WriteHTML writes benchmark results to an HTML file.
func WriteHTML(filename string, results Results, commandLine string) error {
	results.Timestamp = time.Now().Format("2006-01-02 15:04:05 MST")
	results.MachineInfo.CommandLine = commandLine

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	return htmlTemplate.Execute(f, results)
}

var htmlTemplate = template.Must(template.New("template.html").Funcs(templateFuncs).ParseFS(templateFS, "template.html"))

var templateFuncs = template.FuncMap{
	"avgHitRate": AvgHitRate,
	"avgLatency": func(r benchmark.LatencyResult) float64 {
		return (r.GetNsOp + r.SetNsOp) / 2
	},
	"avgQPS": avgQPS,
	"join":   strings.Join,
	"hitRateSection": func(title string, data []benchmark.HitRateResult, sizes []int) hitRateSection {
		return hitRateSection{Title: title, Data: data, Sizes: sizes}
	},
	"latencySection": func(title string, data []benchmark.LatencyResult) latencySection {
		return latencySection{Title: title, Data: data}
	},
	"getOrSetSection": func(title string, data []benchmark.GetOrSetLatencyResult) getOrSetSection {
		return getOrSetSection{Title: title, Data: data}
	},
	"throughputSection": func(title string, data []benchmark.ThroughputResult, threads []int) throughputSection {
		return throughputSection{Title: title, Data: data, Threads: threads}
	},
	"sortByHitRate": func(results []benchmark.HitRateResult, sizes []int) []benchmark.HitRateResult {
		sorted := make([]benchmark.HitRateResult, len(results))
		copy(sorted, results)
		sort.Slice(sorted, func(i, j int) bool {
			return AvgHitRate(sorted[i], sizes) > AvgHitRate(sorted[j], sizes)
		})
		return sorted
	},
	"sortByGetLatency": func(results []benchmark.LatencyResult) []benchmark.LatencyResult {
		sorted := make([]benchmark.LatencyResult, len(results))
		copy(sorted, results)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].GetNsOp < sorted[j].GetNsOp
		})
		return sorted
	},
	"sortGetOrSet": func(results []benchmark.GetOrSetLatencyResult) []benchmark.GetOrSetLatencyResult {
		sorted := make([]benchmark.GetOrSetLatencyResult, len(results))
		copy(sorted, results)
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].NsOp < sorted[j].NsOp
		})
		return sorted
	},
	"sortByThroughput": func(results []benchmark.ThroughputResult, threads []int) []benchmark.ThroughputResult {
		sorted := make([]benchmark.ThroughputResult, len(results))
		copy(sorted, results)
		maxThreads := threads[len(threads)-1]
		sort.Slice(sorted, func(i, j int) bool {
			return sorted[i].QPS[maxThreads] > sorted[j].QPS[maxThreads]
		})
		return sorted
	},
	"divK": func(n int) int { return n / 1024 },
	"last": func(xs []int) int { return xs[len(xs)-1] },
	"color": func(name string) template.CSS {
		c, ok := cacheColors[name]
		if !ok {
			c = "#78909C"
		}
		return template.CSS("background:" + c) //nolint:gosec // colors come from a fixed map
	},
	"allocColor": func(n int64) template.CSS {
		switch {
		case n == 0:
			return "background:#fff;color:#333"
		case n == 1:
			return "background:#fff3cd;color:#333"
		case n == 2:
			return "background:#ffcc80;color:#333"
		case n == 3:
			return "background:#ef5350;color:#fff"
		case n == 4:
			return "background:#c62828;color:#fff"
		default:
			return "background:#8b0000;color:#fff"
		}
	},
	"pct": func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"ns":  func(f float64) string { return fmt.Sprintf("%.1f", f) },
	"qps": func(f float64) string {
		if f >= 1_000_000 {
			return fmt.Sprintf("%.2fM", f/1_000_000)
		}
		return fmt.Sprintf("%.0fK", f/1_000)
	},
	"barWidth": func(value, max float64) float64 {
		if max == 0 {
			return 0
		}
		return (value / max) * 100
	},
	"maxLatency": func(results []benchmark.LatencyResult) float64 {
		max := 0.0
		for _, r := range results {
			if r.GetNsOp > max {
				max = r.GetNsOp
			}
		}
		return max
	},
	"maxSetLatency": func(results []benchmark.LatencyResult) float64 {
		max := 0.0
		for _, r := range results {
			if r.SetNsOp > max {
				max = r.SetNsOp
			}
		}
		return max
	},
	"maxSetEvictLatency": func(results []benchmark.LatencyResult) float64 {
		max := 0.0
		for _, r := range results {
			if r.SetEvictNsOp > max {
				max = r.SetEvictNsOp
			}
		}
		return max
	},
	"maxGetOrSetLatency": func(results []benchmark.GetOrSetLatencyResult) float64 {
		max := 0.0
		for _, r := range results {
			if r.NsOp > max {
				max = r.NsOp
			}
		}
		return max
	},
	"maxQPS": func(results []benchmark.ThroughputResult, threads int) float64 {
		max := 0.0
		for _, r := range results {
			if r.QPS[threads] > max {
				max = r.QPS[threads]
			}
		}
		return max
	},
	"maxOverhead": func(results []benchmark.MemoryResult) float64 {
		max := int64(0)
		for _, r := range results {
			if r.BytesPerItem > max {
				max = r.BytesPerItem
			}
		}
		return float64(max)
	},
	"mb": func(b uint64) string {
		return fmt.Sprintf("%.2f", float64(b)/1024/1024)
	},
	"toFloatInt": func(b int64) float64 { return float64(b) },
}

var cacheColors = map[string]string{
	"lru":           "#AFB42B",
	"lfu":           "#2E7D32",
	"synclru":       "#6A1B9A",
	"hashicorp":     "#9E9D24",
	"otter":         "#1976D2",
	"theine":        "#D32F2F",
	"ristretto":     "#7B1FA2",
	"freecache":     "#F57C00",
	"freelru-shard": "#0288D1",
	"freelru-sync":  "#00796B",
	"tinylfu":       "#C2185B",
	"sieve":         "#5D4037",
	"s3-fifo":       "#455A64",
	"2q":            "#E64A19",
	"s4lru":         "#512DA8",
	"clock":         "#00695C",
	"ttlcache":      "#0097A7",
}
