package output

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tstromberg/cachelab/internal/benchmark"
)

// WriteMarkdown writes benchmark results to a Markdown file.
func WriteMarkdown(filename string, results Results, commandLine string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	w := func(format string, args ...any) {
		fmt.Fprintf(f, format, args...)
	}

	w("# cachelab Results\n\n")
	w("```\n")
	w("Command: %s\n", commandLine)
	w("Environment: %s/%s, %d CPUs, %s\n", results.MachineInfo.OS, results.MachineInfo.Arch, results.MachineInfo.NumCPU, results.MachineInfo.GoVersion)
	w("```\n\n")

	// Hit Rate
	if results.HitRate != nil {
		w("## Hit Rate Benchmarks\n\n")
		writeHitRateMarkdown(w, "Zipf", results.HitRate.Zipf, results.HitRate.Sizes)
		writeHitRateMarkdown(w, "Loop Scan", results.HitRate.Loop, results.HitRate.Sizes)
		writeHitRateMarkdown(w, "Uniform", results.HitRate.Uniform, results.HitRate.Sizes)
		traceName := "Trace"
		if results.HitRate.TraceName != "" {
			traceName = "Trace (" + results.HitRate.TraceName + ")"
		}
		writeHitRateMarkdown(w, traceName, results.HitRate.Trace, results.HitRate.Sizes)
	}

	// Latency
	if results.Latency != nil {
		w("## Latency Benchmarks\n\n")
		writeLatencyMarkdown(w, "String Keys", results.Latency.Results)
		writeLatencyMarkdown(w, "Int Keys", results.Latency.IntResults)
		writeGetOrSetLatencyMarkdown(w, "GetOrSet", results.Latency.GetOrSetResults)
		writeGetOrSetLatencyMarkdown(w, "Int GetOrSet", results.Latency.IntGetOrSetResults)
	}

	// Throughput
	if results.Throughput != nil {
		w("## Throughput Benchmarks\n\n")
		writeThroughputMarkdown(w, "Mixed", results.Throughput.MixedResults, results.Throughput.Threads)
		writeThroughputMarkdown(w, "Get", results.Throughput.GetResults, results.Throughput.Threads)
		writeThroughputMarkdown(w, "Set", results.Throughput.SetResults, results.Throughput.Threads)
		writeThroughputMarkdown(w, "Int Mixed", results.Throughput.IntMixedResults, results.Throughput.Threads)
		writeThroughputMarkdown(w, "GetOrSet", results.Throughput.GetOrSetResults, results.Throughput.Threads)
	}

	// Memory
	if results.Memory != nil && len(results.Memory.Results) > 0 {
		w("## Memory Benchmarks\n\n")
		writeMemoryMarkdown(w, results.Memory.Results)
	}

	// Rankings
	if len(results.Rankings) > 0 {
		w("## Overall Rankings\n\n")
		w("| Rank | Cache         | Score | Gold | Silver | Bronze |\n")
		w("|------|---------------|-------|------|--------|--------|\n")
		for _, r := range results.Rankings {
			w("| %4d | %-13s | %5.0f | %4d | %6d | %6d |\n", r.Rank, r.Name, r.Score, r.Gold, r.Silver, r.Bronze)
		}
		w("\n")
	}

	return nil
}

// writeWinnerLine prints the winner(s) and the margin over the first
// non-tied runner-up. Entries must be pre-sorted best first.
func writeWinnerLine(w func(string, ...any), entries []WinnerEntry, lowerIsBetter bool) {
	winners, runnerUp := FormatWinners(entries)
	if runnerUp == nil {
		return
	}
	best := entries[0].Score
	var pct float64
	if lowerIsBetter {
		pct = ((runnerUp.Score - best) / best) * 100
	} else {
		pct = ((best - runnerUp.Score) / runnerUp.Score) * 100
	}
	label := "winner"
	if len(winners) > 1 {
		label = "winners"
	}
	w("\n  %s: %s (+%.1f%% vs %s)\n", label, strings.Join(winners, ", "), pct, runnerUp.Name)
}

func writeHitRateMarkdown(w func(string, ...any), name string, data []benchmark.HitRateResult, sizes []int) {
	if len(data) == 0 {
		return
	}

	w("### %s\n\n", name)

	// Header
	w("| Cache         |")
	for _, size := range sizes {
		w(" %5dK |", size/1024)
	}
	w("    Avg |\n")

	// Separator
	w("|---------------|")
	for range sizes {
		w("--------|")
	}
	w("--------|\n")

	// Sort by average
	sorted := make([]benchmark.HitRateResult, len(data))
	copy(sorted, data)
	sort.Slice(sorted, func(i, j int) bool {
		return AvgHitRate(sorted[i], sizes) > AvgHitRate(sorted[j], sizes)
	})

	// Data rows
	entries := make([]WinnerEntry, len(sorted))
	for i, r := range sorted {
		w("| %-13s |", r.Name)
		for _, size := range sizes {
			w(" %5.2f%% |", r.Rates[size])
		}
		w(" %5.2f%% |\n", AvgHitRate(r, sizes))
		entries[i] = WinnerEntry{Name: r.Name, Score: AvgHitRate(r, sizes)}
	}

	writeWinnerLine(w, entries, false)
	w("\n")
}

func writeLatencyMarkdown(w func(string, ...any), name string, data []benchmark.LatencyResult) {
	if len(data) == 0 {
		return
	}

	w("### %s\n\n", name)
	w("| Cache         | Get ns | Get alloc | Set ns | Set alloc | SetEvict ns | SetEvict alloc | Avg ns |\n")
	w("|---------------|--------|-----------|--------|-----------|-------------|----------------|--------|\n")

	sorted := make([]benchmark.LatencyResult, len(data))
	copy(sorted, data)
	sort.Slice(sorted, func(i, j int) bool {
		return (sorted[i].GetNsOp + sorted[i].SetNsOp) < (sorted[j].GetNsOp + sorted[j].SetNsOp)
	})

	entries := make([]WinnerEntry, len(sorted))
	for i, r := range sorted {
		avg := (r.GetNsOp + r.SetNsOp) / 2
		w("| %-13s | %6.0f | %9d | %6.0f | %9d | %11.0f | %14d | %6.0f |\n",
			r.Name, r.GetNsOp, r.GetAllocs, r.SetNsOp, r.SetAllocs, r.SetEvictNsOp, r.SetEvictAllocs, avg)
		entries[i] = WinnerEntry{Name: r.Name, Score: avg}
	}

	writeWinnerLine(w, entries, true)
	w("\n")
}

func writeGetOrSetLatencyMarkdown(w func(string, ...any), name string, data []benchmark.GetOrSetLatencyResult) {
	if len(data) == 0 {
		return
	}

	w("### %s\n\n", name)
	w("| Cache         | GetOrSet ns | GetOrSet alloc |\n")
	w("|---------------|-------------|----------------|\n")

	sorted := make([]benchmark.GetOrSetLatencyResult, len(data))
	copy(sorted, data)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].NsOp < sorted[j].NsOp
	})

	entries := make([]WinnerEntry, len(sorted))
	for i, r := range sorted {
		w("| %-13s | %11.0f | %14d |\n", r.Name, r.NsOp, r.Allocs)
		entries[i] = WinnerEntry{Name: r.Name, Score: r.NsOp}
	}

	writeWinnerLine(w, entries, true)
	w("\n")
}

func writeThroughputMarkdown(w func(string, ...any), name string, data []benchmark.ThroughputResult, threads []int) {
	if len(data) == 0 {
		return
	}

	w("### %s\n\n", name)

	// Header
	w("| Cache         |")
	for _, t := range threads {
		w(" %2dT       |", t)
	}
	w("       Avg |\n")

	// Separator
	w("|---------------|")
	for range threads {
		w("-----------|")
	}
	w("-----------|\n")

	// Sort by average
	sorted := make([]benchmark.ThroughputResult, len(data))
	copy(sorted, data)
	sort.Slice(sorted, func(i, j int) bool {
		return avgQPS(sorted[i]) > avgQPS(sorted[j])
	})

	// Data rows
	entries := make([]WinnerEntry, len(sorted))
	for i, r := range sorted {
		w("| %-13s |", r.Name)
		for _, t := range threads {
			qps := r.QPS[t]
			if qps >= 1_000_000 {
				w(" %6.2fM   |", qps/1_000_000)
			} else {
				w(" %6.0fK   |", qps/1_000)
			}
		}
		avg := avgQPS(r)
		if avg >= 1_000_000 {
			w(" %6.2fM   |\n", avg/1_000_000)
		} else {
			w(" %6.0fK   |\n", avg/1_000)
		}
		entries[i] = WinnerEntry{Name: r.Name, Score: avg}
	}

	writeWinnerLine(w, entries, false)
	w("\n")
}

func writeMemoryMarkdown(w func(string, ...any), data []benchmark.MemoryResult) {
	if len(data) == 0 {
		return
	}

	w("| Cache         | Items Stored | Memory (MB) | Overhead (bytes/item) |\n")
	w("|---------------|--------------|-------------|-----------------------|\n")

	// Results arrive sorted by bytes ascending.
	entries := make([]WinnerEntry, len(data))
	for i, r := range data {
		mb := float64(r.Bytes) / 1024 / 1024
		w("| %-13s | %12d | %11.2f | %21d |\n", r.Name, r.Items, mb, r.BytesPerItem)
		entries[i] = WinnerEntry{Name: r.Name, Score: float64(r.Bytes)}
	}

	writeWinnerLine(w, entries, true)
	w("\n")
}
