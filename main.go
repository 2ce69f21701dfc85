// cachelab benchmarks LRU and LFU cache implementations against the Go
// caching ecosystem.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/tstromberg/cachelab/internal/benchmark"
	"github.com/tstromberg/cachelab/internal/cache"
	"github.com/tstromberg/cachelab/internal/output"
	"github.com/tstromberg/cachelab/internal/trace"
)

// testFilter holds which tests to run.
var testFilter map[string]bool

// cacheSizes holds the cache sizes to benchmark.
var cacheSizes []int

// threadCounts holds the thread counts for throughput benchmarks.
var threadCounts []int

// tracePath holds the access trace file for the trace hit rate test.
var tracePath string

// validSuites lists all available benchmark suites.
var validSuites = []string{"hitrate", "latency", "throughput", "memory"}

// parseIntList parses a comma-separated string of integers with optional multiplier.
func parseIntList(input string, multiplier int) []int {
	var result []int
	for s := range strings.SplitSeq(input, ",") {
		s = strings.TrimSpace(s)
		var value int
		if _, err := fmt.Sscanf(s, "%d", &value); err == nil {
			result = append(result, value*multiplier)
		}
	}
	return result
}

// printLatencyTable prints a formatted latency results table with winner.
func printLatencyTable(results []benchmark.LatencyResult) {
	avgLatency := func(r benchmark.LatencyResult) float64 {
		return (r.GetNsOp + r.SetNsOp) / 2
	}

	sorted := make([]benchmark.LatencyResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return avgLatency(sorted[i]) < avgLatency(sorted[j])
	})

	fmt.Println("  | Cache         | Get ns | Get alloc | Set ns | Set alloc | SetEvict ns | SetEvict alloc | Avg ns |")
	fmt.Println("  |---------------|--------|-----------|--------|-----------|-------------|----------------|--------|")

	for _, r := range sorted {
		fmt.Printf("  | %-13s | %6.0f | %9d | %6.0f | %9d | %11.0f | %14d | %6.0f |\n",
			r.Name, r.GetNsOp, r.GetAllocs, r.SetNsOp, r.SetAllocs, r.SetEvictNsOp, r.SetEvictAllocs, avgLatency(r))
	}

	if len(sorted) >= 2 {
		best := sorted[0]
		second := sorted[1]
		pct := (avgLatency(second) - avgLatency(best)) / avgLatency(best) * 100
		fmt.Printf("\n  winner: %s (%.0f ns avg, %s is %.1f%% slower)\n", best.Name, avgLatency(best), second.Name, pct)
	}
	fmt.Println()
}

// printGetOrSetTable prints a GetOrSet latency table with winner.
func printGetOrSetTable(results []benchmark.GetOrSetLatencyResult) {
	sorted := make([]benchmark.GetOrSetLatencyResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].NsOp < sorted[j].NsOp
	})

	fmt.Println("  | Cache         | GetOrSet ns | GetOrSet alloc |")
	fmt.Println("  |---------------|-------------|----------------|")

	for _, r := range sorted {
		fmt.Printf("  | %-13s | %11.0f | %14d |\n", r.Name, r.NsOp, r.Allocs)
	}

	if len(sorted) >= 2 {
		best := sorted[0]
		second := sorted[1]
		pct := (second.NsOp - best.NsOp) / best.NsOp * 100
		fmt.Printf("\n  winner: %s (%.0f ns, %s is %.1f%% slower)\n", best.Name, best.NsOp, second.Name, pct)
	}
	fmt.Println()
}

// validTests lists all available test names.
var validTests = []string{
	// hitrate
	"zipf", "loop", "uniform", "trace",
	// latency
	"string", "int", "getorset",
	// throughput
	"mixed-throughput", "get-throughput", "set-throughput", "int-mixed-throughput", "getorset-throughput",
	// memory
	"memory",
}

// suiteFilter holds which suites to run.
var suiteFilter map[string]bool

func main() {
	showHelp := flag.Bool("help", false, "Show help message")
	suites := flag.String("suites", "all", "Comma-separated list of benchmark suites: hitrate,latency,throughput,memory (default: all)")
	htmlOut := flag.String("html", "", "Output results to HTML file (e.g., results.html)")
	outDir := flag.String("outdir", "", "Output directory for results (writes results.html and results.md)")
	openHTML := flag.Bool("open", false, "Open HTML report in web browser after generation")
	caches := flag.String("caches", "", "Comma-separated list of caches to benchmark (default: all)")
	tests := flag.String("tests", "", "Comma-separated list of tests to run across suites (default: all)")
	sizes := flag.String("sizes", "", "Comma-separated cache sizes in K (e.g., 16,32,64,128,256)")
	threads := flag.String("threads", "", "Comma-separated thread counts for throughput (e.g., 8,16)")
	traceFile := flag.String("trace", "", "Access trace file for the trace hit rate test (plain or zstd, one key per line)")
	flag.Parse()

	if *showHelp {
		printUsage()
		os.Exit(0)
	}

	// Parse suites
	suiteFilter = make(map[string]bool)
	if *suites == "all" || *suites == "" {
		for _, s := range validSuites {
			suiteFilter[s] = true
		}
	} else {
		for s := range strings.SplitSeq(*suites, ",") {
			s = strings.TrimSpace(strings.ToLower(s))
			if s != "" {
				suiteFilter[s] = true
			}
		}
	}

	// Apply cache filter
	if *caches != "" {
		var names []string
		for name := range strings.SplitSeq(*caches, ",") {
			names = append(names, strings.TrimSpace(name))
		}
		cache.SetFilter(names)
	}

	// Apply test filter
	if *tests != "" {
		testFilter = make(map[string]bool)
		validTestSet := make(map[string]bool)
		for _, t := range validTests {
			validTestSet[t] = true
		}
		for t := range strings.SplitSeq(*tests, ",") {
			t = strings.TrimSpace(strings.ToLower(t))
			if t == "" {
				continue
			}
			if !validTestSet[t] {
				fmt.Fprintf(os.Stderr, "error: unknown test %q\n\nAvailable tests:\n", t)
				for _, vt := range validTests {
					fmt.Fprintf(os.Stderr, "  %s\n", vt)
				}
				os.Exit(1)
			}
			testFilter[t] = true
		}
	}

	// Apply cache sizes
	cacheSizes = benchmark.DefaultCacheSizes
	if *sizes != "" {
		cacheSizes = parseIntList(*sizes, 1024)
	}

	// Apply thread counts
	threadCounts = benchmark.DefaultThreadCounts
	if *threads != "" {
		threadCounts = parseIntList(*threads, 1)
	}

	tracePath = *traceFile

	printHeader()

	var results output.Results

	if suiteFilter["hitrate"] {
		results.HitRate = runHitRateBenchmarks()
	}

	if suiteFilter["latency"] {
		results.Latency = runLatencyBenchmarks()
	}

	if suiteFilter["throughput"] {
		results.Throughput = runThroughputBenchmarks()
	}

	if suiteFilter["memory"] {
		results.Memory = runMemoryBenchmarks()
	}

	results.Rankings, results.MedalTable = output.ComputeRankings(results)
	printOverallRanking(results.Rankings)

	// Build command line string and set machine info
	commandLine := "cachelab " + strings.Join(os.Args[1:], " ")
	results.MachineInfo = output.MachineInfo{
		OS:          runtime.GOOS,
		Arch:        runtime.GOARCH,
		NumCPU:      runtime.NumCPU(),
		GoVersion:   runtime.Version(),
		CommandLine: commandLine,
	}

	// Determine output paths
	var htmlPath, mdPath, jsonPath string
	if *outDir != "" { //nolint:gocritic // ifElseChain: clearer than switch for exclusive conditions
		if err := os.MkdirAll(*outDir, 0o755); err != nil { //nolint:gosec // G301: 0755 is standard dir permission
			fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
			os.Exit(1)
		}
		htmlPath = filepath.Join(*outDir, "cachelab_results.html")
		mdPath = filepath.Join(*outDir, "cachelab_results.md")
		jsonPath = filepath.Join(*outDir, "cachelab_results.json")
	} else if *htmlOut != "" {
		htmlPath = *htmlOut
	} else {
		htmlPath = filepath.Join(os.TempDir(), "cachelab_results.html")
	}

	if err := output.WriteHTML(htmlPath, results, commandLine); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing HTML: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Results: %s\n", htmlPath)

	if mdPath != "" {
		if err := output.WriteMarkdown(mdPath, results, commandLine); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing Markdown: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("         %s\n", mdPath)
	}

	if jsonPath != "" {
		if err := output.WriteJSON(jsonPath, results, commandLine); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("         %s\n", jsonPath)
	}

	if *openHTML {
		if err := openBrowser(htmlPath); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not open browser: %v\n", err)
		}
	}
}

func printUsage() {
	fmt.Println("cachelab - Compare Go cache implementations")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  cachelab                         Run all benchmarks (default)")
	fmt.Println("  cachelab -suites hitrate         Run only hit rate benchmarks")
	fmt.Println("  cachelab -suites latency,memory  Run latency and memory benchmarks")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -suites <list>   Comma-separated suites: hitrate,latency,throughput,memory (default: all)")
	fmt.Println("  -tests <list>    Comma-separated tests to run across suites (default: all)")
	fmt.Println("  -caches <list>   Comma-separated caches to benchmark (default: all)")
	fmt.Println("  -sizes <list>    Comma-separated cache sizes in K (default: 16,32,64,128,256)")
	fmt.Println("  -threads <list>  Comma-separated thread counts for throughput (default: 1,8,16,32)")
	fmt.Println("  -trace <file>    Access trace for the trace hit rate test (plain or zstd, one key per line)")
	fmt.Println("  -outdir <dir>    Output directory for cachelab_results.{html,md,json}")
	fmt.Println("  -html <file>     Output results to HTML file (default: temp dir)")
	fmt.Println("  -open            Open HTML report in web browser after generation")
	fmt.Println()
	fmt.Println("Available suites and tests:")
	fmt.Println()
	fmt.Println("  hitrate - Hit rate benchmarks (cache efficiency)")
	fmt.Println("    zipf                    Synthetic Zipf distribution")
	fmt.Println("    loop                    Sequential loop scan (recency-adversarial)")
	fmt.Println("    uniform                 Uniform random keys")
	fmt.Println("    trace                   Access trace replay (requires -trace)")
	fmt.Println()
	fmt.Println("  latency - Single-threaded latency benchmarks (ns/op)")
	fmt.Println("    string                  String key Get/Set operations")
	fmt.Println("    int                     Int key Get/Set operations")
	fmt.Println("    getorset                GetOrSet operations (string keys)")
	fmt.Println()
	fmt.Println("  throughput - Multi-threaded throughput benchmarks (QPS)")
	fmt.Println("    mixed-throughput        String keys, 75% Get / 25% Set")
	fmt.Println("    get-throughput          String keys, Get only")
	fmt.Println("    set-throughput          String keys, Set only")
	fmt.Println("    int-mixed-throughput    Int keys, 75% Get / 25% Set")
	fmt.Println("    getorset-throughput     GetOrSet operations (string keys)")
	fmt.Println()
	fmt.Println("  memory - Memory overhead benchmarks (isolated processes)")
	fmt.Println("    memory                  Per-item memory overhead")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  cachelab -suites latency -tests int -caches lru,lfu,synclru")
	fmt.Println("  cachelab -suites hitrate -tests zipf,loop")
	fmt.Println("  cachelab -suites hitrate -tests trace -trace access.log.zst")
	fmt.Println("  cachelab -caches otter,theine -html results.html")
	fmt.Println()
	fmt.Println("Available caches:")
	for _, name := range cache.AvailableNames() {
		fmt.Printf("  - %s\n", name)
	}
}

const lineWidth = 80

func printHeader() {
	fmt.Println("cachelab")
	fmt.Println()

	// Build config summary
	var suitesRun []string
	for _, s := range validSuites {
		if suiteFilter[s] {
			suitesRun = append(suitesRun, s)
		}
	}

	fmt.Printf("  caches: %d\n", len(cache.AllNames()))
	fmt.Printf("  suites: %s\n", strings.Join(suitesRun, ", "))

	var sizeStrs []string
	for _, size := range cacheSizes {
		sizeStrs = append(sizeStrs, fmt.Sprintf("%dK", size/1024))
	}
	fmt.Printf("  sizes:  %s\n", strings.Join(sizeStrs, ", "))
	fmt.Println()
}

func printSuite(name, description string) {
	header := fmt.Sprintf("%s: %s ", name, description)
	padding := max(lineWidth-len(header), 4)
	fmt.Printf("%s%s\n\n", header, strings.Repeat("─", padding))
}

func printTest(name, description string) {
	fmt.Printf("  [%s] %s\n\n", name, description)
}

func shouldRunTest(name string) bool {
	if testFilter == nil {
		return true
	}
	return testFilter[name]
}

func runHitRateBenchmarks() *output.HitRateData {
	sizes := cacheSizes
	data := &output.HitRateData{Sizes: sizes}

	printSuite("hitrate", "cache efficiency")

	if shouldRunTest("zipf") {
		printTest("zipf", "Zipf synthetic (theta=0.8, 2M ops, 100K keyspace)")
		zipfResults := benchmark.RunZipfHitRate(sizes, benchmark.DefaultZipfKeySpace, benchmark.DefaultZipfOps, benchmark.DefaultZipfTheta)
		data.Zipf = zipfResults
		printHitRateTable(zipfResults, sizes)
	}

	if shouldRunTest("loop") {
		printTest("loop", "sequential loop scan (2M ops, 125K keyspace)")
		loopResults := benchmark.RunLoopHitRate(sizes, benchmark.DefaultLoopKeySpace, benchmark.DefaultLoopOps)
		data.Loop = loopResults
		printHitRateTable(loopResults, sizes)
	}

	if shouldRunTest("uniform") {
		printTest("uniform", "uniform random (2M ops, 1M keyspace)")
		uniformResults := benchmark.RunUniformHitRate(sizes, benchmark.DefaultUniformKeySpace, benchmark.DefaultUniformOps)
		data.Uniform = uniformResults
		printHitRateTable(uniformResults, sizes)
	}

	if shouldRunTest("trace") {
		switch {
		case tracePath == "" && testFilter != nil:
			// Asked for explicitly but no trace supplied.
			printTest("trace", "access trace replay")
			fmt.Println("  (no trace file; use -trace <file>)")
			fmt.Println()
		case tracePath != "":
			info, err := trace.Info(tracePath)
			if err != nil {
				printTest("trace", filepath.Base(tracePath))
				fmt.Printf("  error: %v\n\n", err)
				break
			}
			printTest("trace", info)
			traceResults, err := benchmark.RunTraceHitRate(sizes, tracePath)
			if err != nil {
				fmt.Printf("  error: %v\n\n", err)
			} else {
				data.Trace = traceResults
				data.TraceName = filepath.Base(tracePath)
				printHitRateTable(traceResults, sizes)
			}
		}
	}

	return data
}

func printHitRateTable(results []benchmark.HitRateResult, sizes []int) {
	sorted := make([]benchmark.HitRateResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		return output.AvgHitRate(sorted[i], sizes) > output.AvgHitRate(sorted[j], sizes)
	})

	fmt.Print("  | Cache         |")
	for _, size := range sizes {
		fmt.Printf(" %5dK |", size/1024)
	}
	fmt.Println("    Avg |")

	fmt.Print("  |---------------|")
	for range sizes {
		fmt.Print("--------|")
	}
	fmt.Println("--------|")

	for _, r := range sorted {
		fmt.Printf("  | %-13s |", r.Name)
		for _, size := range sizes {
			fmt.Printf(" %5.2f%% |", r.Rates[size])
		}
		fmt.Printf(" %5.2f%% |\n", output.AvgHitRate(r, sizes))
	}

	if len(sorted) >= 2 {
		best := sorted[0]
		second := sorted[1]
		bestAvg := output.AvgHitRate(best, sizes)
		secondAvg := output.AvgHitRate(second, sizes)
		pct := (bestAvg - secondAvg) / secondAvg * 100
		fmt.Printf("\n  winner: %s (%.2f%% avg, +%.2f%% vs %s)\n", best.Name, bestAvg, pct, second.Name)
	}
	fmt.Println()
}

func runLatencyBenchmarks() *output.LatencyData {
	printSuite("latency", "single-threaded (ns/op)")

	data := &output.LatencyData{}

	if shouldRunTest("string") {
		printTest("string", "string key Get/Set operations")
		results := benchmark.RunLatency()
		data.Results = results
		printLatencyTable(results)
	}

	if shouldRunTest("int") {
		printTest("int", "int key Get/Set operations")
		results := benchmark.RunIntLatency()
		data.IntResults = results
		printLatencyTable(results)
	}

	if shouldRunTest("getorset") {
		printTest("getorset", "GetOrSet operations (string keys)")
		results := benchmark.RunGetOrSetLatency()
		data.GetOrSetResults = results

		if len(results) == 0 {
			fmt.Println("  (no caches with GetOrSet support)")
			fmt.Println()
		} else {
			printGetOrSetTable(results)
		}

		intResults := benchmark.RunIntGetOrSetLatency()
		data.IntGetOrSetResults = intResults

		if len(intResults) > 0 {
			printTest("getorset", "GetOrSet operations (int keys)")
			printGetOrSetTable(intResults)
		}
	}

	return data
}

func runThroughputBenchmarks() *output.ThroughputData {
	threads := threadCounts

	printSuite("throughput", "multi-threaded (QPS)")

	data := &output.ThroughputData{Threads: threads}

	avgQPS := func(r benchmark.ThroughputResult) float64 {
		var sum float64
		for _, t := range threads {
			sum += r.QPS[t]
		}
		return sum / float64(len(threads))
	}

	printThroughputTable := func(results []benchmark.ThroughputResult) {
		sorted := make([]benchmark.ThroughputResult, len(results))
		copy(sorted, results)
		sort.Slice(sorted, func(i, j int) bool {
			return avgQPS(sorted[i]) > avgQPS(sorted[j])
		})

		fmt.Print("  | Cache         |")
		for _, t := range threads {
			fmt.Printf(" %2dT       |", t)
		}
		fmt.Println("       Avg |")

		fmt.Print("  |---------------|")
		for range threads {
			fmt.Print("-----------|")
		}
		fmt.Println("-----------|")

		for _, r := range sorted {
			fmt.Printf("  | %-13s |", r.Name)
			for _, t := range threads {
				qps := r.QPS[t]
				if qps >= 1_000_000 {
					fmt.Printf(" %6.2fM   |", qps/1_000_000)
				} else {
					fmt.Printf(" %6.0fK   |", qps/1_000)
				}
			}
			avg := avgQPS(r)
			if avg >= 1_000_000 {
				fmt.Printf(" %6.2fM   |\n", avg/1_000_000)
			} else {
				fmt.Printf(" %6.0fK   |\n", avg/1_000)
			}
		}

		if len(sorted) >= 2 {
			best := sorted[0]
			second := sorted[1]
			bestAvg := avgQPS(best)
			secondAvg := avgQPS(second)
			pct := (bestAvg - secondAvg) / secondAvg * 100
			fmt.Printf("\n  winner: %s (+%.1f%% vs %s)\n", best.Name, pct, second.Name)
		}
		fmt.Println()
	}

	cacheSize := benchmark.ThroughputCacheSize

	if shouldRunTest("mixed-throughput") {
		printTest("mixed-throughput", fmt.Sprintf("string keys, 75%% Get / 25%% Set, Zipf, %d-item cache", cacheSize))
		data.MixedResults = benchmark.RunMixedThroughput(threads)
		printThroughputTable(data.MixedResults)
	}

	if shouldRunTest("get-throughput") {
		printTest("get-throughput", fmt.Sprintf("string keys, Get only, Zipf, %d-item cache", cacheSize))
		data.GetResults = benchmark.RunGetThroughput(threads)
		printThroughputTable(data.GetResults)
	}

	if shouldRunTest("set-throughput") {
		printTest("set-throughput", fmt.Sprintf("string keys, Set only, Zipf, %d-item cache", cacheSize))
		data.SetResults = benchmark.RunSetThroughput(threads)
		printThroughputTable(data.SetResults)
	}

	if shouldRunTest("int-mixed-throughput") {
		printTest("int-mixed-throughput", fmt.Sprintf("int keys, 75%% Get / 25%% Set, Zipf, %d-item cache", cacheSize))
		data.IntMixedResults = benchmark.RunIntMixedThroughput(threads)
		printThroughputTable(data.IntMixedResults)
	}

	if shouldRunTest("getorset-throughput") {
		printTest("getorset-throughput", fmt.Sprintf("GetOrSet operations (string keys), %d-item cache", cacheSize))
		data.GetOrSetResults = benchmark.RunGetOrSetThroughput(threads)
		if len(data.GetOrSetResults) > 0 {
			printThroughputTable(data.GetOrSetResults)
		} else {
			fmt.Println("  (no caches with GetOrSet support)")
			fmt.Println()
		}
	}

	return data
}

func runMemoryBenchmarks() *output.MemoryData {
	capacity := benchmark.DefaultMemoryCapacity
	valSize := benchmark.DefaultValueSize

	printSuite("memory", "overhead per item (isolated processes)")

	if !shouldRunTest("memory") {
		return nil
	}

	printTest("memory", fmt.Sprintf("%d items, %d byte values", capacity, valSize))

	results, err := benchmark.RunMemory(capacity, valSize)
	if err != nil {
		fmt.Printf("  error: %v\n\n", err)
		return nil
	}

	fmt.Println("  | Cache         | Items Stored | Memory (MB) | Overhead (bytes/item) |")
	fmt.Println("  |---------------|--------------|-------------|-----------------------|")

	for _, r := range results {
		mb := float64(r.Bytes) / 1024 / 1024
		fmt.Printf("  | %-13s | %12d | %11.2f | %21d |\n",
			r.Name, r.Items, mb, r.BytesPerItem)
	}

	if len(results) >= 2 {
		best := results[0]
		second := results[1]
		savings := float64(second.Bytes-best.Bytes) / float64(second.Bytes) * 100
		fmt.Printf("\n  winner: %s (%.1f%% less memory vs %s)\n", best.Name, savings, second.Name)
	}
	fmt.Println()

	return &output.MemoryData{Results: results, Capacity: capacity, ValSize: valSize}
}

func printOverallRanking(rankings []output.Ranking) {
	if len(rankings) == 0 {
		return
	}

	printSuite("summary", "ranked voting across all tests")

	for i := 0; i < len(rankings) && i < 3; i++ {
		r := rankings[i]
		fmt.Printf("  #%d  %s (%.0f points)\n", r.Rank, r.Name, r.Score)
	}
	fmt.Println()
}

// openBrowser opens the specified path in the default web browser.
func openBrowser(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", path) //nolint:noctx // trusted command, fire-and-forget
	case "linux":
		cmd = exec.Command("xdg-open", path) //nolint:noctx // trusted command, fire-and-forget
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", path) //nolint:noctx // trusted command, fire-and-forget
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
	return cmd.Start()
}
