// Package benchmark times the three solver families
// (internal/solvers.ShiftBrute, Vigenere, SubstitutionHillClimb /
// SubstitutionAnnealing) against a fixed sample ciphertext, the way the
// teacher's benchmark package timed its HMAC and PBKDF algorithm
// families: per-algorithm timing loop, platform info, and an ASCII bar
// chart, retargeted from hash/KDF throughput to classical-cipher
// solver latency.
package benchmark

import (
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/tjanssen/cryptanalyst/internal/dictionary"
	"github.com/tjanssen/cryptanalyst/internal/langmodel"
	"github.com/tjanssen/cryptanalyst/internal/solvers"
	"github.com/tjanssen/cryptanalyst/internal/utils"
)

// sampleCiphertext is a Caesar-shift-7 encoding of a long pangram-style
// plaintext, long enough to give the substitution solvers a realistic
// n-gram signal without the benchmark itself taking more than a few
// seconds per algorithm.
const sampleCiphertext = "AOL XBPJR IYVDU MVE QBTWZ VCLY AOL SHGF KVN HUK YBUZ HDHF PUAV AOL MVYLZA DOPSL AOL JHA DHAJOLZ MYVT H ULHYIF MLUJL WVZA"

// BenchmarkResult is one algorithm's timing outcome, mirroring the
// teacher's BenchmarkResult shape field for field.
type BenchmarkResult struct {
	name         string
	duration     time.Duration
	memoryUsage  uint64
	allocations  uint64
	platformInfo PlatformInfo
}

// PlatformInfo contains information about the system running the benchmark
type PlatformInfo struct {
	OS           string
	Architecture string
	CPUCount     int
	GoVersion    string
}

func getPlatformInfo() PlatformInfo {
	return PlatformInfo{
		OS:           runtime.GOOS,
		Architecture: runtime.GOARCH,
		CPUCount:     runtime.NumCPU(),
		GoVersion:    runtime.Version(),
	}
}

// solverKinds is the portfolio timed by RunSolverBenchmark, in display
// order. Each solver runs through solvers.Registry with its production
// iteration constants; the benchmark does not lower them.
var solverKinds = []solvers.Kind{
	solvers.ShiftBrute,
	solvers.Vigenere,
	solvers.SubstitutionHillClimb,
	solvers.SubstitutionAnnealing,
}

// RunSolverBenchmark times each solver in solverKinds against the fixed
// sample ciphertext, `iterations` times each, and returns the rendered
// visualizer steps the way the teacher's RunHMACBenchmark/
// RunPBKDFBenchmark returned theirs. models and dict supply the English
// language resources every solver needs; dict may be nil to benchmark
// without dictionary-coverage scoring.
func RunSolverBenchmark(models *langmodel.Store, dict *dictionary.Dictionary, iterations int) (string, []string, error) {
	v := utils.NewVisualizer()
	setupBenchmark(v, "Solver")

	model, ok := models.Get(langmodel.English)
	if !ok {
		return "", nil, fmt.Errorf("benchmark: english language model not loaded")
	}

	v.AddStep(fmt.Sprintf("Running benchmark with %d iterations...", iterations))
	v.AddStep(fmt.Sprintf("Sample ciphertext: %s", sampleCiphertext))
	v.AddSeparator()

	results := runSolverTimings(solverKinds, sampleCiphertext, model, dict, iterations)
	displaySolverResults(v, results, iterations)
	return "", v.GetSteps(), nil
}

func setupBenchmark(v *utils.Visualizer, name string) {
	v.AddStep(fmt.Sprintf("%s Benchmark", name))
	v.AddStep("=============================")
	v.AddNote(fmt.Sprintf("This benchmark will test every available %s family", name))
	v.AddNote("Each solver runs against the same fixed sample ciphertext")
	v.AddSeparator()
}

func runSolverTimings(
	kinds []solvers.Kind,
	ciphertext string,
	model *langmodel.Model,
	dict *dictionary.Dictionary,
	iterations int,
) []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(kinds))
	platformInfo := getPlatformInfo()

	done := make(chan bool)
	go showLoadingAnimation(done)

	for _, kind := range kinds {
		runner, ok := solvers.Registry[kind]
		if !ok {
			continue
		}

		// Warm-up run outside the timed loop, matching the teacher's
		// pattern of one untimed Process call before the timing loop.
		ctx := context.Background()
		if _, err := runner(ctx, ciphertext, model, dict, nil); err != nil {
			continue
		}

		var m runtime.MemStats
		runtime.ReadMemStats(&m)
		startAllocs := m.TotalAlloc
		startMemory := m.Alloc

		start := time.Now()
		for j := 0; j < iterations; j++ {
			if _, err := runner(ctx, ciphertext, model, dict, nil); err != nil {
				break
			}
		}
		duration := time.Since(start)

		runtime.ReadMemStats(&m)
		memoryUsage := m.Alloc - startMemory
		allocations := m.TotalAlloc - startAllocs

		results = append(results, BenchmarkResult{
			name:         string(kind),
			duration:     duration,
			memoryUsage:  memoryUsage,
			allocations:  allocations,
			platformInfo: platformInfo,
		})
	}

	done <- true
	sort.Slice(results, func(i, j int) bool {
		return results[i].duration < results[j].duration
	})

	return results
}

func showLoadingAnimation(done chan bool) {
	loadingChars := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	i := 0
	for {
		select {
		case <-done:
			fmt.Print("\r\033[K")
			return
		default:
			fmt.Printf("\r%s Running benchmark... %s", loadingChars[i], strings.Repeat(".", (i%5)+1))
			i = (i + 1) % len(loadingChars)
			time.Sleep(100 * time.Millisecond)
		}
	}
}

func displaySolverResults(v *utils.Visualizer, results []BenchmarkResult, iterations int) {
	if len(results) == 0 {
		v.AddStep("No solver produced a timing result.")
		return
	}

	fastestDuration := results[0].duration

	v.AddStep("Platform Information:")
	v.AddStep(fmt.Sprintf("OS: %s", results[0].platformInfo.OS))
	v.AddStep(fmt.Sprintf("Architecture: %s", results[0].platformInfo.Architecture))
	v.AddStep(fmt.Sprintf("CPU Cores: %d", results[0].platformInfo.CPUCount))
	v.AddStep(fmt.Sprintf("Go Version: %s", results[0].platformInfo.GoVersion))
	v.AddSeparator()

	v.AddStep("Benchmark Results:")
	for i, result := range results {
		avgTime := float64(result.duration.Microseconds()) / float64(iterations)
		percentageDiff := float64(result.duration) / float64(fastestDuration) * 100
		memoryPerOp := float64(result.memoryUsage) / float64(iterations)
		allocsPerOp := float64(result.allocations) / float64(iterations)

		var diffStr string
		if i == 0 {
			diffStr = " (baseline)"
		} else {
			diffStr = fmt.Sprintf(" (+%.1f%%)", percentageDiff-100)
		}

		v.AddStep(fmt.Sprintf("%d. %s:", i+1, result.name))
		v.AddStep(fmt.Sprintf("   • Time: %d ops in %dms → avg: %.1fµs%s",
			iterations,
			result.duration.Milliseconds(),
			avgTime,
			diffStr))
		v.AddStep(fmt.Sprintf("   • Memory: %.2f KB per operation", memoryPerOp/1024))
		v.AddStep(fmt.Sprintf("   • Allocations: %.1f per operation", allocsPerOp))
	}

	v.AddSeparator()
	v.AddStep("Benchmark Visual Comparison:")

	maxChars := 50
	slowest := results[len(results)-1].duration.Milliseconds()
	if slowest == 0 {
		slowest = 1
	}
	scaleFactor := float64(maxChars) / float64(slowest)

	for _, result := range results {
		avgTime := float64(result.duration.Microseconds()) / float64(iterations)
		barLength := int(float64(result.duration.Milliseconds()) * scaleFactor)
		bar := strings.Repeat("█", barLength)
		v.AddStep(fmt.Sprintf("\033[32m%-28s \033[40m%s\033[0m\033[32m (%.1fµs)\033[0m",
			result.name,
			bar,
			avgTime))
	}

	v.AddSeparator()
	v.AddStep("Recommendations:")
	v.AddStep("Fastest solver: " + results[0].name)
	leanest := results[0]
	for _, result := range results[1:] {
		if result.memoryUsage < leanest.memoryUsage {
			leanest = result
		}
	}
	v.AddStep("Most memory efficient: " + leanest.name)

	if len(results) > 1 {
		v.AddSeparator()
		v.AddStep("Performance Comparison:")
		for _, result := range results[1:] {
			v.AddStep(fmt.Sprintf("• %s is %.1f%% slower than %s",
				result.name,
				(float64(result.duration)/float64(fastestDuration)*100)-100,
				results[0].name))
		}
	}
}
