package classify

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"slices"

	"github.com/maxvaer/dirhunt/internal/scanner"
)

// calibrationProbes is the number of random paths requested to learn the
// shape of the target's not-found response.
const calibrationProbes = 5

type matchMode int

const (
	matchHashExact   matchMode = iota // all calibration bodies were byte-identical
	matchFuzzyLength                  // bodies varied but lengths converged
)

type baseline struct {
	statusCode int
	size       int64
	bodyHash   [16]byte
	wordCount  int
	lineCount  int
	mode       matchMode
}

// SmartFilter suppresses catch-all ("soft 404") responses: servers that
// answer every path, existing or not, with the same interesting status.
// It learns the catch-all shape from random paths before the run starts.
type SmartFilter struct {
	baselines []baseline
	threshold int // byte tolerance for fuzzy length matching
}

// NewSmartFilter probes calibrationProbes random paths under baseURL and
// builds baselines from the responses. Calibration requests are not
// candidates and are not counted by the run. It fails if fewer than two
// probes succeed or no status produced a stable shape.
func NewSmartFilter(ctx context.Context, p scanner.Prober, baseURL string, threshold int) (*SmartFilter, error) {
	var results []scanner.ProbeResult
	for _, path := range randomPaths(calibrationProbes) {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		res := p.Probe(ctx, scanner.JoinURL(baseURL, path))
		if res.Failed() {
			continue
		}
		results = append(results, res)
	}
	return buildSmartFilter(results, threshold)
}

func buildSmartFilter(results []scanner.ProbeResult, threshold int) (*SmartFilter, error) {
	if len(results) < 2 {
		return nil, fmt.Errorf("only %d/%d calibration probes succeeded, need at least 2", len(results), calibrationProbes)
	}

	byStatus := make(map[int][]scanner.ProbeResult)
	for _, r := range results {
		byStatus[r.StatusCode] = append(byStatus[r.StatusCode], r)
	}

	sf := &SmartFilter{threshold: threshold}
	for code, group := range byStatus {
		if b, ok := calibrate(code, group, threshold); ok {
			sf.baselines = append(sf.baselines, b)
		}
	}
	if len(sf.baselines) == 0 {
		return nil, fmt.Errorf("calibration could not establish any baselines")
	}
	return sf, nil
}

// calibrate derives a baseline from responses sharing one status code.
func calibrate(code int, group []scanner.ProbeResult, threshold int) (baseline, bool) {
	if len(group) < 2 {
		return baseline{}, false
	}

	identical := true
	for _, r := range group[1:] {
		if r.BodyHash != group[0].BodyHash {
			identical = false
			break
		}
	}
	if identical {
		return baseline{
			statusCode: code,
			size:       group[0].Size,
			bodyHash:   group[0].BodyHash,
			wordCount:  group[0].WordCount,
			lineCount:  group[0].LineCount,
			mode:       matchHashExact,
		}, true
	}

	sizes := make([]int64, len(group))
	words := make([]int, len(group))
	lines := make([]int, len(group))
	for i, r := range group {
		sizes[i], words[i], lines[i] = r.Size, r.WordCount, r.LineCount
	}
	medSize := median(sizes)
	for _, s := range sizes {
		if absDiff(s, medSize) > int64(threshold) {
			return baseline{}, false
		}
	}
	return baseline{
		statusCode: code,
		size:       medSize,
		wordCount:  median(words),
		lineCount:  median(lines),
		mode:       matchFuzzyLength,
	}, true
}

func (sf *SmartFilter) Name() string { return "smart-404" }

func (sf *SmartFilter) Suppress(result *scanner.ProbeResult) bool {
	// An empty 200 is a catch-all, not content.
	if result.StatusCode == 200 && result.Size == 0 {
		return true
	}

	for _, b := range sf.baselines {
		if result.StatusCode != b.statusCode {
			continue
		}
		if b.mode == matchHashExact {
			return result.BodyHash == b.bodyHash
		}

		// Two of three metrics must agree. Pages that echo the requested
		// path vary slightly in size while word and line counts hold.
		matches := 0
		if absDiff(result.Size, b.size) <= int64(sf.threshold) {
			matches++
		}
		if absDiff(result.WordCount, b.wordCount) <= max(5, b.wordCount/20) {
			matches++
		}
		if absDiff(result.LineCount, b.lineCount) <= max(2, b.lineCount/10) {
			matches++
		}
		return matches >= 2
	}
	return false
}

// randomPaths returns n paths that are extremely unlikely to exist.
func randomPaths(n int) []string {
	paths := make([]string, n)
	for i := range paths {
		buf := make([]byte, 8)
		_, _ = rand.Read(buf)
		paths[i] = "dirhunt_probe_" + hex.EncodeToString(buf)
	}
	return paths
}

func median[T int | int64](vals []T) T {
	sorted := slices.Clone(vals)
	slices.Sort(sorted)
	return sorted[len(sorted)/2]
}

func absDiff[T int | int64](a, b T) T {
	if a < b {
		return b - a
	}
	return a - b
}
