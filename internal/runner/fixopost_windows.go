//go:build windows

package runner

// fixOutputProcessing is a no-op: console raw mode leaves output
// processing alone.
func fixOutputProcessing(int) {}
