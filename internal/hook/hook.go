// Package hook runs a user command for every finding.
package hook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/maxvaer/dirhunt/internal/classify"
)

// Timeout bounds each hook invocation.
const Timeout = 30 * time.Second

// findingJSON is the JSON payload sent to the hook command via stdin.
type findingJSON struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	StatusCode  int    `json:"status"`
	Size        int64  `json:"size"`
	Disposition string `json:"disposition"`
	RedirectURL string `json:"redirect,omitempty"`
}

// Runner executes a shell command for each finding.
type Runner struct {
	cmd   string
	quiet bool
	log   io.Writer
}

// NewRunner creates a hook runner. cmd is the shell command to execute;
// hook errors and output go to log.
func NewRunner(cmd string, quiet bool, log io.Writer) *Runner {
	return &Runner{cmd: cmd, quiet: quiet, log: log}
}

// Expand replaces the {url}, {path}, {status}, {size} and {disposition}
// placeholders in the command.
func (r *Runner) Expand(f *classify.Finding) string {
	return strings.NewReplacer(
		"{url}", f.URL,
		"{path}", f.Path,
		"{status}", strconv.Itoa(f.StatusCode),
		"{size}", strconv.FormatInt(f.Size, 10),
		"{disposition}", f.Disposition,
	).Replace(r.cmd)
}

// Run executes the hook command with the finding as JSON on stdin.
// Errors are logged but do not halt the scan.
func (r *Runner) Run(ctx context.Context, f *classify.Finding) {
	data, err := json.Marshal(findingJSON{
		URL:         f.URL,
		Path:        f.Path,
		StatusCode:  f.StatusCode,
		Size:        f.Size,
		Disposition: f.Disposition,
		RedirectURL: f.RedirectURL,
	})
	if err != nil {
		fmt.Fprintf(r.log, "[hook] marshal error: %v\n", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	shell, args := shellCommand()
	cmd := exec.CommandContext(ctx, shell, append(args, r.Expand(f))...)
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stderr = r.log

	out, err := cmd.Output()
	if err != nil {
		if !r.quiet {
			fmt.Fprintf(r.log, "[hook] error: %v\n", err)
		}
		return
	}
	if len(out) > 0 && !r.quiet {
		fmt.Fprintf(r.log, "[hook] %s", out)
	}
}

func shellCommand() (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}
	}
	return "sh", []string{"-c"}
}
