package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/maxvaer/dirhunt/internal/config"
	"github.com/maxvaer/dirhunt/internal/runner"
	"github.com/maxvaer/dirhunt/pkg/version"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	opts    config.Options
	headers []string
)

type flagGroup struct {
	title string
	flags []string
}

var helpGroups = []flagGroup{
	{"TARGET", []string{"url", "wordlist", "extensions"}},
	{"DISCOVERY", []string{"recursive", "max-depth"}},
	{"MATCHERS", []string{"status-codes"}},
	{"FILTERS", []string{"exclude-size", "smart-filter", "smart-filter-threshold", "dedupe"}},
	{"RATE-LIMIT", []string{"threads", "timeout", "delay", "rate", "adaptive-throttle"}},
	{"HTTP", []string{"header", "user-agent", "proxy", "follow-redirects", "max-redirects"}},
	{"OUTPUT", []string{"format", "sort", "progress-every", "quiet", "no-color", "on-result"}},
}

var rootCmd = &cobra.Command{
	Use:     "dirhunt -u <url> [flags]",
	Short:   "Web content discovery by word-list brute force",
	Version: version.Version,
	Long: `dirhunt discovers hidden files and directories on a web server by
requesting every word-list entry, with and without extensions, against a
base URL and reporting the responses whose status is interesting.`,
	Example: `  dirhunt -u https://example.com
  dirhunt -u https://example.com -e php,html -t 50
  dirhunt -u https://example.com -w custom.txt -s 200,403
  dirhunt -u https://example.com --smart-filter --format json
  dirhunt -u https://example.com --rate 20 --adaptive-throttle
  dirhunt -u https://example.com --on-result "notify-send {url}"`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		if opts.URL == "" {
			_ = cmd.Help()
			fmt.Fprintln(os.Stderr)
			return fmt.Errorf("target required: use -u")
		}
		opts.URL = normalizeTarget(opts.URL)

		h, err := parseHeaders(headers)
		if err != nil {
			return err
		}
		opts.Headers = h
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()
		return runner.Run(ctx, &opts)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	f := rootCmd.Flags()

	// Target
	f.StringVarP(&opts.URL, "url", "u", "", "Target base URL")
	f.StringVarP(&opts.WordlistPath, "wordlist", "w", "", "Custom wordlist path (default: built-in)")
	f.StringSliceVarP(&opts.Extensions, "extensions", "e", nil, "Extensions to append to every word (e.g. php,html,js)")

	// Performance
	f.IntVarP(&opts.Threads, "threads", "t", 25, "Number of concurrent workers")
	opts.Timeout = 10 * time.Second
	f.Var((*secondsValue)(&opts.Timeout), "timeout", "HTTP request timeout in seconds or as a duration (10, 2.5, 1m)")
	f.DurationVar(&opts.Delay, "delay", 0, "Delay between requests per worker")
	f.Float64Var(&opts.Rate, "rate", 0, "Global request rate cap in requests per second (0 = unlimited)")
	f.BoolVar(&opts.AdaptiveThrottle, "adaptive-throttle", false, "Auto back-off on 429/503 and connection errors")

	// Matching
	f.VarP(&intSliceValue{target: &opts.StatusCodes}, "status-codes", "s", "Status codes reported as findings (comma-separated)")
	rootCmd.Flags().Lookup("status-codes").DefValue = joinInts(config.DefaultStatusCodes)

	// Filtering
	f.Var(&intSliceValue{target: &opts.ExcludeSize}, "exclude-size", "Hide responses of these sizes (comma-separated)")
	f.BoolVar(&opts.SmartFilter, "smart-filter", false, "Calibrate against random paths and hide soft-404 responses")
	f.IntVar(&opts.SmartFilterThreshold, "smart-filter-threshold", 50, "Size tolerance in bytes for smart filter")
	f.IntVar(&opts.DuplicateThreshold, "dedupe", 0, "Hide a response body after it was seen this many times (0 = off)")

	// Recursion
	f.BoolVar(&opts.Recursive, "recursive", false, "Recursive scanning (not supported, top level only)")
	f.IntVarP(&opts.MaxDepth, "max-depth", "R", 3, "Maximum recursion depth")

	// HTTP
	f.StringSliceVarP(&headers, "header", "H", nil, "Custom headers (Key: Value)")
	f.StringVar(&opts.UserAgent, "user-agent", config.DefaultUserAgent, "User-Agent sent with every request")
	f.StringVar(&opts.Proxy, "proxy", "", "HTTP proxy URL")
	f.BoolVar(&opts.FollowRedirects, "follow-redirects", false, "Follow HTTP redirects")
	f.IntVar(&opts.MaxRedirects, "max-redirects", 10, "Redirects followed per request with --follow-redirects")

	// Output
	f.StringVar(&opts.OutputFormat, "format", "text", "Output format: text, json, csv")
	f.StringVar(&opts.SortBy, "sort", "", "Sort the summary findings: status, path, size")
	f.IntVar(&opts.ProgressEvery, "progress-every", 10, "Print progress every N completed requests")
	f.BoolVarP(&opts.Quiet, "quiet", "q", false, "Minimal output")
	f.BoolVar(&opts.NoColor, "no-color", false, "Disable colored output")

	// Hooks
	f.StringVar(&opts.OnResultCmd, "on-result", "", "Shell command to run for each finding (receives JSON on stdin)")

	rootCmd.SetHelpFunc(printHelp)
}

// printHelp lists flags by group instead of cobra's flat listing.
func printHelp(cmd *cobra.Command, _ []string) {
	var b strings.Builder
	b.WriteString(helpBanner(cmd.Version))
	fmt.Fprintf(&b, "%s\n\nUsage:\n  %s\n\nExamples:\n%s\n\nFlags:\n", cmd.Long, cmd.UseLine(), cmd.Example)
	for _, g := range helpGroups {
		fmt.Fprintf(&b, "\n%s:\n", g.title)
		for _, name := range g.flags {
			if f := cmd.Flags().Lookup(name); f != nil {
				b.WriteString(formatFlag(f) + "\n")
			}
		}
	}
	b.WriteString("\n")
	fmt.Fprint(cmd.ErrOrStderr(), b.String())
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// normalizeTarget adds http:// to a bare host. Anything with a scheme is
// left for validation.
func normalizeTarget(u string) string {
	if !strings.Contains(u, "://") {
		return "http://" + u
	}
	return u
}

// parseHeaders turns "Key: Value" flags into a header map.
func parseHeaders(list []string) (map[string]string, error) {
	if len(list) == 0 {
		return nil, nil
	}
	h := make(map[string]string, len(list))
	for _, raw := range list {
		key, val, ok := strings.Cut(raw, ":")
		if !ok || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("invalid header format %q, expected 'Key: Value'", raw)
		}
		h[strings.TrimSpace(key)] = strings.TrimSpace(val)
	}
	return h, nil
}

// intSliceValue implements pflag.Value for comma-separated int slices.
type intSliceValue struct {
	target *[]int
}

func (v *intSliceValue) String() string {
	if v.target == nil {
		return ""
	}
	return joinInts(*v.target)
}

func (v *intSliceValue) Set(s string) error {
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return fmt.Errorf("invalid number %q: %w", p, err)
		}
		*v.target = append(*v.target, n)
	}
	return nil
}

func (v *intSliceValue) Type() string { return "ints" }

// secondsValue is a duration flag that also accepts a bare number of
// seconds.
type secondsValue time.Duration

func (v *secondsValue) String() string { return time.Duration(*v).String() }

func (v *secondsValue) Set(s string) error {
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		*v = secondsValue(secs * float64(time.Second))
		return nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid timeout %q: want seconds or a duration", s)
	}
	*v = secondsValue(d)
	return nil
}

func (v *secondsValue) Type() string { return "duration" }

func joinInts(vals []int) string {
	parts := make([]string, len(vals))
	for i, val := range vals {
		parts[i] = strconv.Itoa(val)
	}
	return strings.Join(parts, ",")
}

// formatFlag renders one help line: names and type padded to a column,
// then usage and any non-zero default.
func formatFlag(f *pflag.Flag) string {
	names := "    --" + f.Name
	if f.Shorthand != "" {
		names = "-" + f.Shorthand + ", --" + f.Name
	}
	if typ := f.Value.Type(); typ != "bool" {
		names += " " + typ
	}

	usage := f.Usage
	switch f.DefValue {
	case "", "false", "0", "0s", "[]":
	default:
		usage += " (default " + f.DefValue + ")"
	}
	return fmt.Sprintf("   %-36s%s", names, usage)
}

func helpBanner(ver string) string {
	if ver != "dev" && ver != "" && !strings.HasPrefix(ver, "v") {
		ver = "v" + ver
	}
	return fmt.Sprintf(`
       ___      __               __
  ____/ (_)____/ /_  __  ______ / /_
 / __  / / ___/ __ \/ / / / __ \/ __/
/ /_/ / / /  / / / / /_/ / / / / /_
\__,_/_/_/  /_/ /_/\__,_/_/ /_/\__/   %s

`, ver)
}
