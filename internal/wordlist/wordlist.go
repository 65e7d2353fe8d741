package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrNoWords is returned when a word list yields nothing to test after
// comments and blank lines are removed.
var ErrNoWords = errors.New("word list contains no usable words")

// DefaultSource names the embedded list in List.Source.
const DefaultSource = "built-in"

// List is a loaded word list.
type List struct {
	Words  []string
	Source string // file path, or DefaultSource

	// Fallback is set when a file was requested but could not be opened and
	// the embedded list was used instead. FallbackErr holds the open error.
	Fallback    bool
	FallbackErr error
}

// Load reads the word list at path. An empty path selects the embedded
// default. A file that cannot be opened is not fatal: the embedded default is
// returned with Fallback set. Duplicates are kept in file order.
func Load(path string) (*List, error) {
	if path == "" {
		return loadDefault(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		l := loadDefault()
		l.Fallback = true
		l.FallbackErr = err
		return l, nil
	}
	defer f.Close()

	words, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("reading wordlist %s: %w", path, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoWords)
	}
	return &List{Words: words, Source: path}, nil
}

func loadDefault() *List {
	words, _ := Parse(strings.NewReader(embeddedWordlist))
	return &List{Words: words, Source: DefaultSource}
}

// Parse returns the trimmed, non-empty lines of r that do not start with '#'.
func Parse(r io.Reader) ([]string, error) {
	var words []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
