package runner

import (
	"fmt"
	"os"

	"github.com/maxvaer/dirhunt/internal/scanner"
	"golang.org/x/term"
)

const (
	keyCtrlC = 0x03
	keyCR    = '\r'
	keyLF    = '\n'
	keySpace = ' '
)

// startStdinToggle reads single keypresses from stdin and toggles a pauser on
// Enter or Space. The returned cleanup restores the terminal. When stdin is
// not a terminal, or quiet is set, the pauser is nil and cleanup is a no-op.
func startStdinToggle(quiet bool) (pauser *scanner.Pauser, cleanup func()) {
	fd := int(os.Stdin.Fd())
	if quiet || !term.IsTerminal(fd) {
		return nil, func() {}
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[!] Could not enable raw terminal: %v\n", err)
		return nil, func() {}
	}
	// MakeRaw also turns off OPOST, which breaks \n -> \r\n on output. Only raw
	// input is wanted.
	fixOutputProcessing(fd)

	pauser = scanner.NewPauser()
	cleanup = func() {
		_ = term.Restore(fd, oldState)
	}

	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}

			switch buf[0] {
			case keyCtrlC:
				// Raw mode swallows the signal; restore and raise it so the
				// interrupt context fires.
				_ = term.Restore(fd, oldState)
				sendInterrupt()
				return
			case keyCR, keyLF, keySpace:
				if pauser.Toggle() {
					fmt.Fprintf(os.Stderr, "\r\033[K[*] Scan PAUSED, press Enter or Space to resume\n")
				} else {
					fmt.Fprintf(os.Stderr, "\r\033[K[*] Scan RESUMED\n")
				}
			}
		}
	}()

	return pauser, cleanup
}
