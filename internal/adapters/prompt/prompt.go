// Package prompt implements ports.Confirmer for terminals and unattended runs.
package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/bft-labs/pagemark/internal/ports"
)

// Terminal asks questions on out and reads answers from in.
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// NewTerminal creates a terminal confirmer.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out}
}

// Confirm prints message and reads one line in the background. "y" and
// "yes" in any case confirm; anything else, including end of input, declines.
// The caller stops waiting when ctx is done; the pending read is abandoned.
func (t *Terminal) Confirm(ctx context.Context, message string) <-chan bool {
	answer := make(chan bool, 1)
	fmt.Fprintf(t.out, "%s [y/N]: ", message)

	go func() {
		line, err := t.in.ReadString('\n')
		ok := err == nil || (err == io.EOF && line != "")
		ok = ok && isYes(line)
		answer <- ok
	}()
	return answer
}

func isYes(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Fixed answers every question the same way without asking.
type Fixed bool

// Confirm delivers the fixed answer immediately.
func (f Fixed) Confirm(ctx context.Context, message string) <-chan bool {
	answer := make(chan bool, 1)
	answer <- bool(f)
	return answer
}

var (
	_ ports.Confirmer = (*Terminal)(nil)
	_ ports.Confirmer = Fixed(false)
)
