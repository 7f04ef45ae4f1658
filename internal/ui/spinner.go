package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const (
	spinnerInterval = 80 * time.Millisecond
	// Requests slower than this show their elapsed time next to the message.
	spinnerShowElapsed = time.Second
)

// Spinner animates a one-line status on a terminal while requests are in
// flight. Off a terminal it writes nothing.
type Spinner struct {
	out     io.Writer
	message string

	stop     chan struct{}
	finished chan struct{}
	once     sync.Once
	started  bool
}

// NewSpinner returns a spinner for stderr.
func NewSpinner(message string) *Spinner {
	return NewSpinnerTo(os.Stderr, message)
}

func NewSpinnerTo(w io.Writer, message string) *Spinner {
	return &Spinner{
		out:      w,
		message:  message,
		stop:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Start begins animating. It is a no-op off a terminal.
func (s *Spinner) Start() {
	if s.started || !isTerminal(s.out) {
		return
	}
	s.started = true
	go s.run(time.Now())
}

func (s *Spinner) run(began time.Time) {
	defer close(s.finished)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.stop:
			fmt.Fprint(s.out, "\r\033[K")
			return
		case now := <-ticker.C:
			line := Bold.Render(spinnerFrames[frame%len(spinnerFrames)]) + " " + s.message
			if waited := now.Sub(began); waited >= spinnerShowElapsed {
				line += " " + Muted.Render(fmt.Sprintf("%.1fs", waited.Seconds()))
			}
			fmt.Fprint(s.out, "\r\033[K"+line)
		}
	}
}

// Stop clears the spinner line. It may be called more than once, and
// without Start.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.stop)
		if s.started {
			<-s.finished
		}
	})
}
