package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames is the braille animation cycle drawn while a render runs.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is the delay between animation frames.
const spinnerInterval = 80 * time.Millisecond

// Spinner is a terminal progress indicator for long renders. It animates on
// its own goroutine and stops on an explicit Stop call or when its context
// is cancelled, whichever comes first. Stop is safe to call more than once.
type Spinner struct {
	message  string
	out      io.Writer
	ctx      context.Context
	cancel   context.CancelFunc
	finished chan struct{}
	stopOnce sync.Once
}

// newSpinner creates a new spinner with the given message.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that also stops when ctx is cancelled.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	spinCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message:  message,
		out:      os.Stderr,
		ctx:      spinCtx,
		cancel:   cancel,
		finished: make(chan struct{}),
	}
}

// Start begins the animation. It returns immediately.
func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.finished)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.ctx.Done():
			s.clearLine()
			return
		case <-ticker.C:
			glyph := spinnerFrames[frame%len(spinnerFrames)]
			fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(glyph), StyleDim.Render(s.message))
		}
	}
}

// Stop halts the animation and clears the line.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.finished
	})
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context has been cancelled. After
// Stop this is always true; it is mainly useful for telling a parent-context
// cancellation apart from normal completion before Stop runs.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}

func (s *Spinner) clearLine() {
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
