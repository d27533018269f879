package output

import (
	"fmt"
	"io"
	"time"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

// Spinner shows progress for an in-flight request on interactive runs.
type Spinner struct {
	w       io.Writer
	message string
	done    chan struct{}
	stopped chan struct{}
}

// NewSpinner creates a spinner that writes to w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Start begins animating on its own goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		i := 0
		for {
			select {
			case <-s.done:
				fmt.Fprintf(s.w, "\r%s\r", padding(len(s.message)+2))
				return
			case <-ticker.C:
				fmt.Fprintf(s.w, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], s.message)
				i++
			}
		}
	}()
}

// Stop clears the spinner line and waits for the goroutine to finish.
func (s *Spinner) Stop() {
	close(s.done)
	<-s.stopped
}

func padding(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
