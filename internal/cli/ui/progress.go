package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a message while an operation of unknown length runs.
type Spinner struct {
	writer   io.Writer
	interval time.Duration
	noColor  bool

	mu      sync.Mutex // guards message and writes to writer
	message string

	done     chan struct{}
	finished chan struct{}
	stopOnce sync.Once
}

// SpinnerOptions configures spinner behavior
type SpinnerOptions struct {
	Message  string
	NoColor  bool
	Interval time.Duration // Default: 100ms
}

// NewSpinner creates a new spinner
func NewSpinner(w io.Writer, opts SpinnerOptions) *Spinner {
	interval := opts.Interval
	if interval == 0 {
		interval = 100 * time.Millisecond
	}
	return &Spinner{
		writer:   w,
		message:  opts.Message,
		interval: interval,
		noColor:  opts.NoColor,
		done:     make(chan struct{}),
		finished: make(chan struct{}),
	}
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	go s.animate()
}

// Stop halts the animation and clears the line. It is safe to call twice.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		<-s.finished
		s.mu.Lock()
		fmt.Fprint(s.writer, "\r\033[K")
		s.mu.Unlock()
	})
}

// Success stops the spinner and shows a success message
func (s *Spinner) Success(message string) {
	s.Stop()
	WriteSuccess(s.writer, message, s.noColor)
}

// Error stops the spinner and shows an error message
func (s *Spinner) Error(message string) {
	s.Stop()
	newColor(s.noColor, color.FgRed, color.Bold).Fprintf(s.writer, "✗ %s\n", message)
}

// UpdateMessage changes the spinner message
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

func (s *Spinner) animate() {
	defer close(s.finished)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	cyan := newColor(s.noColor, color.FgCyan)
	for frame := 0; ; frame = (frame + 1) % len(defaultFrames) {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			cyan.Fprintf(s.writer, "\r%s %s", defaultFrames[frame], s.message)
			s.mu.Unlock()
		}
	}
}

// WithSpinner runs a function with a spinner indicator
func WithSpinner(w io.Writer, message string, noColor bool, fn func() error) error {
	spinner := NewSpinner(w, SpinnerOptions{Message: message, NoColor: noColor})
	spinner.Start()

	if err := fn(); err != nil {
		spinner.Error(fmt.Sprintf("%s failed", message))
		return err
	}
	spinner.Success(message)
	return nil
}
