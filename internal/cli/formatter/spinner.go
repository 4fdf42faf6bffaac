package formatter

import (
	"fmt"
	"sync"
	"time"
)

const spinnerInterval = 100 * time.Millisecond

var spinnerGlyphs = []string{"⠋", "⠙", "⠸", "⠴", "⠦", "⠇"}

// Spinner animates a one-line activity indicator while a slow call runs.
// It writes to stdout and clears the line again on Stop.
type Spinner struct {
	message string
	quit    chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

func NewSpinner(message string) *Spinner {
	return &Spinner{message: message, quit: make(chan struct{})}
}

// Start launches the animation goroutine.
func (s *Spinner) Start() {
	s.wg.Add(1)
	go s.run()
}

func (s *Spinner) run() {
	defer s.wg.Done()
	tick := time.NewTicker(spinnerInterval)
	defer tick.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.quit:
			fmt.Print("\r\033[K")
			return
		case <-tick.C:
			glyph := spinnerGlyphs[frame%len(spinnerGlyphs)]
			fmt.Printf("\r  %s %s", StyleBlue.Render(glyph), Dim(s.message))
		}
	}
}

// Stop ends the animation and blocks until the line has been cleared.
// Calling it more than once is harmless.
func (s *Spinner) Stop() {
	s.stopped.Do(func() { close(s.quit) })
	s.wg.Wait()
}

// StartSpinner starts a spinner and returns the function that stops it.
func StartSpinner(message string) func() {
	s := NewSpinner(message)
	s.Start()
	return s.Stop
}
