// Package progress draws a spinner on the current terminal line while a
// command runs.
package progress

import (
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// DefaultInterval is the redraw cadence of the spinner.
const DefaultInterval = 100 * time.Millisecond

// spinnerType selects the `| / - \` glyph set.
const spinnerType = 9

// Indicator is a background spinner. All foreground writes to the same
// terminal must go through Suspend so they never interleave with a frame.
//
// Frames are rendered by a progressbar in indeterminate mode with its own
// ticker disabled; the Indicator's goroutine drives each redraw under mu.
type Indicator struct {
	bar      *progressbar.ProgressBar
	interval time.Duration

	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

// New returns a stopped indicator that will write to out.
func New(out io.Writer, message string) *Indicator {
	return &Indicator{
		bar: progressbar.NewOptions(-1,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetDescription(message),
			progressbar.OptionSpinnerType(spinnerType),
			progressbar.OptionSetSpinnerChangeInterval(0),
			progressbar.OptionSetElapsedTime(false),
			progressbar.OptionSetPredictTime(false),
		),
		interval: DefaultInterval,
	}
}

// SetInterval changes the redraw cadence. It has no effect once started.
func (i *Indicator) SetInterval(d time.Duration) {
	if d > 0 {
		i.interval = d
	}
}

// Start launches the drawing goroutine.
func (i *Indicator) Start() {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.running {
		return
	}
	i.running = true
	i.stopCh = make(chan struct{})
	i.doneCh = make(chan struct{})
	go i.spin(i.stopCh, i.doneCh)
}

// Stop terminates the goroutine, waits for it to exit and blanks the line.
// No frame is written after Stop returns.
func (i *Indicator) Stop() {
	i.mu.Lock()
	if !i.running {
		i.mu.Unlock()
		return
	}
	i.running = false
	stopCh, doneCh := i.stopCh, i.doneCh
	i.mu.Unlock()

	close(stopCh)
	<-doneCh

	i.mu.Lock()
	i.bar.Clear()
	i.mu.Unlock()
}

// Suspend erases the last frame and runs fn while no frame can be drawn.
func (i *Indicator) Suspend(fn func()) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.bar.Clear()
	fn()
}

func (i *Indicator) spin(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(i.interval)
	defer ticker.Stop()

	for {
		i.draw()
		select {
		case <-stop:
			return
		case <-ticker.C:
		}
	}
}

// draw renders the next frame; each render advances the glyph.
func (i *Indicator) draw() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.bar.RenderBlank()
}
