package formatter

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/mattn/go-isatty"
)

// cliSpinner reuses the TUI spinner's frames and frame rate.
var cliSpinner = spinner.Dot

// Spinner animates a frame and a message on one terminal line while a
// blocking call runs. Writers that are not terminals get no output.
type Spinner struct {
	w       io.Writer
	message string
	active  bool

	once sync.Once
	quit chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		w:       w,
		message: message,
		active:  isTerminal(w),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Start begins the animation. Call Stop to end it.
func (s *Spinner) Start() {
	if !s.active {
		close(s.done)
		return
	}
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.done)
	ticker := time.NewTicker(cliSpinner.FPS)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		f := cliSpinner.Frames[frame%len(cliSpinner.Frames)]
		fmt.Fprintf(s.w, "\r  %s %s", StylePurple.Render(f), Dim(s.message))
		select {
		case <-s.quit:
			fmt.Fprint(s.w, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop ends the animation and clears the line. Extra calls are no-ops.
func (s *Spinner) Stop() {
	s.once.Do(func() { close(s.quit) })
	<-s.done
}

// StartSpinner creates and starts a spinner; call the returned func to stop it.
func StartSpinner(w io.Writer, message string) func() {
	s := NewSpinner(w, message)
	s.Start()
	return s.Stop
}
