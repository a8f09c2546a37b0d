package trace

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Tracker reports per-step wall time to stderr when debug mode is on, the
// timing aid the command layer threads through a multi-phase run.
type Tracker struct {
	debug bool
	last  time.Time
}

func NewTracker(debugMode bool) *Tracker {
	return &Tracker{debug: debugMode, last: time.Now()}
}

func (t *Tracker) StepNext(format string, a ...any) {
	if !t.debug {
		return
	}
	s := fmt.Sprintf(format, a...)
	now := time.Now()
	fmt.Fprintf(os.Stderr, "\x1b[35m* %s use time: %v\x1b[0m\n", strings.Trim(s, "\n"), now.Sub(t.last))
	t.last = now
}
