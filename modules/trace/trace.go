package trace

import "github.com/sirupsen/logrus"

// Debuger prints diagnostic output gated behind a verbosity flag, kept
// strictly in the command layer so the engine packages stay logger-free.
type Debuger interface {
	DbgPrint(format string, args ...any)
}

func NewDebuger(verbose bool) Debuger {
	return &debuger{verbose: verbose}
}

type debuger struct {
	verbose bool
}

func (d debuger) DbgPrint(format string, args ...any) {
	if !d.verbose {
		return
	}
	logrus.Debugf(format, args...)
}

var _ Debuger = &debuger{}
