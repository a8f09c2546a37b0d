package command

import (
	"github.com/sirupsen/logrus"
	"github.com/strandvcs/strand/modules/config"
	"github.com/strandvcs/strand/modules/trace"
)

// Globals holds flags shared across every subcommand, embedded into the
// kong App and into each command struct.
type Globals struct {
	Verbose bool   `help:"Print debug tracing to stderr." short:"v"`
	Config  string `help:"Path to a repository TOML config file." type:"path"`
}

func (g *Globals) debuger() trace.Debuger {
	if g.Verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}
	return trace.NewDebuger(g.Verbose)
}

// loadConfig returns Default() when no --config flag was given.
func (g *Globals) loadConfig() (*config.Config, error) {
	if g.Config == "" {
		return config.Default(), nil
	}
	return config.Load(g.Config)
}
