package state

import (
	"time"

	"go.uber.org/zap"

	"htmltree/render"
)

// newLocalEnv creates a new LocalEnv instance with default values. Logger is
// replaced as soon as configuration is loaded, until then messages are dropped.
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		Log:   zap.NewNop(),
		start: time.Now(),
	}
}

// Configure selects output format and prepares output naming from loaded
// configuration. Empty name selects format from configuration.
func (e *LocalEnv) Configure(format string) error {
	if len(format) == 0 {
		format = e.Cfg.Render.Format
	}
	f, err := render.ParseFormat(format)
	if err != nil {
		return err
	}
	namer, err := render.NewNamer(&e.Cfg.Render)
	if err != nil {
		return err
	}
	e.Format, e.Namer = f, namer
	return nil
}
