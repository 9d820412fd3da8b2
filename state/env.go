// Package state defines shared program state.
package state

import (
	"context"
	"time"

	"go.uber.org/zap"

	"htmltree/config"
	"htmltree/outline"
	"htmltree/render"
)

type envKey struct{}

// LocalEnv keeps everything program needs in a single place.
type LocalEnv struct {
	Cfg *config.Config
	Rpt *config.Report
	Log *zap.Logger

	// used by render subcommand
	Format    render.Format
	Overwrite bool
	Namer     *render.Namer

	start         time.Time
	restoreStdLog func()
}

func EnvFromContext(ctx context.Context) *LocalEnv {
	if env, ok := ctx.Value(envKey{}).(*LocalEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func ContextWithEnv(ctx context.Context) context.Context {
	return context.WithValue(ctx, envKey{}, newLocalEnv())
}

func (e *LocalEnv) Uptime() time.Duration {
	return time.Since(e.start)
}

// OutlineOptions translates outline section of configuration for the loader.
func (e *LocalEnv) OutlineOptions() outline.Options {
	if e.Cfg == nil {
		return outline.Options{WarnUnknownTags: true}
	}
	return outline.Options{
		Encoding:        e.Cfg.Outline.InputEncoding,
		NormalizeText:   e.Cfg.Outline.NormalizeText,
		StrictTags:      e.Cfg.Outline.StrictTags,
		WarnUnknownTags: e.Cfg.Outline.WarnUnknownTags,
	}
}

// RenderOptions returns renderer settings for requested format.
func (e *LocalEnv) RenderOptions() render.Options {
	opts := render.Options{Format: e.Format}
	if e.Cfg != nil {
		opts.Indent = e.Cfg.Render.Indent
	}
	return opts
}

func (e *LocalEnv) RedirectStdLog() {
	if e.Log == nil {
		return
	}
	e.restoreStdLog = zap.RedirectStdLog(e.Log)
}

func (e *LocalEnv) RestoreStdLog() {
	if e.Log != nil {
		_ = e.Log.Sync()
	}
	if e.restoreStdLog != nil {
		e.restoreStdLog()
	}
}
