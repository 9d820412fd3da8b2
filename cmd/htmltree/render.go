package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"htmltree/archive"
	"htmltree/dom"
	"htmltree/outline"
	"htmltree/render"
	"htmltree/state"
)

func runRender(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("render")

	if cmd.NArg() == 0 {
		return errors.New("no input source has been specified")
	}
	if err := env.Configure(cmd.String("to")); err != nil {
		return fmt.Errorf("unable to prepare rendering: %w", err)
	}
	env.Overwrite = cmd.Bool("overwrite")

	r := &renderer{env: env, log: log, out: os.Stdout, nodirs: cmd.Bool("nodirs")}
	if dst := cmd.String("dest"); len(dst) > 0 {
		var err error
		if r.dst, err = filepath.Abs(dst); err != nil {
			return err
		}
	}

	log.Info("Processing starting", zap.Strings("sources", cmd.Args().Slice()), zap.String("destination", r.destination()), zap.Stringer("format", env.Format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)), zap.Int("sources", r.sources), zap.Int("trees", r.trees))
	}(time.Now())

	return r.run(ctx, cmd.Args().Slice())
}

// renderer writes every tree of every source either to out or, when dst is
// set, to separate files.
type renderer struct {
	env    *state.LocalEnv
	log    *zap.Logger
	out    io.Writer
	dst    string
	nodirs bool

	sources, trees, failed int
}

func (r *renderer) destination() string {
	if len(r.dst) == 0 {
		return "STDOUT"
	}
	return r.dst
}

func (r *renderer) run(ctx context.Context, sources []string) error {
	for _, src := range sources {
		err := archive.Walk(ctx, src, r.env.Cfg.Outline.Extensions, func(s archive.Source) error {
			if err := r.source(s); err != nil {
				r.failed++
				r.log.Error("Unable to process outline", zap.String("source", s.Name), zap.Error(err))
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("unable to process source '%s': %w", src, err)
		}
	}
	if r.failed > 0 {
		return fmt.Errorf("%d of %d outline(s) were not processed", r.failed, r.sources)
	}
	return nil
}

func (r *renderer) source(s archive.Source) error {
	r.sources++

	roots, err := loadSource(s, r.sources, r.env, r.log)
	if err != nil {
		return err
	}
	r.log.Debug("Outline loaded", zap.String("source", s.Name), zap.Int("trees", len(roots)))

	opts := r.env.RenderOptions()
	for i, root := range roots {
		buf := new(bytes.Buffer)
		if err := render.Write(buf, root, opts); err != nil {
			return err
		}
		name, err := r.write(s, i, len(roots), root, buf.Bytes())
		if err != nil {
			return err
		}
		r.env.Rpt.StoreData(fmt.Sprintf("output/%03d/%d/%s", r.sources, i+1, name), buf.Bytes())
		r.trees++
	}
	return nil
}

// write puts rendered tree to its destination and returns name to use in the
// debug report.
func (r *renderer) write(s archive.Source, i, count int, root dom.Node, data []byte) (string, error) {
	values := render.NewNameValues(s.Name, i, count, root, r.env.Format)
	if len(r.dst) == 0 {
		_, err := r.out.Write(data)
		return values.SourceFile + r.env.Format.Ext(), err
	}

	dir := r.dst
	if !r.nodirs && s.Name != s.Origin {
		dir = filepath.Join(dir, filepath.Dir(filepath.FromSlash(s.Name)))
	}
	path, err := r.env.Namer.Path(dir, values, r.env.Format)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err == nil && !r.env.Overwrite {
		return "", fmt.Errorf("output file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("unable to write output: %w", err)
	}
	r.log.Debug("Tree written", zap.String("file", path))
	return filepath.Base(path), nil
}

// loadSource reads outline and builds its trees. Source content is stored in
// the debug report under sequence number seq.
func loadSource(s archive.Source, seq int, env *state.LocalEnv, log *zap.Logger) ([]dom.Node, error) {
	rc, err := s.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("unable to read outline: %w", err)
	}
	env.Rpt.StoreData(fmt.Sprintf("source/%03d/%s", seq, filepath.Base(filepath.FromSlash(s.Name))), data)

	return outline.Load(bytes.NewReader(data), env.OutlineOptions(), log.With(zap.String("source", s.Name)))
}
