package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"htmltree/archive"
	"htmltree/state"
)

// treeStats summarizes trees of a single outline.
type treeStats struct {
	trees, nodes, elements, depth int
}

func runCheck(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if cmd.NArg() == 0 {
		return errors.New("no input source has been specified")
	}
	env := state.EnvFromContext(ctx)
	return checkSources(ctx, cmd.Args().Slice(), os.Stdout, env, env.Log.Named("check"))
}

func checkSources(ctx context.Context, sources []string, out io.Writer, env *state.LocalEnv, log *zap.Logger) error {
	var total, failed int
	for _, src := range sources {
		err := archive.Walk(ctx, src, env.Cfg.Outline.Extensions, func(s archive.Source) error {
			total++
			st, err := checkSource(s, total, env, log)
			if err != nil {
				failed++
				log.Error("Outline is broken", zap.String("source", s.Name), zap.Error(err))
				_, err = fmt.Fprintf(out, "%s: FAILED\n", s.Name)
				return err
			}
			_, err = fmt.Fprintf(out, "%s: %d tree(s), %d node(s), %d element(s), depth %d\n", s.Name, st.trees, st.nodes, st.elements, st.depth)
			return err
		})
		if err != nil {
			return fmt.Errorf("unable to process source '%s': %w", src, err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d outline(s) failed checks", failed, total)
	}
	return nil
}

func checkSource(s archive.Source, seq int, env *state.LocalEnv, log *zap.Logger) (treeStats, error) {
	var st treeStats

	roots, err := loadSource(s, seq, env, log)
	if err != nil {
		return st, err
	}
	// all roots of an outline share document
	if err := roots[0].Document().Check(); err != nil {
		return st, err
	}

	st.trees = len(roots)
	for _, root := range roots {
		for n := range root.All() {
			st.nodes++
			if n.IsElement() {
				st.elements++
			}
			d := 1
			for p, ok := n.Parent(); ok; p, ok = p.Parent() {
				d++
			}
			st.depth = max(st.depth, d)
		}
	}
	return st, nil
}
