package main

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"htmltree/dom"
	"htmltree/render"
	"htmltree/state"
)

func runDemo(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)
	if err := env.Configure(cmd.String("to")); err != nil {
		return fmt.Errorf("unable to prepare rendering: %w", err)
	}
	return demo(os.Stdout, env.RenderOptions(), env.Log.Named("demo"))
}

// samplePage holds nodes of the demo page which are edited later.
type samplePage struct {
	doc                  *dom.Document
	html, body, h1, p, b dom.Node
}

// buildSamplePage builds
//
//	<html><head><title>JLearner</title></head><body><h1>JLearner</h1><p>Please <b>practice</b>.</p></body></html>
func buildSamplePage() (*samplePage, error) {
	d := dom.NewDocument()
	html, head, title := d.NewElement("html"), d.NewElement("head"), d.NewElement("title")
	body, h1, p, b := d.NewElement("body"), d.NewElement("h1"), d.NewElement("p"), d.NewElement("b")

	steps := []struct{ parent, child dom.Node }{
		{title, d.NewText("JLearner")},
		{head, title},
		{html, head},
		{h1, d.NewText("JLearner")},
		{body, h1},
		{p, d.NewText("Please ")},
		{b, d.NewText("practice")},
		{p, b},
		{p, d.NewText(".")},
		{body, p},
		{html, body},
	}
	for _, s := range steps {
		if err := s.parent.AddChild(s.child); err != nil {
			return nil, fmt.Errorf("unable to build page: %w", err)
		}
	}
	return &samplePage{doc: d, html: html, body: body, h1: h1, p: p, b: b}, nil
}

// demo shows the page after every editing step: as built, with a copy of the
// paragraph appended and with the heading moved to the end of the body.
func demo(out io.Writer, opts render.Options, log *zap.Logger) error {
	pg, err := buildSamplePage()
	if err != nil {
		return err
	}

	stage := func(title string) error {
		if err := pg.doc.Check(); err != nil {
			return fmt.Errorf("tree is broken after %q: %w", title, err)
		}
		log.Debug("Stage completed", zap.String("stage", title), zap.Int("nodes", pg.doc.Len()))
		if _, err := fmt.Fprintf(out, "== %s\n", title); err != nil {
			return err
		}
		return render.Write(out, pg.html, opts)
	}

	if err := stage("built"); err != nil {
		return err
	}
	for _, n := range []dom.Node{pg.b, pg.p, pg.body} {
		parent, _ := n.Parent()
		if _, err := fmt.Fprintf(out, "parent of <%s> is <%s>\n", n.Tag(), parent.Tag()); err != nil {
			return err
		}
	}

	if err := pg.body.AddChild(pg.p.Copy()); err != nil {
		return err
	}
	if err := stage("paragraph copied"); err != nil {
		return err
	}

	if err := pg.h1.Detach(); err != nil {
		return err
	}
	if err := pg.body.AddChild(pg.h1); err != nil {
		return err
	}
	return stage("heading moved to the end")
}
