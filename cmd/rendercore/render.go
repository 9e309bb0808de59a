package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"github.com/cyrup-ai/blitz-sub000/common"
	"github.com/cyrup-ai/blitz-sub000/layout"
	"github.com/cyrup-ai/blitz-sub000/paint"
	"github.com/cyrup-ai/blitz-sub000/screenshot"
	"github.com/cyrup-ai/blitz-sub000/state"
)

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:         "render",
		Usage:        "lay out and paint the demonstration page, optionally capturing it",
		OnUsageError: usageErrorHandler,
		Action:       runRender,
		ArgsUsage:    "[OUTPUT]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "title", Value: "rendercore", Usage: "page header text"},
			&cli.StringSliceFlag{Name: "text", Usage: "paragraph `TEXT` to add; may be repeated"},
			&cli.StringFlag{Name: "format", Usage: "screenshot format (png, jpeg, webp); defaults to the configuration value"},
			&cli.IntFlag{Name: "quality", Value: int64(-1), Usage: "JPEG/WebP quality 0-100; defaults to the configuration value"},
		},
		CustomHelpTemplate: fmt.Sprintf(`%s
OUTPUT:
    file name to write the captured screenshot to, if absent - STDOUT

Always runs layout and paint over the demonstration page; writes a captured
screenshot only when an output destination can be determined (OUTPUT or
STDOUT), since the run exists to exercise the pipeline end to end.
`, cli.CommandHelpTemplate),
	}
}

func runRender(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	cfg := env.Cfg
	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}

	opts := DefaultPageOptions()
	if t := cmd.String("title"); t != "" {
		opts.Title = t
	}
	if texts := cmd.StringSlice("text"); len(texts) > 0 {
		opts.Paragraphs = texts
	}

	doc, resolver, err := newDemoDocument(opts, cfg.Viewport.WidthPx, cfg.Viewport.HeightPx, cfg.Viewport.Scale, log)
	if err != nil {
		return fmt.Errorf("unable to build document: %w", err)
	}

	layoutEngine := layout.NewEngine(doc, resolver, nil, log)
	if err := layoutEngine.Resolve(); err != nil {
		return fmt.Errorf("layout failed: %w", err)
	}

	root, ok := doc.GetNode(doc.Root)
	if !ok {
		return fmt.Errorf("document has no root node")
	}
	w, h := root.FinalLayout.Width, root.FinalLayout.Height
	if w <= 0 {
		w = int(cfg.Viewport.WidthPx)
	}
	if h <= 0 {
		h = int(cfg.Viewport.HeightPx)
	}

	scene := paint.NewScene(w, h)
	paintEngine := paint.NewEngine(doc, resolver, log)
	paintEngine.PaintScene(scene)

	env.Rpt.StoreData("viewport.txt", []byte(fmt.Sprintf("%dx%d", w, h)))

	format := cfg.Screenshot.Format
	if name := cmd.String("format"); name != "" {
		f, ok := common.ParseScreenshotFormat(name)
		if !ok {
			return fmt.Errorf("unsupported screenshot format %q", name)
		}
		format = f
	}
	quality := cfg.Screenshot.Quality
	if q := cmd.Int("quality"); q >= 0 {
		quality = int(q)
	}

	device := newCanvasDevice(scene.Canvas)
	shotEngine := screenshot.NewEngine(device, w, h, log)

	result := make(chan screenshot.Result, 1)
	shotEngine.SubmitRequest(screenshot.Request{
		Region: common.IntRect{X: 0, Y: 0, Width: w, Height: h},
		Options: screenshot.Options{}.WithFormat(format).WithQuality(quality),
		Result:  result,
	})
	shotEngine.ProcessPendingRequests()

	res := <-result
	if res.Err != nil {
		return fmt.Errorf("screenshot capture failed: %w", res.Err)
	}

	out := os.Stdout
	fname := cmd.Args().Get(0)
	if fname != "" {
		f, err := os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create output file '%s': %w", fname, err)
		}
		defer f.Close()
		out = f
	}
	if _, err := out.Write(res.Data); err != nil {
		return fmt.Errorf("unable to write screenshot: %w", err)
	}

	if fname != "" {
		log.Info("rendered screenshot", zap.String("file", fname), zap.Int("width", w), zap.Int("height", h), zap.Stringer("format", format))
	}
	return nil
}
