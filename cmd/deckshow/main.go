// Package main provides the CLI entry point for deckshow.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/deckshow/pkg/adapters/ffmpegenc"
	"github.com/user/deckshow/pkg/adapters/filesink"
	"github.com/user/deckshow/pkg/adapters/logger"
	"github.com/user/deckshow/pkg/adapters/mp4probe"
	"github.com/user/deckshow/pkg/adapters/nullsink"
	"github.com/user/deckshow/pkg/adapters/osfilesystem"
	"github.com/user/deckshow/pkg/adapters/pdftool"
	"github.com/user/deckshow/pkg/adapters/pptxwriter"
	"github.com/user/deckshow/pkg/adapters/pwbrowser"
	"github.com/user/deckshow/pkg/adapters/termprogress"
	"github.com/user/deckshow/pkg/config"
	"github.com/user/deckshow/pkg/deck"
	"github.com/user/deckshow/pkg/export"
	"github.com/user/deckshow/pkg/orchestrator"
	"github.com/user/deckshow/pkg/ports"
	"github.com/user/deckshow/pkg/server"
	"github.com/user/deckshow/pkg/stages/record"
	"github.com/user/deckshow/pkg/stages/render"
)

var version = "dev"

func main() {
	app := &cli.App{
		Name:  "deckshow",
		Usage: l10n.T("Export rendered slide decks to PDF, PNG, PPTX, Markdown, or MP4"),
		Commands: []*cli.Command{
			exportCommand(),
			serveCommand(),
			versionCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "url", Aliases: []string{"u"}, Required: true, Usage: l10n.T("Base URL of the slide server")},
		&cli.StringFlag{Name: "manifest", Aliases: []string{"m"}, Usage: l10n.T("Deck manifest YAML with per-slide metadata")},
		&cli.IntFlag{Name: "slides", Usage: l10n.T("Slide count when no manifest is available")},
		&cli.StringFlag{Name: "executable-path", Usage: l10n.T("Path to the browser executable (falls back to CHROME_PATH env)")},
		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
	}
}

func exportCommand() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "pdf", Usage: l10n.T("Output format (pdf, png, pptx, md, mp4)")},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Required: true, Usage: l10n.T("Output file or directory path")},
		&cli.StringFlag{Name: "range", Aliases: []string{"r"}, Usage: l10n.T("Slide range (e.g. 1-3,5 or last)")},
		&cli.IntFlag{Name: "width", Value: 1920, Usage: l10n.T("Slide width in pixels")},
		&cli.IntFlag{Name: "height", Value: 1080, Usage: l10n.T("Slide height in pixels")},
		&cli.BoolFlag{Name: "dark", Usage: l10n.T("Export in dark mode")},
		&cli.StringFlag{Name: "router-mode", Value: "history", Usage: l10n.T("Slide server routing (history or hash)")},
		&cli.BoolFlag{Name: "with-clicks", Usage: l10n.T("Export every click state as its own page")},
		&cli.BoolFlag{Name: "per-slide", Usage: l10n.T("Render slides one navigation at a time")},
		&cli.Float64Flag{Name: "scale", Value: 2, Usage: l10n.T("Device scale factor of raster output")},
		&cli.BoolFlag{Name: "omit-background", Usage: l10n.T("Transparent background for PNG output")},
		&cli.IntFlag{Name: "timeout", Value: 30000, Usage: l10n.T("Navigation timeout in milliseconds")},
		&cli.IntFlag{Name: "wait", Usage: l10n.T("Extra settle delay per slide in milliseconds")},
		&cli.StringFlag{Name: "wait-until", Value: "networkidle", Usage: l10n.T("Navigation settle condition (networkidle, load, domcontentloaded, none)")},
		&cli.BoolFlag{Name: "with-toc", Usage: l10n.T("Attach a table-of-contents outline to the PDF")},
		&cli.IntFlag{Name: "video-interval", Value: 2000, Usage: l10n.T("Dwell per step in milliseconds (mp4)")},
		&cli.IntFlag{Name: "video-fps", Value: 30, Usage: l10n.T("Frames per second (mp4, 1-60)")},
		&cli.StringFlag{Name: "video-size", Usage: l10n.T("Video frame size as WxH (mp4)")},
		&cli.Float64Flag{Name: "video-motion-scale", Value: 1, Usage: l10n.T("Slow in-page motion by this factor while recording (mp4)")},
		&cli.BoolFlag{Name: "no-headless", Usage: l10n.T("Run browser in non-headless mode")},
		&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: l10n.T("Enable debug output")},
		&cli.StringFlag{Name: "debug-dir", Value: "./debug", Usage: l10n.T("Directory for debug output")},
	)

	return &cli.Command{
		Name:   "export",
		Usage:  l10n.T("Export a deck once and exit"),
		Flags:  flags,
		Action: runExport,
	}
}

func runExport(c *cli.Context) error {
	log := buildLogger(c)
	fs := osfilesystem.New()

	slides, err := loadSlides(c, fs)
	if err != nil {
		return err
	}

	req := export.Request{
		Format:         c.String("format"),
		Range:          c.String("range"),
		Output:         c.String("output"),
		Width:          c.Int("width"),
		Height:         c.Int("height"),
		Dark:           c.Bool("dark"),
		RouterMode:     c.String("router-mode"),
		PerSlide:       c.Bool("per-slide"),
		Scale:          c.Float64("scale"),
		OmitBackground: c.Bool("omit-background"),
		Timeout:        c.Int("timeout"),
		Wait:           c.Int("wait"),
		WaitUntil:      c.String("wait-until"),
		WithTOC:        c.Bool("with-toc"),
		ExecutablePath: c.String("executable-path"),
	}
	if c.IsSet("with-clicks") {
		v := c.Bool("with-clicks")
		req.WithClicks = &v
	}
	if c.IsSet("video-interval") {
		v := c.Int("video-interval")
		req.VideoInterval = &v
	}
	if c.IsSet("video-fps") {
		v := c.Int("video-fps")
		req.VideoFPS = &v
	}
	req.VideoSize = c.String("video-size")
	req.VideoMotionScale = c.Float64("video-motion-scale")

	opts, err := req.Resolve(c.String("url"), slides)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	var sink ports.DebugSink = nullsink.New()
	if c.Bool("debug") || os.Getenv("DECKSHOW_DEBUG") != "" {
		dir := c.String("debug-dir")
		if err := fs.MkdirAll(dir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(dir, fs)
	}

	var progress ports.Progress = termprogress.New()
	if c.Bool("quiet") {
		progress = termprogress.NewNoop()
	}

	orch := buildOrchestrator(fs, sink, progress, log)
	result, err := orch.Run(ctx, orchestrator.Config{
		Opts:     opts,
		Headless: !c.Bool("no-headless"),
	})
	if err != nil {
		return err
	}

	log.Info(l10n.F("Output saved to %s", result.OutputPath))
	if len(result.Warnings) > 0 {
		return cli.Exit(l10n.F("Export finished with %d warnings", len(result.Warnings)), 1)
	}
	return nil
}

func serveCommand() *cli.Command {
	flags := append(commonFlags(),
		&cli.StringFlag{Name: "host", Value: "127.0.0.1", Usage: l10n.T("Address to bind to")},
		&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8087, Usage: l10n.T("Port to listen on")},
		&cli.StringFlag{Name: "path-prefix", Usage: l10n.T("Mount all routes under this path")},
		&cli.StringFlag{Name: "work-dir", Value: "deckshow-jobs", Usage: l10n.T("Directory for job artifacts")},
	)

	return &cli.Command{
		Name:   "serve",
		Usage:  l10n.T("Run the async export job service"),
		Flags:  flags,
		Action: runServe,
	}
}

func runServe(c *cli.Context) error {
	log := buildLogger(c)
	fs := osfilesystem.New()

	slides, err := loadSlides(c, fs)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(log)
	defer cancel()

	progress := termprogress.NewNoop()
	runner := server.ExportRunnerFunc(func(jobCtx context.Context, opts export.Options) error {
		orch := buildOrchestrator(fs, nullsink.New(), progress, log)
		_, err := orch.Run(jobCtx, orchestrator.Config{Opts: opts, Headless: true})
		return err
	})

	cfg := server.DefaultConfig()
	cfg.Host = c.String("host")
	cfg.Port = c.Int("port")
	cfg.PathPrefix = c.String("path-prefix")
	cfg.WorkDir = c.String("work-dir")
	cfg.BaseURL = c.String("url")
	cfg.Slides = slides

	srv := server.New(cfg, runner, fs, log)
	return srv.Start(ctx)
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: l10n.T("Show version information"),
		Action: func(c *cli.Context) error {
			fmt.Println(l10n.F("deckshow version %s", version))
			return nil
		},
	}
}

// buildOrchestrator wires the adapters and stages for one export run.
func buildOrchestrator(fs ports.FileSystem, sink ports.DebugSink, progress ports.Progress, log ports.Logger) *orchestrator.Orchestrator {
	renderStage := render.New(fs, pdftool.New(), pptxwriter.New(), progress, log)
	recordStage := record.New(ffmpegenc.New(), sink, progress, log)
	return orchestrator.New(pwbrowser.New(), renderStage, recordStage, mp4probe.New(), log)
}

// loadSlides resolves the deck metadata: manifest when given, placeholder
// slides otherwise.
func loadSlides(c *cli.Context, fs ports.FileSystem) ([]deck.Slide, error) {
	if path := c.String("manifest"); path != "" {
		return config.LoadManifest(fs, path)
	}
	if count := c.Int("slides"); count > 0 {
		return config.PlaceholderSlides(count), nil
	}
	return nil, errors.New(l10n.T("either --manifest or --slides is required"))
}

func buildLogger(c *cli.Context) ports.Logger {
	if c.Bool("quiet") {
		return logger.NewNoop()
	}
	return logger.NewConsole(ports.ParseLogLevel(c.String("log-level")))
}

func signalContext(log ports.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn(l10n.T("Interrupted, shutting down..."))
		cancel()
	}()
	return ctx, cancel
}
