// Command pocketdash runs the demo menu on a terminal standing in for a
// 128x64 monochrome display.
//
// Keys: arrows or j/k move, Enter or right arrow selects, Esc, Backspace or
// left arrow goes back, h jumps to the top and q quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/go-drift/pocketdash/cmd/pocketdash/internal/config"
	"github.com/go-drift/pocketdash/cmd/pocketdash/internal/display"
	"github.com/go-drift/pocketdash/cmd/pocketdash/internal/screens"
	"github.com/go-drift/pocketdash/pkg/core"
	"github.com/go-drift/pocketdash/pkg/engine"
	"github.com/go-drift/pocketdash/pkg/navigation"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("pocketdash", flag.ContinueOnError)
	configPath := fs.String("config", config.DefaultFile, "configuration `file`")
	pngDir := fs.String("png", "", "also write every frame as a PNG into `dir`")
	metricsAddr := fs.String("metrics", "", "serve /metrics and /debug/ on `addr`")
	showVersion := fs.Bool("version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if *showVersion {
		fmt.Printf("pocketdash version %s (built %s)\n", Version, BuildTime)
		return nil
	}

	cfg, err := config.Resolve(*configPath, Version)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, quit := context.WithCancel(ctx)
	defer quit()

	var eng *engine.Engine
	terminal := display.NewTerminal(os.Stdout, func() string {
		return fmt.Sprintf("pocketdash %s  frames %d  q quits", Version, eng.Frames())
	})
	defer terminal.Close()

	var out engine.Display = terminal
	if *pngDir != "" {
		pngs, err := display.NewPNGDir(*pngDir)
		if err != nil {
			return err
		}
		out = display.Multi(terminal, pngs)
	}

	opts := screens.Options{
		Scroll:      cfg.ScrollDuration,
		BaseStep:    cfg.BaseStep,
		VisibleRows: cfg.VisibleRows,
		Gap:         cfg.Gap,
		Virtual:     cfg.Virtual,
	}
	root := func() core.Component {
		var shell *navigation.Shell
		confirmQuit := func() {
			shell.ShowDialog(navigation.DialogOptions{
				Lines:     []string{"Quit pocketdash?", "Select to confirm"},
				OnConfirm: quit,
			})
		}
		shell = navigation.NewShell(navigation.ShellConfig{
			Home:     screens.Home(opts, confirmQuit),
			Duration: cfg.PushDuration,
			BaseStep: cfg.BaseStep,
		})
		return shell
	}
	eng, err = engine.New(engine.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		FPS:    cfg.FPS,
		Name:   "pocketdash",
	}, root, out)
	if err != nil {
		return err
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		state, err := term.MakeRaw(int(os.Stdin.Fd()))
		if err != nil {
			return fmt.Errorf("failed to enter raw mode: %w", err)
		}
		defer term.Restore(int(os.Stdin.Fd()), state)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return eng.Run(gctx) })
	g.Go(func() error { return readInput(gctx, os.Stdin, eng, quit) })
	if *metricsAddr != "" {
		g.Go(func() error { return serveMetrics(gctx, *metricsAddr, eng) })
	}
	return g.Wait()
}

// readInput decodes key presses from r and posts them to the engine until
// ctx is done. End of input leaves the engine running.
func readInput(ctx context.Context, r io.Reader, eng *engine.Engine, quit func()) error {
	chunks := make(chan []byte)
	go func() {
		defer close(chunks)
		buf := make([]byte, 64)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				chunk := append([]byte(nil), buf[:n]...)
				select {
				case chunks <- chunk:
				case <-ctx.Done():
					return
				}
			}
			if err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case chunk, ok := <-chunks:
			if !ok {
				<-ctx.Done()
				return nil
			}
			for _, key := range display.DecodeKeys(chunk) {
				if key.Quit {
					quit()
					return nil
				}
				b := key.Button
				eng.Post(func() {
					if shell, ok := eng.Root().(*navigation.Shell); ok {
						shell.Handle(b)
					}
				})
			}
		}
	}
}

func serveMetrics(ctx context.Context, addr string, eng *engine.Engine) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/debug/", http.StripPrefix("/debug", eng.DebugHandler()))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	select {
	case err := <-errc:
		return fmt.Errorf("metrics server: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
