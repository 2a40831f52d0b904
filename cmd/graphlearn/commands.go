package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/graphlearn/backdrop"
	"github.com/graphlearn/backdrop/internal/api"
)

func runView(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := backdrop.NewWindowHost(cfg.Window.Width, cfg.Window.Height, cfg.Window.Container)
	r := backdrop.New(host, cfg.Window.Container, rendererOptions()...)
	defer r.Dispose()
	if err := attachScript(r); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if serveAPI {
		g.Go(func() error { return serve(gctx) })
	}
	// Close the window on interrupt or API failure.
	g.Go(func() error {
		<-gctx.Done()
		host.Close()
		return nil
	})

	runErr := backdrop.Run(host, backdrop.RunConfig{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
	})
	stop()
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("window closed", zap.Uint64("frames", r.Frames()))
	return runErr
}

func runHeadless(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := backdrop.NewHeadlessHost(cfg.Headless.Width, cfg.Headless.Height, cfg.Window.Container)
	r := backdrop.New(host, cfg.Window.Container, rendererOptions()...)
	defer r.Dispose()
	if err := attachScript(r); err != nil {
		return err
	}

	err := backdrop.RunHeadless(ctx, host, backdrop.HeadlessConfig{
		Hz:    cfg.Headless.Hz,
		Ticks: cfg.Headless.Ticks,
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	logger.Info("headless run finished",
		zap.Uint64("frames", r.Frames()),
		zap.Float64("camera_x", r.Camera().Position.X()),
		zap.Float64("camera_y", r.Camera().Position.Y()),
	)
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return serve(gctx) })
	return g.Wait()
}

// serve runs the API until ctx is done.
func serve(ctx context.Context) error {
	readTimeout, err := cfg.GetReadTimeout()
	if err != nil {
		return err
	}
	shutdownTimeout, err := cfg.GetShutdownTimeout()
	if err != nil {
		return err
	}
	log := logger.Named("api")
	h := api.NewHandler(api.NewMemoryStore(), log)
	return api.ListenAndServe(ctx, cfg.Server.Addr, h, api.ServerConfig{
		ReadTimeout:     readTimeout,
		ShutdownTimeout: shutdownTimeout,
	}, log)
}
