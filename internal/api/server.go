package api

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// ServerConfig configures Serve.
type ServerConfig struct {
	ReadTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Serve serves h on ln until ctx is cancelled, then shuts down gracefully
// within cfg.ShutdownTimeout. It returns nil after a clean shutdown.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, cfg ServerConfig, log *zap.Logger) error {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = 5 * time.Second
	}
	server := &http.Server{
		Handler:           h,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadTimeout,
	}

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Serve(ln)
	}()
	log.Info("api listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		server.Close()
		<-errChan
		return err
	}
	<-errChan
	log.Info("api stopped")
	return nil
}

// ListenAndServe listens on addr and calls Serve.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, cfg ServerConfig, log *zap.Logger) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	return Serve(ctx, ln, h, cfg, log)
}
