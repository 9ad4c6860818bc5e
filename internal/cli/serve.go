package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	publishing "github.com/goliatone/go-publishing"
	"github.com/goliatone/go-publishing/components/settingspage"
)

const assetsPath = "/assets/"

var signalNotifyContext = signal.NotifyContext

func newServeCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the settings page over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalNotifyContext(cmd.Context(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rt, err := runtimeFromCommand(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			if listen != "" {
				rt.Config.Listen = listen
			}
			return serveSettings(ctx, rt, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "Address to listen on (overrides config)")

	return cmd
}

func serveSettings(ctx context.Context, rt *runtime, out io.Writer) error {
	mux := http.NewServeMux()
	mux.Handle(assetsPath, http.StripPrefix(assetsPath, http.FileServer(http.FS(publishing.RuntimeAssetsFS()))))

	// One token per process; restarting the server invalidates open forms.
	token := uuid.NewString()
	component := settingspage.New(rt.Group, rt.Store,
		settingspage.WithLogger(rt.Logger),
		settingspage.WithCSRFToken(func(*http.Request) string { return token }),
		settingspage.WithScripts(assetsPath+publishing.RuntimeScript),
	)
	pattern, err := component.RegisterRoutes(mux, "/")
	if err != nil {
		return err
	}

	listener, err := net.Listen("tcp", rt.Config.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", rt.Config.Listen, err)
	}
	defer listener.Close()

	server := &http.Server{
		Handler:           loggingMiddleware(mux, rt.Logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Fprintf(out, "Serving settings at http://%s%s\n", listener.Addr().String(), pattern)

	errCh := make(chan error, 1)
	go func() {
		err := server.Serve(listener)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		<-errCh
		return nil
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func loggingMiddleware(next http.Handler, logger *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, req)
		logger.Info("request",
			slog.String("method", req.Method),
			slog.String("path", req.URL.Path),
			slog.Int("status", recorder.status),
			slog.Duration("duration", time.Since(start)),
		)
	})
}
