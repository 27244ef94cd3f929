package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"strings"
	"syscall"
	"time"

	"folio-cli/internal/web"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string
	var root string
	var open bool
	var watch bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Preview the site over HTTP (server-rendered, no JS)",
		Long: strings.TrimSpace(`
Serve the portfolio from a local HTTP server.

Pages are rendered on every request from the current data file, so search,
the tag filter and the detail view work as plain links and forms. The data
file is watched and reloaded when it changes.
`),
		Example: strings.TrimSpace(`
# Serve on the configured address
folio serve

# Serve a remote data file on all interfaces
folio --source https://example.com/projects.json serve --addr :3336
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			listenAddr := strings.TrimSpace(addr)
			if listenAddr == "" {
				listenAddr = app.cfg.Addr
			}
			if listenAddr == "" {
				return writeErr(cmd, errors.New("serve: missing --addr"))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := web.NewServer(ctx, web.ServerConfig{
				Addr:   listenAddr,
				Source: app.cfg.Source,
				Root:   root,
				Title:  app.cfg.Title,
				Owner:  app.cfg.Owner,
				Logger: app.logger(),
			})
			if err != nil {
				return writeErr(cmd, err)
			}

			ln, err := net.Listen("tcp", listenAddr)
			if err != nil {
				return writeErr(cmd, err)
			}

			actualAddr := ln.Addr().String()
			url := "http://" + actualAddr + "/"

			opened := false
			openErr := ""
			if open {
				if err := openURL(url); err != nil {
					openErr = err.Error()
				} else {
					opened = true
				}
			}

			hints := []string{}
			if !opened {
				hints = append(hints, "open "+url)
			}

			_ = writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"addr":      actualAddr,
					"url":       url,
					"source":    app.cfg.Source,
					"watching":  watch,
					"opened":    opened,
					"openError": openErr,
					"startedAt": time.Now().UTC().Format(time.RFC3339Nano),
				},
				"_hints": hints,
			})

			fmt.Fprintf(cmd.ErrOrStderr(), "folio serving %s at %s\n", app.cfg.Source, url)
			if openErr != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Failed to open browser: %s\n", openErr)
			}

			return serve(ctx, srv, ln, watch, app.logger())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Bind address (host:port or :port; default from config)")
	cmd.Flags().StringVar(&root, "root", ".", "Directory whose assets/ folder is served for images and files")
	cmd.Flags().BoolVar(&open, "open", false, "Open the preview in your default browser")
	cmd.Flags().BoolVar(&watch, "watch", true, "Reload when the data file changes")
	return cmd
}

// serve runs until ctx is done, then shuts the listener down gracefully.
func serve(ctx context.Context, srv *web.Server, ln net.Listener, watch bool, log *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	httpSrv := &http.Server{
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	watchDone := make(chan struct{})
	go func() {
		defer close(watchDone)
		if !watch {
			return
		}
		if err := srv.Watch(ctx); err != nil {
			log.Warn("data file watcher stopped", zap.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	err := httpSrv.Serve(ln)
	cancel()
	<-watchDone
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func openURL(url string) error {
	url = strings.TrimSpace(url)
	if url == "" {
		return errors.New("empty url")
	}
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Run()
	case "windows":
		return exec.Command("cmd", "/c", "start", "", url).Run()
	default:
		return exec.Command("xdg-open", url).Run()
	}
}
