package cli

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	kterrors "github.com/sbhuiyan/kintree/pkg/errors"
	"github.com/sbhuiyan/kintree/pkg/pipeline"
	"github.com/sbhuiyan/kintree/pkg/tree"
	"github.com/sbhuiyan/kintree/pkg/view"
)

// serveCommand creates the serve command running a local tree server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		token   string
		noCache bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a family tree over HTTP",
		Long: `Serve a family tree as a small local API.

Endpoints:
  GET /api/tree    normalized family graph as JSON
  GET /api/layout  computed layout (query: device)
  GET /tree.png    rendered tree (query: device, select, lineage, collapse)

With --token set, requests must carry "Authorization: Bearer <token>".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runServe(cmd.Context(), opts, addr, token, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Serve.Addr, "listen address")
	cmd.Flags().StringVar(&token, "token", "", "require this bearer token on every request")
	cmd.Flags().StringVarP(&opts.Device, "device", "d", "", "default device profile")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "reject the document on any validation problem")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// treeServer serves parse, layout, and render results over HTTP.
type treeServer struct {
	cli    *CLI
	runner *pipeline.Runner
	opts   pipeline.Options
}

func (c *CLI) runServe(ctx context.Context, opts pipeline.Options, addr, token string, noCache bool) error {
	opts.Logger = c.Logger
	opts.Formats = []string{pipeline.FormatPNG}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}

	// Fail fast on an unreadable or rejected document.
	if _, err := runner.Parse(ctx, opts); err != nil {
		return err
	}

	srv := &treeServer{cli: c, runner: runner, opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(srv.logRequests)
	if token != "" {
		r.Use(bearerAuth(token))
	}

	r.Get("/api/tree", srv.handleTree)
	r.Get("/api/layout", srv.handleLayout)
	r.Get("/tree.png", srv.handlePNG)

	server := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	c.Logger.Info("serving family tree", "addr", addr, "input", opts.Input)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return ctx.Err()
}

// bearerAuth rejects requests without the expected bearer token.
func bearerAuth(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Bearer "+token {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// logRequests logs each request through the CLI logger.
func (s *treeServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.cli.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// requestOptions derives per-request pipeline options from query params.
func (s *treeServer) requestOptions(r *http.Request, formats ...string) pipeline.Options {
	opts := s.opts
	opts.Formats = formats

	q := r.URL.Query()
	if device := q.Get("device"); device != "" {
		opts.Device = device
	}
	opts.SelectedID = q.Get("select")
	opts.View = view.Options{
		ShowAllGenerations:   q.Get("collapse") == "",
		FocusLineage:         q.Get("lineage") != "",
		ShowGenerationLabels: true,
	}
	return opts
}

func (s *treeServer) handleTree(w http.ResponseWriter, r *http.Request) {
	data, err := s.runner.Parse(r.Context(), s.opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	raw, err := tree.Marshal(data)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

func (s *treeServer) handleLayout(w http.ResponseWriter, r *http.Request) {
	opts := s.requestOptions(r, pipeline.FormatJSON)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result.Layout)
}

func (s *treeServer) handlePNG(w http.ResponseWriter, r *http.Request) {
	opts := s.requestOptions(r, pipeline.FormatPNG)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(result.Artifacts[pipeline.FormatPNG])
}

// writeError maps pipeline error codes onto HTTP statuses.
func (s *treeServer) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch kterrors.GetCode(err) {
	case kterrors.ErrCodeInvalidInput, kterrors.ErrCodeInvalidDevice, kterrors.ErrCodeInvalidFormat, kterrors.ErrCodeInvalidMember:
		status = http.StatusBadRequest
	case kterrors.ErrCodeNotFound, kterrors.ErrCodeMemberNotFound, kterrors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case kterrors.ErrCodeUnauthorized, kterrors.ErrCodeSessionExpired:
		status = http.StatusUnauthorized
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": kterrors.UserMessage(err),
		"code":  string(kterrors.GetCode(err)),
	})
}
