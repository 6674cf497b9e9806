package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/picket-studio/picket/pkg/cache"
	"github.com/picket-studio/picket/pkg/errors"
	"github.com/picket-studio/picket/pkg/observability"
	"github.com/picket-studio/picket/pkg/palette"
	"github.com/picket-studio/picket/pkg/pipeline"
)

// serveOpts holds flags for the serve command.
type serveOpts struct {
	addr      string
	redisAddr string
	count     int
	colors    int
	family    string
	noCache   bool
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	opts := &serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve <image>",
		Short: "Serve templates over HTTP",
		Long: `Serve placement templates for an image over HTTP.

Endpoints:
  GET /template.svg   rendered SVG template
  GET /template.json  placement data as JSON
  GET /palette.json   the reduced color palette
  GET /healthz        health check

Template endpoints accept count, colors, family, title, grid, and
guide query parameters to override the flag defaults. Results are
cached per parameter combination; pass --redis to share the cache
across instances.`,
		Example: `  picket serve mural.png
  picket serve mural.png --addr :9000 --redis localhost:6379

  curl 'localhost:8466/template.svg?count=900&family=hexagonal'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8466", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "redis address for a shared cache (host:port)")
	cmd.Flags().IntVar(&opts.count, "count", pipeline.DefaultCount, "default number of picks")
	cmd.Flags().IntVar(&opts.colors, "colors", pipeline.DefaultColors, "default palette size")
	cmd.Flags().StringVar(&opts.family, "family", string(pipeline.DefaultFamily), "default layout family")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the pipeline cache")

	return cmd
}

// serveKeyer scopes cache keys by the served image so several serve
// instances can share one Redis without stepping on each other.
func serveKeyer(image string) cache.Keyer {
	return cache.NewScopedKeyer(nil, "serve:"+cache.Hash([]byte(image))[:12]+":")
}

// runServe starts the HTTP server and blocks until the context is cancelled.
func (c *CLI) runServe(cmd *cobra.Command, image string, opts *serveOpts) error {
	ctx := cmd.Context()

	var store cache.Cache
	var err error
	switch {
	case opts.noCache:
		store = cache.NewNullCache()
	case opts.redisAddr != "":
		store, err = cache.NewRedisCache(ctx, opts.redisAddr)
		if err != nil {
			return err
		}
		c.Logger.Info("using redis cache", "addr", opts.redisAddr)
	default:
		store, err = newCache(false)
		if err != nil {
			return err
		}
	}

	runner := pipeline.NewRunner(store, serveKeyer(image), c.Logger)
	defer runner.Close()

	// Warm the source so a bad image path fails at startup, not per request.
	base := pipeline.Options{
		Image:  image,
		Count:  opts.count,
		Colors: opts.colors,
		Family: opts.family,
		Logger: c.Logger,
	}
	if _, err := runner.Source(ctx, base); err != nil {
		return err
	}

	s := &templateServer{
		runner: runner,
		base:   base,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(hookMiddleware)
	r.Get("/template.svg", s.handleTemplateSVG)
	r.Get("/template.json", s.handleTemplateJSON)
	r.Get("/placements.json", s.handleTemplateJSON)
	r.Get("/palette.json", s.handlePalette)
	r.Get("/healthz", s.handleHealth)

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	printInfo("Serving %s on %s", image, opts.addr)
	printDetail("GET /template.svg · /template.json · /palette.json · /healthz")

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// hookMiddleware reports request lifecycle events to the registered server hooks.
func hookMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.Server()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
	})
}

// templateServer holds the shared pipeline state for HTTP handlers.
type templateServer struct {
	runner *pipeline.Runner
	base   pipeline.Options
}

// optionsFromQuery applies query parameter overrides to the base options.
func (s *templateServer) optionsFromQuery(r *http.Request) (pipeline.Options, error) {
	opts := s.base
	q := r.URL.Query()

	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidCount, "invalid count: %q", v)
		}
		opts.Count = n
	}
	if v := q.Get("colors"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidPalette, "invalid colors: %q", v)
		}
		opts.Colors = n
	}
	if v := q.Get("family"); v != "" {
		opts.Family = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	opts.Grid = q.Get("grid") == "true"
	opts.Guide = q.Get("guide") == "true"
	opts.Gradient = q.Get("gradient") == "true"

	return opts, nil
}

// execute runs the pipeline for a single requested format.
func (s *templateServer) execute(r *http.Request, format string) ([]byte, error) {
	opts, err := s.optionsFromQuery(r)
	if err != nil {
		return nil, err
	}
	opts.Formats = []string{format}

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		return nil, err
	}
	return result.Artifacts[format], nil
}

func (s *templateServer) handleTemplateSVG(w http.ResponseWriter, r *http.Request) {
	data, err := s.execute(r, pipeline.FormatSVG)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/svg+xml")
	w.Write(data)
}

func (s *templateServer) handleTemplateJSON(w http.ResponseWriter, r *http.Request) {
	data, err := s.execute(r, pipeline.FormatJSON)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *templateServer) handlePalette(w http.ResponseWriter, r *http.Request) {
	opts, err := s.optionsFromQuery(r)
	if err != nil {
		writeError(w, err)
		return
	}

	src, err := s.runner.Source(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	pal := pipeline.SourcePalette(src)
	infos := make([]palette.Info, len(pal))
	for i, col := range pal {
		infos[i] = palette.Describe(col)
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(infos)
}

func (s *templateServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, `{"status":"ok"}`)
}

// writeError maps structured errors to HTTP responses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidCount, errors.ErrCodeInvalidPattern,
		errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidPalette,
		errors.ErrCodeDegenerateBounds:
		status = http.StatusBadRequest
	case errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": errors.UserMessage(err),
		"code":  string(errors.GetCode(err)),
	})
}
