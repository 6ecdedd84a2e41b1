// Package server exposes table layout and rendering over HTTP.
//
//	POST /layout?width=W[&report=1]   declaration in, geometry JSON out
//	POST /render?width=W               declaration in, PNG out
//	GET  /healthz
//
// With server.rate_limit set, layout and render requests beyond the
// limit get 429.
//
// Declarations are JSON unless the request's Content-Type names
// javascript. A missing width uses the configured default.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"tabula/pkg/config"
	"tabula/pkg/decl"
	"tabula/pkg/images"
	"tabula/pkg/layout"
	rendering "tabula/pkg/render"
	"tabula/pkg/text"
)

type Server struct {
	cfg    config.Config
	logger *zap.Logger
	router chi.Router
}

// New returns a server for cfg. A nil logger discards logs.
func New(cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{cfg: cfg, logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, r, map[string]string{"status": "ok"})
	})
	r.Group(func(r chi.Router) {
		if cfg.Server.RateLimit > 0 {
			r.Use(s.limit(rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.Burst)))
		}
		r.Post("/layout", s.handleLayout)
		r.Post("/render", s.handleRender)
	})

	s.router = r
	return s
}

// Handler returns the router.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on the configured address until ctx is cancelled,
// then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", srv.Addr))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// limit rejects requests the limiter does not allow right away.
func (s *Server) limit(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				s.fail(w, r, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// layoutRequest decodes the declaration and width of r and computes the
// table. Errors are already written to w when ok is false.
func (s *Server) layoutRequest(w http.ResponseWriter, r *http.Request) (*layout.Result, *text.Measurer, bool) {
	width := s.cfg.Width
	if q := r.URL.Query().Get("width"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil || v < 0 {
			s.fail(w, r, http.StatusBadRequest, fmt.Errorf("width %q must be a non-negative number", q))
			return nil, nil, false
		}
		width = v
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes))
	if err != nil {
		s.fail(w, r, http.StatusRequestEntityTooLarge, err)
		return nil, nil, false
	}

	format := decl.DetectFormat("", r.Header.Get("Content-Type"))
	d, err := decl.Parse(r.Context(), "request", body, format, s.logger)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return nil, nil, false
	}

	// Faces are not safe for concurrent drawing, so each request measures
	// with its own.
	m := text.NewMeasurer(text.FontConfig{Regular: s.cfg.Fonts.Regular, Bold: s.cfg.Fonts.Bold})
	table, err := d.Build(images.NewMeasurer(m), layout.WithLogger(s.logger), layout.WithDebug(s.cfg.Debug))
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return nil, nil, false
	}
	res, err := table.Recompute(width)
	if err != nil {
		s.fail(w, r, statusFor(err), err)
		return nil, nil, false
	}
	return res, m, true
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	res, _, ok := s.layoutRequest(w, r)
	if !ok {
		return
	}
	withReport := r.URL.Query().Get("report") != ""
	respondJSON(w, r, decl.NewGeometry(res, withReport))
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	res, m, ok := s.layoutRequest(w, r)
	if !ok {
		return
	}
	painter := rendering.ForResult(res, m)
	painter.Render(res)

	var buf bytes.Buffer
	if err := painter.EncodePNG(&buf); err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Write(buf.Bytes()) //nolint:errcheck
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err), zap.String("path", r.URL.Path))
	} else {
		s.logger.Debug("request rejected", zap.Error(err), zap.Int("status", status))
	}
	render.Status(r, status)
	respondJSON(w, r, errorResponse{Error: err.Error()})
}

// statusFor maps declaration and layout errors to client errors.
func statusFor(err error) int {
	var cfgErr *layout.ConfigError
	switch {
	case errors.Is(err, decl.ErrInvalidDeclaration), errors.Is(err, decl.ErrNoTable),
		errors.Is(err, images.ErrFilesDisabled), errors.As(err, &cfgErr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, layout.ErrInvalidWidth):
		return http.StatusBadRequest
	case errors.Is(err, layout.ErrInvalidMeasurement):
		return http.StatusInternalServerError
	default:
		return http.StatusBadRequest
	}
}

// respondJSON writes v with the status stored by render.Status, if any.
func respondJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	buf, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if status, ok := r.Context().Value(render.StatusCtxKey).(int); ok {
		w.WriteHeader(status)
	}
	w.Write(buf) //nolint:errcheck
}
