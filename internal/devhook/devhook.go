// Package devhook is a local echo webhook for trying the chat client without a
// real bot behind it.
package devhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/hookchat/hookchat/internal/logger"
)

// Path is the route the echo webhook answers on
const Path = "/webhook"

// DefaultAddr is the listen address used when none is given
const DefaultAddr = ":8787"

const shutdownTimeout = 5 * time.Second

// Mode selects the shape of the echo reply
type Mode string

const (
	// ModeOutput replies {"output": "echo: <message>"}
	ModeOutput Mode = "output"
	// ModeMessage replies {"message": "echo: <message>"}
	ModeMessage Mode = "message"
	// ModeString replies with a bare JSON string
	ModeString Mode = "string"
	// ModeText replies with a plain-text body
	ModeText Mode = "text"
	// ModeEmpty replies with an empty JSON object
	ModeEmpty Mode = "empty"
	// ModeError replies 500
	ModeError Mode = "error"
)

// Modes lists every supported mode
var Modes = []Mode{ModeOutput, ModeMessage, ModeString, ModeText, ModeEmpty, ModeError}

// ParseMode validates a mode name
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	names := make([]string, len(Modes))
	for i, m := range Modes {
		names[i] = string(m)
	}
	return "", fmt.Errorf("unknown mode %q (want one of %s)", s, strings.Join(names, ", "))
}

// Echo returns the reply text for message
func Echo(message string) string {
	return "echo: " + message
}

// NewRouter builds the webhook handler for mode
func NewRouter(mode Mode) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Post(Path, handleWebhook(mode))
	return r
}

func handleWebhook(mode Mode) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&payload); err != nil {
			respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}

		reply := Echo(payload.Message)
		switch mode {
		case ModeMessage:
			respondJSON(w, http.StatusOK, map[string]string{"message": reply})
		case ModeString:
			respondJSON(w, http.StatusOK, reply)
		case ModeText:
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, reply)
		case ModeEmpty:
			respondJSON(w, http.StatusOK, map[string]string{})
		case ModeError:
			respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "bot unavailable"})
		default:
			respondJSON(w, http.StatusOK, map[string]string{"output": reply})
		}
	}
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.ComponentLogger("Devhook").Warn("failed to write response", "error", err)
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		logger.ComponentLogger("Devhook").Info("request",
			"id", middleware.GetReqID(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

// Server runs the echo webhook until its context is canceled
type Server struct {
	mode Mode
	srv  *http.Server
}

// New creates a server for mode
func New(mode Mode) *Server {
	return &Server{
		mode: mode,
		srv: &http.Server{
			Handler:           NewRouter(mode),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// ListenAndServe listens on addr and serves until ctx is canceled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	log := logger.ComponentLogger("Devhook")
	log.Info("listening", "addr", ln.Addr().String(), "path", Path, "mode", s.mode)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info("stopped")
	return nil
}
