package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"lumen/internal/api"
	"lumen/internal/command"
	"lumen/internal/config"
	"lumen/internal/logging"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

var (
	errNotJSON      = errors.New("request body must be a JSON object")
	errBodyTooLarge = errors.New("request body too large")
)

// APIServer is the HTTP front door. It turns requests into commands and
// enqueues them on the daemon.
type APIServer struct {
	bind   string
	token  string
	logger *slog.Logger
	daemon *Daemon

	handler http.Handler
	server  *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// NewAPIServer builds the server for cfg.API.Bind. Nothing listens until Start.
func NewAPIServer(cfg *config.Config, d *Daemon, logger *slog.Logger) (*APIServer, error) {
	if cfg == nil || d == nil {
		return nil, errors.New("api server requires config and daemon")
	}
	bind := strings.TrimSpace(cfg.API.Bind)
	if bind == "" {
		return nil, errors.New("api bind address is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	srv := &APIServer{
		bind:   bind,
		token:  cfg.API.Token,
		logger: logging.NewComponentLogger(logger, "api"),
		daemon: d,
	}

	mux := http.NewServeMux()
	// Method checks wrap auth so a wrong verb is rejected the same way with
	// or without a token.
	mux.HandleFunc("/status", srv.allowMethods(http.StatusMethodNotAllowed, srv.handleStatus, http.MethodGet))
	mux.HandleFunc("/{$}", srv.allowMethods(http.StatusForbidden, srv.authMiddleware(srv.handleCreate), http.MethodPost))
	mux.HandleFunc("/led", srv.allowMethods(http.StatusForbidden, srv.authMiddleware(srv.handleMode), http.MethodPost))
	mux.HandleFunc("/timers", srv.allowMethods(http.StatusForbidden, srv.authMiddleware(srv.handleTimers), http.MethodPost, http.MethodDelete))
	mux.HandleFunc("/state", srv.allowMethods(http.StatusMethodNotAllowed, srv.authMiddleware(srv.handleState), http.MethodGet))
	mux.HandleFunc("/", srv.handleNotFound)
	srv.handler = withResponseHeaders(mux)

	srv.server = &http.Server{
		Handler:           srv.handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	return srv, nil
}

// Handler exposes the routed handler, mainly for tests.
func (s *APIServer) Handler() http.Handler {
	return s.handler
}

// Start binds the listener and serves in the background until ctx is
// cancelled or Stop is called.
func (s *APIServer) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.bind)
	if err != nil {
		return fmt.Errorf("api listen: %w", err)
	}
	s.mu.Lock()
	s.listener = listener
	s.mu.Unlock()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.ErrorWithContext(s.logger, "api server error", "api_serve_failed", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("api server listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down, letting in-flight requests finish within the
// shutdown budget.
func (s *APIServer) Stop() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		logging.WarnWithContext(s.logger, "api shutdown incomplete", "api_shutdown_failed", logging.Error(err))
	}
	s.mu.Lock()
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
	s.mu.Unlock()
}

// Addr returns the bound address, or the configured bind before Start.
func (s *APIServer) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.bind
}

func (s *APIServer) handleCreate(w http.ResponseWriter, r *http.Request) {
	body, err := decodeJSONObject(w, r)
	if err != nil {
		s.writeDecodeError(w, err)
		return
	}
	kind, _ := body["kind"].(string)
	if strings.TrimSpace(kind) == "" {
		s.writeError(w, http.StatusBadRequest, "kind is required")
		return
	}
	var params map[string]any
	if raw, ok := body["params"]; ok && raw != nil {
		params, ok = raw.(map[string]any)
		if !ok {
			s.writeError(w, http.StatusBadRequest, "params must be a JSON object")
			return
		}
	}
	cmd, err := command.New(command.Kind(kind), params)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.submit(w, r, cmd, "resource created")
}

func (s *APIServer) handleMode(w http.ResponseWriter, r *http.Request) {
	body, err := decodeJSONObject(w, r)
	if err != nil {
		s.writeDecodeError(w, err)
		return
	}
	target, _ := body[command.ParamMode].(string)
	if target == "" {
		s.writeError(w, http.StatusBadRequest, "mode is required")
		return
	}
	s.submit(w, r, command.SetMode(target), "mode change requested")
}

func (s *APIServer) handleTimers(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		s.handleTimerSet(w, r)
		return
	}
	var params map[string]any
	if id := strings.TrimSpace(r.URL.Query().Get("id")); id != "" {
		params = map[string]any{command.ParamID: id}
	}
	cmd, err := command.New(command.KindClearTimer, params)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.submit(w, r, cmd, "timer clear requested")
}

func (s *APIServer) handleTimerSet(w http.ResponseWriter, r *http.Request) {
	body, err := decodeJSONObject(w, r)
	if err != nil {
		s.writeDecodeError(w, err)
		return
	}
	at, _ := body[command.ParamAt].(string)
	if strings.TrimSpace(at) == "" {
		s.writeError(w, http.StatusBadRequest, "at is required")
		return
	}
	params := map[string]any{command.ParamAt: at}
	for _, key := range []string{command.ParamLabel, command.ParamID} {
		raw, ok := body[key]
		if !ok || raw == nil {
			continue
		}
		value, ok := raw.(string)
		if !ok {
			s.writeError(w, http.StatusBadRequest, key+" must be a string")
			return
		}
		params[key] = value
	}
	cmd, err := command.New(command.KindSetTimer, params)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.submit(w, r, cmd, "timer requested")
}

func (s *APIServer) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, api.Response{Message: "online", Data: "Online"})
}

func (s *APIServer) handleState(w http.ResponseWriter, _ *http.Request) {
	payload := api.StateResponse{
		Message: "ok",
		Data:    api.FromState(s.daemon.State(), s.daemon.Running()),
	}
	s.writeJSON(w, http.StatusOK, payload)
}

func (s *APIServer) handleNotFound(w http.ResponseWriter, _ *http.Request) {
	s.writeError(w, http.StatusNotFound, "not found")
}

func (s *APIServer) submit(w http.ResponseWriter, r *http.Request, cmd command.Command, message string) {
	s.daemon.Enqueue(cmd)
	s.logger.Debug("command enqueued",
		logging.String(logging.FieldCommandID, cmd.ID()),
		logging.String(logging.FieldCommandKind, string(cmd.Kind())),
		logging.String(logging.FieldRemoteAddr, r.RemoteAddr),
	)
	s.writeJSON(w, http.StatusOK, api.Response{Message: message, Data: cmd.ID()})
}

func (s *APIServer) writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, errBodyTooLarge) {
		s.writeError(w, http.StatusRequestEntityTooLarge, err.Error())
		return
	}
	s.writeError(w, http.StatusUnauthorized, err.Error())
}

func (s *APIServer) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Debug("api response encode failed", logging.Error(err))
	}
}

func (s *APIServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Message: message, Error: status})
}

func withResponseHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := w.Header()
		header.Set("Content-Type", "application/json")
		header.Set("Cache-Control", "max-age=0, private, must-revalidate")
		header.Set("X-Content-Type-Options", "nosniff")
		next.ServeHTTP(w, r)
	})
}

// decodeJSONObject reads a single JSON object from a request declared as JSON.
func decodeJSONObject(w http.ResponseWriter, r *http.Request) (map[string]any, error) {
	if !isJSONContentType(r.Header.Get("Content-Type")) {
		return nil, errNotJSON
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	decoder := json.NewDecoder(r.Body)
	var body map[string]any
	if err := decoder.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errBodyTooLarge
		}
		return nil, errNotJSON
	}
	if body == nil || decoder.More() {
		return nil, errNotJSON
	}
	return body, nil
}

func isJSONContentType(value string) bool {
	if value == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}
