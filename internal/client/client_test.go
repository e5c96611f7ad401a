package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"lumen/internal/api"
	"lumen/internal/client"
)

type recorded struct {
	method      string
	path        string
	query       string
	contentType string
	auth        string
	body        map[string]any
}

func newServer(t *testing.T, status int, payload any) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.contentType = r.Header.Get("Content-Type")
		rec.auth = r.Header.Get("Authorization")
		rec.body = nil
		if r.ContentLength > 0 {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(payload)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func TestNewEmptyBind(t *testing.T) {
	if _, err := client.New(" ", ""); !errors.Is(err, client.ErrAPIUnavailable) {
		t.Fatalf("expected ErrAPIUnavailable, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, api.Response{Message: "online", Data: "Online"})
	c, err := client.New(srv.URL, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := c.Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if got != "Online" || rec.path != "/status" || rec.method != http.MethodGet {
		t.Fatalf("unexpected result %q for %s %s", got, rec.method, rec.path)
	}
	if rec.auth != "" {
		t.Fatalf("no token configured, got auth %q", rec.auth)
	}
}

func TestSetModeSendsTokenAndBody(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, api.Response{Message: "mode change requested", Data: "cmd-1"})
	c, err := client.New(srv.URL, "secret")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	id, err := c.SetMode(context.Background(), "CLOCK")
	if err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if id != "cmd-1" {
		t.Fatalf("unexpected id %q", id)
	}
	if rec.path != "/led" || rec.method != http.MethodPost {
		t.Fatalf("unexpected request %s %s", rec.method, rec.path)
	}
	if rec.contentType != "application/json" || rec.auth != "Bearer secret" {
		t.Fatalf("unexpected headers: content-type=%q auth=%q", rec.contentType, rec.auth)
	}
	if rec.body["mode"] != "CLOCK" {
		t.Fatalf("unexpected body %v", rec.body)
	}
}

func TestSubmitAndTimers(t *testing.T) {
	srv, rec := newServer(t, http.StatusOK, api.Response{Message: "ok", Data: "cmd-2"})
	c, err := client.New(srv.URL, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx := context.Background()

	if _, err := c.Submit(ctx, "set-mode", map[string]any{"mode": "TIMER"}); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if rec.path != "/" || rec.body["kind"] != "set-mode" {
		t.Fatalf("unexpected submit request %s %v", rec.path, rec.body)
	}

	if _, err := c.SetTimer(ctx, api.TimerRequest{At: "2026-10-16T12:00:00Z", Label: "tea"}); err != nil {
		t.Fatalf("SetTimer: %v", err)
	}
	if rec.path != "/timers" || rec.body["at"] != "2026-10-16T12:00:00Z" {
		t.Fatalf("unexpected timer request %s %v", rec.path, rec.body)
	}
	if _, ok := rec.body["id"]; ok {
		t.Fatal("empty id should be omitted")
	}

	if _, err := c.ClearTimer(ctx, "t1"); err != nil {
		t.Fatalf("ClearTimer: %v", err)
	}
	if rec.method != http.MethodDelete || rec.query != "id=t1" {
		t.Fatalf("unexpected clear request %s ?%s", rec.method, rec.query)
	}
	if _, err := c.ClearTimer(ctx, ""); err != nil {
		t.Fatalf("ClearTimer all: %v", err)
	}
	if rec.query != "" {
		t.Fatalf("expected no query for clear-all, got %q", rec.query)
	}
}

func TestState(t *testing.T) {
	payload := api.StateResponse{Message: "ok", Data: api.State{Running: true, Mode: "CLOCK", Applied: 4}}
	srv, _ := newServer(t, http.StatusOK, payload)
	c, _ := client.New(srv.URL, "")
	state, err := c.State(context.Background())
	if err != nil {
		t.Fatalf("State: %v", err)
	}
	if !state.Running || state.Mode != "CLOCK" || state.Applied != 4 {
		t.Fatalf("unexpected state %+v", state)
	}
}

func TestErrorEnvelope(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, api.ErrorResponse{Message: "unauthorized", Error: 401})
	c, _ := client.New(srv.URL, "")
	_, err := c.SetMode(context.Background(), "CLOCK")
	var apiErr *client.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusUnauthorized || apiErr.Message != "unauthorized" {
		t.Fatalf("unexpected error %+v", apiErr)
	}
	if client.IsAPIUnavailable(err) {
		t.Fatal("API errors are not unavailability")
	}
}

func TestIsAPIUnavailable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := listener.Addr().String()
	_ = listener.Close()

	c, err := client.New(addr, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = c.Status(context.Background())
	if !client.IsAPIUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if client.IsAPIUnavailable(nil) {
		t.Fatal("nil is not unavailable")
	}
}
