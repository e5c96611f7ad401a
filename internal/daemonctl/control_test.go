package daemonctl

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"
	"time"
)

type fakeProbe struct {
	calls   atomic.Int32
	readyAt int32
}

func unavailable() error {
	return &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
}

func (p *fakeProbe) Status(context.Context) (string, error) {
	n := p.calls.Add(1)
	if p.readyAt > 0 && n >= p.readyAt {
		return "Online", nil
	}
	return "", unavailable()
}

type onlineProbe struct{}

func (onlineProbe) Status(context.Context) (string, error) { return "Online", nil }

func TestReadPID(t *testing.T) {
	dir := t.TempDir()

	if _, err := ReadPID(filepath.Join(dir, "missing.pid")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.pid")
	if err := os.WriteFile(bad, []byte("nope\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadPID(bad); err == nil {
		t.Fatal("expected error for malformed pid")
	}

	self := filepath.Join(dir, "self.pid")
	if err := os.WriteFile(self, []byte(strconv.Itoa(os.Getpid())), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadPID(self); err == nil {
		t.Fatal("expected refusal for own pid")
	}

	good := filepath.Join(dir, "good.pid")
	if err := os.WriteFile(good, []byte("4242\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	pid, err := ReadPID(good)
	if err != nil || pid != 4242 {
		t.Fatalf("expected 4242, got %d (%v)", pid, err)
	}
}

func TestWaitForReady(t *testing.T) {
	probe := &fakeProbe{readyAt: 3}
	if err := WaitForReady(context.Background(), probe, 2*time.Second); err != nil {
		t.Fatalf("WaitForReady: %v", err)
	}

	never := &fakeProbe{}
	if err := WaitForReady(context.Background(), never, 150*time.Millisecond); err == nil {
		t.Fatal("expected timeout")
	}
}

func TestWaitForShutdown(t *testing.T) {
	if err := WaitForShutdown(context.Background(), &fakeProbe{}, time.Second); err != nil {
		t.Fatalf("expected immediate shutdown detection, got %v", err)
	}
	if err := WaitForShutdown(context.Background(), onlineProbe{}, 150*time.Millisecond); err == nil {
		t.Fatal("expected timeout while daemon still answers")
	}
}

func TestEnsureStartedAlreadyRunning(t *testing.T) {
	result, err := EnsureStarted(context.Background(), onlineProbe{}, "", LaunchOptions{}, time.Second)
	if err != nil {
		t.Fatalf("EnsureStarted: %v", err)
	}
	if result.State != StartStateAlreadyRunning || result.Launched {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestLaunchRequiresExecutable(t *testing.T) {
	if err := Launch(" ", LaunchOptions{}); err == nil {
		t.Fatal("expected error for empty executable")
	}
}

func TestStopNotRunning(t *testing.T) {
	pidPath := filepath.Join(t.TempDir(), "lumen.pid")
	if _, err := Stop(context.Background(), &fakeProbe{}, pidPath, time.Second); !errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected ErrNotRunning, got %v", err)
	}
	if _, err := Stop(context.Background(), onlineProbe{}, pidPath, time.Second); err == nil || errors.Is(err, ErrNotRunning) {
		t.Fatalf("expected missing pid file error, got %v", err)
	}
}

func TestStopSignalsProcess(t *testing.T) {
	sleeper := exec.Command("sleep", "30")
	if err := sleeper.Start(); err != nil {
		t.Skipf("sleep unavailable: %v", err)
	}
	exited := make(chan struct{})
	go func() {
		_ = sleeper.Wait()
		close(exited)
	}()
	t.Cleanup(func() {
		_ = sleeper.Process.Kill()
	})

	pidPath := filepath.Join(t.TempDir(), "lumen.pid")
	if err := os.WriteFile(pidPath, []byte(fmt.Sprintf("%d\n", sleeper.Process.Pid)), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := Stop(context.Background(), &fakeProbe{}, pidPath, time.Second)
	if err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if result.PID != sleeper.Process.Pid || result.ForcedKill {
		t.Fatalf("unexpected result %+v", result)
	}
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("process did not exit after SIGTERM")
	}
}
