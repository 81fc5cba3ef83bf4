package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncerCoalescesBurst(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32

	for i := 0; i < 10; i++ {
		d.Trigger(func() { calls.Add(1) })
	}

	time.Sleep(120 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Errorf("expected one coalesced call, got %d", got)
	}
}

func TestDebouncerRunsAgainAfterWindow(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	time.Sleep(80 * time.Millisecond)
	d.Trigger(func() { calls.Add(1) })
	time.Sleep(80 * time.Millisecond)

	if got := calls.Load(); got != 2 {
		t.Errorf("expected two separated calls, got %d", got)
	}
}

func TestDebouncerCancel(t *testing.T) {
	d := NewDebouncer(30 * time.Millisecond)
	var calls atomic.Int32

	d.Trigger(func() { calls.Add(1) })
	d.Cancel()

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 0 {
		t.Errorf("cancelled callback still ran %d times", got)
	}
}

func TestDebouncerDefaultWindow(t *testing.T) {
	if got := NewDebouncer(0).Window(); got != DefaultDebounce {
		t.Errorf("expected default window %v, got %v", DefaultDebounce, got)
	}
}

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outline.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan struct{}, 1)
	w, err := New(path, 20*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(`[{"id":"a","value":"a","rank":0}]`), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not fire after write")
	}
}

func TestWatcherIgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outline.json")
	if err := os.WriteFile(path, []byte("[]"), 0644); err != nil {
		t.Fatal(err)
	}

	fired := make(chan struct{}, 1)
	w, err := New(path, 20*time.Millisecond, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-fired:
		t.Fatal("watcher fired for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherStopIsIdempotentSafe(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "outline.json")
	os.WriteFile(path, []byte("[]"), 0644)

	w, err := New(path, 20*time.Millisecond, func() {})
	if err != nil {
		t.Fatalf("new watcher: %v", err)
	}
	if err := w.Start(); err != nil {
		t.Fatalf("start watcher: %v", err)
	}
	if err := w.Stop(); err != nil {
		t.Errorf("stop: %v", err)
	}
}
