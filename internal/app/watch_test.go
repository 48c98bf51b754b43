package app

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dshills/ropeview/internal/config"
	"github.com/dshills/ropeview/internal/watch"
)

type fakeSource struct {
	events chan watch.Event
	errors chan error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		events: make(chan watch.Event, 4),
		errors: make(chan error, 4),
	}
}

func (f *fakeSource) Events() <-chan watch.Event { return f.events }
func (f *fakeSource) Errors() <-chan error       { return f.errors }
func (f *fakeSource) Close() error {
	close(f.events)
	close(f.errors)
	return nil
}

// syncBuffer guards a buffer written by the watch goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func waitForOutput(t *testing.T, out *syncBuffer, lines int) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for strings.Count(out.String(), "\n") < lines {
		if time.Now().After(deadline) {
			t.Fatalf("output = %q, want %d lines", out.String(), lines)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWatchRerunsOnEvents(t *testing.T) {
	out := &syncBuffer{}
	r, err := New(config.Default(), WithOutput(out))
	if err != nil {
		t.Fatal(err)
	}

	src := newFakeSource()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- r.Watch(ctx, []Script{InlineScript(`print("run")`)}, src)
	}()

	waitForOutput(t, out, 1)
	src.errors <- errors.New("transient")
	src.events <- watch.Event{Path: "/x.lua", Op: watch.OpWrite}
	waitForOutput(t, out, 2)

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not stop after cancel")
	}
}

func TestWatchStopsWhenSourceCloses(t *testing.T) {
	r, err := New(config.Default(), WithOutput(&syncBuffer{}))
	if err != nil {
		t.Fatal(err)
	}

	src := newFakeSource()
	src.Close()

	if err := r.Watch(context.Background(), []Script{InlineScript(`x = 1`)}, src); err != nil {
		t.Errorf("Watch() error = %v", err)
	}
}

func TestWatchStopsWhenDebouncedSourceEnds(t *testing.T) {
	r, err := New(config.Default(), WithOutput(&syncBuffer{}))
	if err != nil {
		t.Fatal(err)
	}

	src := newFakeSource()
	d := watch.NewDebounced(src, time.Hour)
	src.Close()

	done := make(chan error, 1)
	go func() {
		done <- r.Watch(context.Background(), []Script{InlineScript(`x = 1`)}, d)
	}()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Watch() error = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Watch() did not return after the debounced source ended")
	}
}

func TestWatchFilesMissingScript(t *testing.T) {
	r, err := New(config.Default(), WithOutput(&syncBuffer{}))
	if err != nil {
		t.Fatal(err)
	}

	err = r.WatchFiles(context.Background(), []Script{FileScript("/nonexistent/script.lua")})
	if !errors.Is(err, watch.ErrPathNotExist) {
		t.Errorf("WatchFiles() error = %v, want ErrPathNotExist", err)
	}
}
