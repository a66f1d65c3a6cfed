package store

import (
	"context"
	"testing"
	"time"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func TestPersistenceWatchEmitsEntryChanges(t *testing.T) {
	base := t.TempDir()
	p, err := Load(testConfig{path: base})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	e, err := p.Create(ctx, "Monday", "hello world")
	if err != nil {
		t.Fatalf("create entry: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventInvalidated {
				return
			}
			if evt.Type == EventEntryChanged {
				if evt.ID != e.ID {
					continue
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for entry change event")
		}
	}
}

func TestPersistenceWatchClosesOnCancel(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("watch channel not closed after cancel")
		}
	}
}

func TestIDForPath(t *testing.T) {
	p := &Disk{basePath: "/tmp/diary"}
	tests := map[string]string{
		"/tmp/diary/journals/abc":       "abc",
		"/tmp/diary/journals/.tmp-1234": "",
		"/tmp/diary/journals":           "",
		"/tmp/diary/other/abc":          "",
		"/tmp/diary":                    "",
	}
	for path, want := range tests {
		if got := p.idForPath(path); got != want {
			t.Errorf("idForPath(%q) = %q, want %q", path, got, want)
		}
	}
}
