package site

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestWatcherRebuildsOnChange(t *testing.T) {
	docsDir := t.TempDir()
	writeTestFile(t, filepath.Join(docsDir, "index.md"), "# Index\n\n## Intro\n")

	gen := NewGenerator(docsDir, t.TempDir(), "test")
	if _, err := gen.Generate(context.Background()); err != nil {
		t.Fatalf("Generate error: %v", err)
	}

	builds := make(chan *Result, 4)
	w, err := NewWatcher(gen, func(r *Result) { builds <- r }, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	writeTestFile(t, filepath.Join(docsDir, "second.md"), "# Second\n\n## Body\n\n### Detail\n")

	select {
	case r := <-builds:
		if len(r.Pages) != 2 {
			t.Errorf("pages = %d, want 2", len(r.Pages))
		}
		if gen.Last() != r {
			t.Error("Last() should be the rebuilt result")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after change")
	}

	if s := w.Stats(); s.Events == 0 || s.Rebuilds == 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestWatcherIgnoresNonMarkdown(t *testing.T) {
	docsDir := t.TempDir()
	writeTestFile(t, filepath.Join(docsDir, "index.md"), "# Index\n")

	gen := NewGenerator(docsDir, t.TempDir(), "test")
	builds := make(chan *Result, 1)
	w, err := NewWatcher(gen, func(r *Result) { builds <- r }, WithDebounce(20*time.Millisecond))
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	if err := w.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer w.Stop()

	writeTestFile(t, filepath.Join(docsDir, "notes.txt"), "scratch")

	select {
	case <-builds:
		t.Fatal("non-markdown change should not rebuild")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcherStartMissingDir(t *testing.T) {
	gen := NewGenerator(filepath.Join(t.TempDir(), "missing"), t.TempDir(), "test")
	w, err := NewWatcher(gen, nil)
	if err != nil {
		t.Fatalf("NewWatcher: %v", err)
	}
	defer w.Stop()
	if err := w.Start(context.Background()); err == nil {
		t.Error("Start should fail for a missing content dir")
	}
}
