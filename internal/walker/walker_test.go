package walker

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// testdataDir returns the absolute path to the testdata/docs directory.
func testdataDir(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("unable to determine test file location")
	}
	root := filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "docs")
	abs, err := filepath.Abs(root)
	if err != nil {
		t.Fatalf("resolve testdata path: %v", err)
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		t.Fatalf("testdata dir does not exist: %s", abs)
	}
	return abs
}

func relPaths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	return out
}

func TestWalk_BasicTraversal(t *testing.T) {
	files, err := Walk(WalkerConfig{RootDir: testdataDir(t)})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	got := relPaths(files)
	want := []string{"drafts/wip.md", "guides/writing.md", "index.md"}
	if len(got) != len(want) {
		t.Fatalf("Walk() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestWalk_FileInfoFields(t *testing.T) {
	files, err := Walk(WalkerConfig{RootDir: testdataDir(t)})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for _, f := range files {
		if !filepath.IsAbs(f.Path) {
			t.Errorf("FileInfo.Path %q is not absolute", f.Path)
		}
		if f.Size <= 0 {
			t.Errorf("FileInfo.Size for %s = %d", f.RelPath, f.Size)
		}
		if len(f.ContentHash) != 64 {
			t.Errorf("FileInfo.ContentHash for %s has length %d", f.RelPath, len(f.ContentHash))
		}
	}
}

func TestWalk_Exclude(t *testing.T) {
	files, err := Walk(WalkerConfig{
		RootDir: testdataDir(t),
		Exclude: []string{"drafts/**"},
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	for _, f := range files {
		if f.RelPath == "drafts/wip.md" {
			t.Error("drafts should be excluded")
		}
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want 2", len(files))
	}
}

func TestWalk_Include(t *testing.T) {
	files, err := Walk(WalkerConfig{
		RootDir: testdataDir(t),
		Include: []string{"guides/**"},
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 1 || files[0].RelPath != "guides/writing.md" {
		t.Errorf("Walk() = %v", relPaths(files))
	}
}

func TestWalk_Gitignore(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.md", "b.md", "tmp/c.md"} {
		p := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte("# x\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte("# comment\nb.md\ntmp/\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := Walk(WalkerConfig{RootDir: dir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if got := relPaths(files); len(got) != 1 || got[0] != "a.md" {
		t.Errorf("Walk() = %v, want [a.md]", got)
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	if _, err := Walk(WalkerConfig{RootDir: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		path     string
		patterns []string
		want     bool
	}{
		{"guides/writing.md", []string{"**/*.md"}, true},
		{"index.md", []string{"**/*.md"}, true},
		{"drafts/wip.md", []string{"drafts/**"}, true},
		{"guides/writing.md", []string{"drafts/**"}, false},
		{"a/b/remote.test", []string{"remote.test"}, true},
		{"a/b/local.test", []string{"remote.test"}, false},
	}
	for _, tt := range tests {
		if got := MatchesAny(tt.path, tt.patterns); got != tt.want {
			t.Errorf("MatchesAny(%q, %v) = %v, want %v", tt.path, tt.patterns, got, tt.want)
		}
	}
}

func TestIsMarkdown(t *testing.T) {
	for name, want := range map[string]bool{"a.md": true, "B.MD": true, "c.markdown": true, "d.txt": false, "md": false} {
		if got := IsMarkdown(name); got != want {
			t.Errorf("IsMarkdown(%q) = %v, want %v", name, got, want)
		}
	}
}
