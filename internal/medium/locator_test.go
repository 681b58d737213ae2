package medium

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-cms-medium/pkg/testsupport"
)

func TestLocatorReturnsPostsInLexicographicOrder(t *testing.T) {
	root := testsupport.WriteExport(t, map[string]string{
		"b-post.html": "<html></html>",
		"a-post.html": "<html></html>",
		"notes.txt":   "ignored",
		"c-post.html": "<html></html>",
	})
	if err := os.Mkdir(filepath.Join(root, "posts", "nested.html"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	paths, err := NewLocator(LocatorConfig{}).Locate(root)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}

	want := []string{"a-post.html", "b-post.html", "c-post.html"}
	if len(paths) != len(want) {
		t.Fatalf("expected %d paths, got %v", len(want), paths)
	}
	for idx, name := range want {
		if paths[idx] != filepath.Join(root, "posts", name) {
			t.Fatalf("path %d: expected %s, got %s", idx, name, paths[idx])
		}
	}
}

func TestLocatorPreconditions(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	noPostsFolder := t.TempDir()

	fileRoot := filepath.Join(t.TempDir(), "export.html")
	if err := os.WriteFile(fileRoot, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	emptyPosts := testsupport.WriteExport(t, map[string]string{"readme.md": "# nothing"})

	cases := []struct {
		name string
		root string
		want error
	}{
		{"missing root", missing, ErrSourceNotFound},
		{"root is a file", fileRoot, ErrSourceNotFound},
		{"no posts folder", noPostsFolder, ErrPostsFolderNotFound},
		{"no html posts", emptyPosts, ErrNoPostsFound},
	}

	locator := NewLocator(LocatorConfig{})
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := locator.Locate(tc.root); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLocatorCustomFolderAndPattern(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "articles")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	for _, name := range []string{"one.htm", "two.html"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	paths, err := NewLocator(LocatorConfig{PostsFolder: "articles", Pattern: "*.htm"}).Locate(root)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "one.htm" {
		t.Fatalf("unexpected paths %v", paths)
	}
}

func TestLocatorFollowsSymlinkedPosts(t *testing.T) {
	root := testsupport.WriteExport(t, map[string]string{
		"a.html": "<html></html>",
	})
	staged := t.TempDir()
	target := filepath.Join(staged, "b.html")
	if err := os.WriteFile(target, []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	posts := filepath.Join(root, "posts")
	if err := os.Symlink(target, filepath.Join(posts, "b.html")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(staged, filepath.Join(posts, "linked-dir.html")); err != nil {
		t.Fatalf("symlink dir: %v", err)
	}
	if err := os.Symlink(filepath.Join(staged, "missing.html"), filepath.Join(posts, "broken.html")); err != nil {
		t.Fatalf("symlink broken: %v", err)
	}

	paths, err := NewLocator(LocatorConfig{}).Locate(root)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	want := []string{filepath.Join(posts, "a.html"), filepath.Join(posts, "b.html")}
	if len(paths) != len(want) || paths[0] != want[0] || paths[1] != want[1] {
		t.Fatalf("expected %v, got %v", want, paths)
	}
}

func TestLocatorAcceptsExportOfOnlySymlinks(t *testing.T) {
	root := testsupport.WriteExport(t, nil)
	target := filepath.Join(t.TempDir(), "only.html")
	if err := os.WriteFile(target, []byte("<html></html>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Symlink(target, filepath.Join(root, "posts", "only.html")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	paths, err := NewLocator(LocatorConfig{}).Locate(root)
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}
	if len(paths) != 1 || filepath.Base(paths[0]) != "only.html" {
		t.Fatalf("unexpected paths %v", paths)
	}
}

func TestAliasFromPath(t *testing.T) {
	cases := map[string]string{
		"/export/posts/hello-world.html":     "hello-world",
		"posts/2019-01-01_My-Post-1a2b.html": "2019-01-01_My-Post-1a2b",
		"no-extension":                       "no-extension",
		"dotted.name.html":                   "dotted.name",
	}
	for path, want := range cases {
		if got := aliasFromPath(path); got != want {
			t.Fatalf("aliasFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}
