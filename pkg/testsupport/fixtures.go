package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// LoadFixture reads a fixture file.
func LoadFixture(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteExport lays out a Medium export under a temp directory: every entry in
// posts becomes <root>/posts/<name>. It returns the export root.
func WriteExport(t testing.TB, posts map[string]string) string {
	t.Helper()

	root := t.TempDir()
	dir := filepath.Join(root, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create posts dir: %v", err)
	}
	for name, body := range posts {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write post %s: %v", name, err)
		}
	}
	return root
}

// MediumPost renders a post document shaped like Medium's HTML export. An
// empty datetime omits the publication time element.
func MediumPost(title, summary, body, datetime string) string {
	published := ""
	if datetime != "" {
		published = `<footer><p>Published on <a href="https://medium.com/p/1"><time class="dt-published" datetime="` + datetime + `">` + datetime + `</time></a>.</p></footer>`
	}
	return `<!DOCTYPE html><html><head><meta http-equiv="Content-Type" content="text/html; charset=utf-8"><title>` + title + `</title></head>` +
		`<body><article class="h-entry"><header><h1 class="p-name">` + title + `</h1></header>` +
		`<section data-field="summary" class="p-summary">` + summary + `</section>` +
		`<section data-field="body" class="e-content">` + body + `</section>` +
		published + `</article></body></html>`
}
