package medium

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	defaultPostsFolder = "posts"
	defaultPostPattern = "*.html"
)

// LocatorConfig configures post discovery inside an export.
type LocatorConfig struct {
	// PostsFolder is the sub-directory of the export holding posts.
	PostsFolder string
	// Pattern limits discovered files to those matching the glob (defaults to "*.html").
	Pattern string
}

// Locator enumerates the post files of a Medium export.
type Locator struct {
	postsFolder string
	pattern     string
}

// NewLocator constructs a Locator, filling blank settings with defaults.
func NewLocator(cfg LocatorConfig) *Locator {
	folder := strings.TrimSpace(cfg.PostsFolder)
	if folder == "" {
		folder = defaultPostsFolder
	}
	pattern := strings.TrimSpace(cfg.Pattern)
	if pattern == "" {
		pattern = defaultPostPattern
	}
	return &Locator{postsFolder: folder, pattern: pattern}
}

// Locate returns the post files under root, sorted by file name. Only regular
// files directly inside the posts folder are considered; symlinks count when
// they resolve to one.
func (l *Locator) Locate(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, root)
	}

	dir := filepath.Join(root, l.postsFolder)
	info, err = os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrPostsFolderNotFound, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("medium locator read %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		matched, err := filepath.Match(l.pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("medium locator pattern %q: %w", l.pattern, err)
		}
		if matched && isRegularFile(dir, entry) {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoPostsFound, dir)
	}

	sort.Strings(names)
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = filepath.Join(dir, name)
	}
	return paths, nil
}

func isRegularFile(dir string, entry os.DirEntry) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(dir, entry.Name()))
	return err == nil && info.Mode().IsRegular()
}

// aliasFromPath returns the file name of path without its extension.
func aliasFromPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
