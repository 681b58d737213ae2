package medium_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	medium "github.com/goliatone/go-cms-medium"
)

func TestDefaultConfigMatchesImportDefaults(t *testing.T) {
	cfg := medium.DefaultConfig()
	if cfg.Import.EnableLogging || cfg.Import.EnablePrinting || cfg.Import.Overwrite {
		t.Fatalf("expected import toggles off by default, got %+v", cfg.Import)
	}
	if cfg.Import.TemplateID != 0 || cfg.Import.ParentID != 0 {
		t.Fatalf("expected zero target ids, got %+v", cfg.Import)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected default config to validate, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medium.yaml")
	if err := os.WriteFile(path, []byte("import:\n  parent_id: 5\n  template_id: 3\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := medium.LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Import.ParentID != 5 || cfg.Import.TemplateID != 3 {
		t.Fatalf("unexpected import config %+v", cfg.Import)
	}

	cfg.Import.TemplateID = -1
	if err := cfg.Validate(); !errors.Is(err, medium.ErrTemplateIDInvalid) {
		t.Fatalf("expected ErrTemplateIDInvalid, got %v", err)
	}
}
