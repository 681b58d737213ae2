package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-cms-medium/cmd/medium/internal/bootstrap"
	mediumcmd "github.com/goliatone/go-cms-medium/internal/commands/medium"
	"github.com/goliatone/go-cms-medium/internal/logging"
	"github.com/goliatone/go-cms-medium/internal/medium"
	"github.com/goliatone/go-cms-medium/internal/resources"
	"github.com/goliatone/go-cms-medium/internal/runtimeconfig"
	"github.com/goliatone/go-cms-medium/pkg/testsupport"
)

type stubImporter struct {
	calls []medium.Request
}

func (s *stubImporter) Import(_ context.Context, req medium.Request) (*medium.Result, error) {
	s.calls = append(s.calls, req)
	return &medium.Result{RunID: "run-1", RunAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Created: 1, DryRun: req.DryRun}, nil
}

func stubBuilder(t *testing.T, importer mediumcmd.Importer, seen *bootstrap.Options) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(opts bootstrap.Options) (*bootstrap.Module, error) {
		if seen != nil {
			*seen = opts
		}
		cfg := runtimeconfig.DefaultConfig()
		cfg.Import.ParentID = 5
		return &bootstrap.Module{Importer: importer, Logger: logging.NoOp(), Config: cfg}, nil
	}
}

func TestRunImportUsesCommandHandler(t *testing.T) {
	importer := &stubImporter{}
	var seen bootstrap.Options
	stubBuilder(t, importer, &seen)

	var out bytes.Buffer
	if err := runImport([]string{
		"-export", "/exports/medium",
		"-template", "3",
		"-overwrite",
		"-dry-run",
		"-dsn", "file:cli.db",
	}, &out); err != nil {
		t.Fatalf("runImport returned error: %v", err)
	}

	if len(importer.calls) != 1 {
		t.Fatalf("expected import to be called once, got %d", len(importer.calls))
	}
	want := medium.Request{ExportPath: "/exports/medium", ParentID: 5, TemplateID: 3, Overwrite: true, DryRun: true}
	if importer.calls[0] != want {
		t.Fatalf("unexpected request %+v", importer.calls[0])
	}
	if seen.DSN != "file:cli.db" || seen.EnablePrinting == nil || !*seen.EnablePrinting {
		t.Fatalf("unexpected bootstrap options %+v", seen)
	}
	if seen.AuthorID != nil {
		t.Fatal("expected author to stay unset when the flag is absent")
	}
	if got := out.String(); !strings.Contains(got, "run run-1 at 2024-01-01T00:00:00Z: created=1") || !strings.Contains(got, "(dry run)") {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestRunImportRequiresExportPath(t *testing.T) {
	stubBuilder(t, &stubImporter{}, nil)
	if err := runImport([]string{"-parent", "5"}, &bytes.Buffer{}); err == nil {
		t.Fatal("expected validation error for missing export path")
	}
}

func TestRunImportEndToEnd(t *testing.T) {
	dsn := "file:" + filepath.Join(t.TempDir(), "cms.db")
	builder, err := bootstrap.BuildModule(bootstrap.Options{DSN: dsn})
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	if err := builder.Module.Repository().Save(context.Background(), &resources.Resource{PageTitle: "Blog", Alias: "blog", ContextKey: "web"}); err != nil {
		t.Fatalf("seed parent: %v", err)
	}
	_ = builder.Close()

	root := testsupport.WriteExport(t, map[string]string{
		"hello-world.html": testsupport.MediumPost("Hello World", "Summary", "<p>Body</p>", "2019-05-01T12:00:00Z"),
	})

	var out bytes.Buffer
	if err := runImport([]string{"-export", root, "-parent", "1", "-template", "3", "-dsn", dsn}, &out); err != nil {
		t.Fatalf("runImport: %v", err)
	}
	if !strings.Contains(out.String(), "Imported post: hello-world") || !strings.Contains(out.String(), "created=1") {
		t.Fatalf("unexpected output %q", out.String())
	}

	out.Reset()
	if err := runImport([]string{"-export", root, "-parent", "1", "-template", "3", "-dsn", dsn}, &out); err != nil {
		t.Fatalf("second runImport: %v", err)
	}
	if !strings.Contains(out.String(), "Skipped existing post: hello-world") || !strings.Contains(out.String(), "skipped=1") {
		t.Fatalf("unexpected output %q", out.String())
	}
}
