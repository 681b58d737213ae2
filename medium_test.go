package medium_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	medium "github.com/goliatone/go-cms-medium"
	"github.com/goliatone/go-cms-medium/internal/di"
	"github.com/goliatone/go-cms-medium/internal/resources"
	"github.com/goliatone/go-cms-medium/pkg/testsupport"
)

func newModule(t *testing.T, cfg medium.Config, opts ...di.Option) *medium.Module {
	t.Helper()
	db := testsupport.NewResourceDB(t, &resources.Resource{ID: 5, PageTitle: "Blog", Alias: "blog", ContextKey: "web"})
	module, err := medium.New(cfg, append([]di.Option{di.WithBunDB(db)}, opts...)...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = module.Close() })
	return module
}

func TestModuleImportUsesConfiguredTarget(t *testing.T) {
	cfg := medium.DefaultConfig()
	cfg.Import.ParentID = 5
	cfg.Import.TemplateID = 3
	cfg.Import.EnablePrinting = true

	var out bytes.Buffer
	module := newModule(t, cfg, di.WithStdout(&out))

	root := testsupport.WriteExport(t, map[string]string{
		"hello-world.html": testsupport.MediumPost("Hello World", "Summary", "<p>Body</p>", "2019-05-01T12:00:00Z"),
		"untitled.html":    testsupport.MediumPost("Untitled", "Summary", "<p>Draft</p>", ""),
	})

	result, err := module.Import(context.Background(), root)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if result.Created != 2 {
		t.Fatalf("expected two created posts, got %+v", result)
	}
	hello, err := module.Repository().FindRecord(context.Background(), "hello-world", 5, 3)
	if err != nil {
		t.Fatalf("FindRecord: %v", err)
	}
	if !hello.Published || hello.ContextKey != "web" {
		t.Fatalf("unexpected record %+v", hello)
	}
	if !strings.Contains(out.String(), "Imported post: untitled") {
		t.Fatalf("expected printed outcome, got %q", out.String())
	}

	result, err = module.Import(context.Background(), root)
	if err != nil {
		t.Fatalf("second Import: %v", err)
	}
	if result.Skipped != 2 {
		t.Fatalf("expected both posts skipped, got %+v", result)
	}
}

func TestModuleHooks(t *testing.T) {
	module := newModule(t, medium.DefaultConfig())

	if err := module.RegisterBeforeSave(func(_ context.Context, record *medium.Resource, _ string) error {
		if strings.HasPrefix(record.Alias, "draft") {
			return medium.ErrSaveRejected
		}
		return nil
	}); err != nil {
		t.Fatalf("RegisterBeforeSave: %v", err)
	}
	if err := module.RegisterBeforeSave(func(context.Context, *medium.Resource, string) error { return nil }); !errors.Is(err, medium.ErrHookAlreadyRegistered) {
		t.Fatalf("expected ErrHookAlreadyRegistered, got %v", err)
	}
	if err := module.RegisterAfterSave(nil); !errors.Is(err, medium.ErrHookRequired) {
		t.Fatalf("expected ErrHookRequired, got %v", err)
	}

	root := testsupport.WriteExport(t, map[string]string{
		"draft-idea.html": testsupport.MediumPost("Idea", "s", "<p>b</p>", ""),
		"final.html":      testsupport.MediumPost("Final", "s", "<p>b</p>", ""),
	})
	result, err := module.ImportRequest(context.Background(), medium.Request{ExportPath: root, ParentID: 5})
	if err != nil {
		t.Fatalf("ImportRequest: %v", err)
	}
	if result.Rejected != 1 || result.Created != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Outcomes[0].Kind != medium.OutcomeBeforeSaveRejected {
		t.Fatalf("expected draft-idea rejected first, got %+v", result.Outcomes[0])
	}
}

func TestModuleExecuteCategorisesErrors(t *testing.T) {
	module := newModule(t, medium.DefaultConfig())

	err := module.Execute(context.Background(), medium.ImportExportCommand{ParentID: 5})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}

	err = module.Execute(context.Background(), medium.ImportExportCommand{ExportPath: t.TempDir(), ParentID: 5})
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestModulePreconditionErrors(t *testing.T) {
	module := newModule(t, medium.DefaultConfig())
	root := testsupport.WriteExport(t, map[string]string{"a.html": testsupport.MediumPost("A", "s", "<p>b</p>", "")})

	if _, err := module.ImportRequest(context.Background(), medium.Request{ExportPath: root, ParentID: 77}); !errors.Is(err, medium.ErrParentNotFound) {
		t.Fatalf("expected ErrParentNotFound, got %v", err)
	}
	if _, err := module.Import(context.Background(), root+"-missing"); !errors.Is(err, medium.ErrSourceNotFound) {
		t.Fatalf("expected ErrSourceNotFound, got %v", err)
	}
}
