package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-cms-medium/cmd/medium/internal/bootstrap"
	"github.com/goliatone/go-cms-medium/internal/commands"
	mediumcmd "github.com/goliatone/go-cms-medium/internal/commands/medium"
	"github.com/goliatone/go-cms-medium/internal/medium"
)

var moduleBuilder = bootstrap.BuildModule

var shutdownContext = func() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func main() {
	if err := runImport(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("medium import: %v", err)
	}
}

func runImport(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("medium-import", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML configuration file")
	exportPath := fs.String("export", "", "Path to the unpacked Medium export (contains posts/)")
	parentID := fs.Int64("parent", 0, "ID of the resource imported posts are placed under")
	templateID := fs.Int64("template", 0, "Template ID assigned to imported posts")
	overwrite := fs.Bool("overwrite", false, "Refresh posts that were already imported")
	dryRun := fs.Bool("dry-run", false, "Report outcomes without saving anything")
	driver := fs.String("driver", "", "Storage driver: sqlite3 or postgres")
	dsn := fs.String("dsn", "", "Storage data source name")
	postsFolder := fs.String("posts-folder", "", "Sub-directory of the export holding posts")
	pattern := fs.String("pattern", "", "Glob pattern used to discover post files")
	authorID := fs.Int64("author", 1, "Author ID recorded as createdby")
	enableLogging := fs.Bool("log", false, "Log every post outcome")
	enablePrinting := fs.Bool("print", true, "Print every post outcome")
	timeout := fs.Duration("timeout", commands.DefaultCommandTimeout, "Maximum duration of the import (0 disables)")
	schedule := fs.String("schedule", "", "Cron expression; when set the import repeats until interrupted")

	if err := fs.Parse(args); err != nil {
		return err
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts := bootstrap.Options{
		ConfigPath:  *configPath,
		Driver:      *driver,
		DSN:         *dsn,
		PostsFolder: *postsFolder,
		Pattern:     *pattern,
		Stdout:      stdout,
	}
	if set["author"] {
		opts.AuthorID = authorID
	}
	if set["log"] {
		opts.EnableLogging = enableLogging
	}
	if set["print"] || *configPath == "" {
		opts.EnablePrinting = enablePrinting
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	if module == nil || module.Importer == nil {
		return fmt.Errorf("medium importer not configured")
	}
	defer module.Close()

	cmd := mediumcmd.ImportExportCommand{
		ExportPath: *exportPath,
		ParentID:   module.Config.Import.ParentID,
		TemplateID: module.Config.Import.TemplateID,
		Overwrite:  module.Config.Import.Overwrite,
		DryRun:     *dryRun,
	}
	if set["parent"] {
		cmd.ParentID = *parentID
	}
	if set["template"] {
		cmd.TemplateID = *templateID
	}
	if set["overwrite"] {
		cmd.Overwrite = *overwrite
	}

	handlerTimeout := *timeout
	if !set["timeout"] && *configPath != "" {
		handlerTimeout = module.Config.Commands.Timeout
	}

	handler := mediumcmd.NewImportExportHandler(module.Importer, module.Logger, mediumcmd.FeatureGates{},
		func(_ context.Context, r *medium.Result) { fmt.Fprintln(stdout, summary(r)) },
		commands.WithTimeout[mediumcmd.ImportExportCommand](handlerTimeout),
	)

	if *schedule != "" {
		return runScheduled(handler, cmd, *schedule, module, stdout)
	}
	if err := handler.Execute(context.Background(), cmd); err != nil {
		return fmt.Errorf("execute import command: %w", err)
	}
	return nil
}

func runScheduled(handler *mediumcmd.ImportExportHandler, cmd mediumcmd.ImportExportCommand, expression string, module *bootstrap.Module, stdout io.Writer) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("validate import command: %w", err)
	}
	scheduler := newCronScheduler(module.Logger)
	if err := mediumcmd.RegisterMediumCron(scheduler.Register, handler, command.HandlerConfig{Expression: expression}, cmd); err != nil {
		return err
	}

	ctx, stop := shutdownContext()
	defer stop()
	fmt.Fprintf(stdout, "scheduled import of %s on %q\n", cmd.ExportPath, expression)
	scheduler.Run(ctx)
	return nil
}

func summary(result *medium.Result) string {
	line := fmt.Sprintf("run %s at %s: created=%d overwritten=%d skipped=%d rejected=%d failed=%d malformed=%d",
		result.RunID, result.RunAt.UTC().Format(time.RFC3339),
		result.Created, result.Overwritten, result.Skipped, result.Rejected, result.Failed, result.Malformed)
	if result.DryRun {
		line += " (dry run)"
	}
	return line
}
