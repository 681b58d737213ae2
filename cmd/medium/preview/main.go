package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/goliatone/go-cms-medium/cmd/medium/internal/bootstrap"
	"github.com/goliatone/go-cms-medium/internal/medium"
	"github.com/goliatone/go-cms-medium/internal/resources"
)

func main() {
	if err := runPreview(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("medium preview: %v", err)
	}
}

func runPreview(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("medium-preview", flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML configuration file")
	filePath := fs.String("file", "", "Post file to preview")
	parentID := fs.Int64("parent", 0, "Parent ID shown on the mapped record")
	templateID := fs.Int64("template", 0, "Template ID shown on the mapped record")
	contextKey := fs.String("context", "web", "Context key shown on the mapped record")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *filePath == "" {
		return fmt.Errorf("-file is required")
	}

	cfg, err := bootstrap.Config(bootstrap.Options{ConfigPath: *configPath})
	if err != nil {
		return fmt.Errorf("resolve config: %w", err)
	}
	parser, err := medium.NewParser(cfg.Parser, nil)
	if err != nil {
		return err
	}

	post, err := parser.ParseFile(context.Background(), *filePath)
	if err != nil {
		return err
	}

	record := &resources.Resource{}
	medium.MapRecord(record, post, medium.Target{
		ParentID:   *parentID,
		TemplateID: *templateID,
		ContextKey: *contextKey,
		AuthorID:   cfg.Import.AuthorID,
	}, time.Now())

	fmt.Fprintf(stdout, "Path: %s\nAlias: %s\n", post.SourcePath, post.Alias)
	if post.PublishedAt.IsZero() {
		fmt.Fprintln(stdout, "Published: no")
	} else {
		fmt.Fprintf(stdout, "Published: %s\n", post.PublishedAt.UTC().Format(time.RFC3339))
	}
	fmt.Fprintln(stdout)

	mapped, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	fmt.Fprintf(stdout, "Record:\n%s\n", mapped)
	return nil
}
