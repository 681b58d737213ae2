package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-cms-medium/pkg/testsupport"
)

func TestRunPreviewPrintsMappedRecord(t *testing.T) {
	root := testsupport.WriteExport(t, map[string]string{
		"hello-world.html": testsupport.MediumPost("Hello World", "Summary", "<p>Body</p>", "2019-05-01T12:00:00Z"),
	})

	var out bytes.Buffer
	err := runPreview([]string{
		"-file", filepath.Join(root, "posts", "hello-world.html"),
		"-parent", "5",
		"-template", "3",
	}, &out)
	if err != nil {
		t.Fatalf("runPreview: %v", err)
	}

	got := out.String()
	for _, want := range []string{
		"Alias: hello-world",
		"Published: 2019-05-01T12:00:00Z",
		`"pagetitle": "Hello World"`,
		`"published": true`,
		`"parent": 5`,
		`"context_key": "web"`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in output:\n%s", want, got)
		}
	}
}

func TestRunPreviewRequiresFile(t *testing.T) {
	if err := runPreview(nil, &bytes.Buffer{}); err == nil {
		t.Fatal("expected error when -file is missing")
	}
}

func TestRunPreviewReportsMalformedPost(t *testing.T) {
	root := testsupport.WriteExport(t, map[string]string{
		"broken.html": "<html><head><title>Only a title</title></head></html>",
	})
	err := runPreview([]string{"-file", filepath.Join(root, "posts", "broken.html")}, &bytes.Buffer{})
	if err == nil || !strings.Contains(err.Error(), "missing summary") {
		t.Fatalf("expected malformed post error, got %v", err)
	}
}
