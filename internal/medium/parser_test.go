package medium

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-cms-medium/internal/runtimeconfig"
	"github.com/goliatone/go-cms-medium/pkg/testsupport"
)

func newTestParser(t *testing.T) *Parser {
	t.Helper()
	parser, err := NewParser(runtimeconfig.ParserConfig{}, nil)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	return parser
}

func TestParserExtractsMediumFields(t *testing.T) {
	doc := testsupport.MediumPost(
		"Hello World",
		"  A short summary \n",
		`<p>First <strong>paragraph</strong></p><p>Second</p>`,
		"2019-05-01T12:30:00.000Z",
	)

	post, err := newTestParser(t).Parse("hello-world", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if post.Alias != "hello-world" {
		t.Fatalf("unexpected alias %q", post.Alias)
	}
	if post.Title != "Hello World" {
		t.Fatalf("unexpected title %q", post.Title)
	}
	if post.Summary != "A short summary" {
		t.Fatalf("expected trimmed summary, got %q", post.Summary)
	}
	if post.BodyHTML != `<p>First <strong>paragraph</strong></p><p>Second</p>` {
		t.Fatalf("unexpected body %q", post.BodyHTML)
	}
	want := time.Date(2019, 5, 1, 12, 30, 0, 0, time.UTC)
	if !post.PublishedAt.Equal(want) {
		t.Fatalf("expected published %v, got %v", want, post.PublishedAt)
	}
	if post.PublishedOn() != want.Unix() {
		t.Fatalf("expected publishedon %d, got %d", want.Unix(), post.PublishedOn())
	}
}

func TestParserPublishedTimeIsOptional(t *testing.T) {
	cases := map[string]string{
		"missing element": "",
		"unparsable":      "sometime last spring",
		"before epoch":    "1969-12-31T00:00:00Z",
	}
	parser := newTestParser(t)
	for name, datetime := range cases {
		t.Run(name, func(t *testing.T) {
			doc := testsupport.MediumPost("Title", "Summary", "<p>Body</p>", datetime)
			post, err := parser.Parse("post", strings.NewReader(doc))
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if post.PublishedOn() != 0 {
				t.Fatalf("expected publishedon 0, got %d", post.PublishedOn())
			}
		})
	}
}

func TestParsePublishedLayouts(t *testing.T) {
	cases := map[string]time.Time{
		"2020-02-03T04:05:06Z":            time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC),
		"2020-02-03T04:05:06.789+00:00":   time.Date(2020, 2, 3, 4, 5, 6, 789000000, time.UTC),
		"2020-02-03T04:05:06":             time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC),
		"2020-02-03 04:05:06":             time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC),
		"2020-02-03":                      time.Date(2020, 2, 3, 0, 0, 0, 0, time.UTC),
		"Mon, 03 Feb 2020 04:05:06 +0000": time.Date(2020, 2, 3, 4, 5, 6, 0, time.UTC),
	}
	for value, want := range cases {
		if got := parsePublished(value); !got.Equal(want) {
			t.Fatalf("parsePublished(%q) = %v, want %v", value, got, want)
		}
	}
	if got := parsePublished("   "); !got.IsZero() {
		t.Fatalf("expected zero time for blank value, got %v", got)
	}
}

func TestParserMalformedPosts(t *testing.T) {
	cases := []struct {
		name  string
		doc   string
		field string
	}{
		{
			name:  "missing summary",
			doc:   `<html><head><title>T</title></head><body><section data-field="body"><p>b</p></section></body></html>`,
			field: fieldSummary,
		},
		{
			name:  "missing body",
			doc:   `<html><head><title>T</title></head><body><section data-field="summary">s</section></body></html>`,
			field: fieldBody,
		},
	}

	parser := newTestParser(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parser.Parse("broken", strings.NewReader(tc.doc))
			if !errors.Is(err, ErrMalformedPost) {
				t.Fatalf("expected ErrMalformedPost, got %v", err)
			}
			var malformed *MalformedPostError
			if !errors.As(err, &malformed) || malformed.Field != tc.field {
				t.Fatalf("expected missing %s, got %v", tc.field, err)
			}
		})
	}
}

func TestParserParseFile(t *testing.T) {
	root := testsupport.WriteExport(t, map[string]string{
		"my-post.html": testsupport.MediumPost("My Post", "Summary", "<p>Body</p>", "2021-07-04"),
	})
	path := filepath.Join(root, "posts", "my-post.html")

	post, err := newTestParser(t).ParseFile(context.Background(), path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if post.Alias != "my-post" || post.SourcePath != path {
		t.Fatalf("unexpected identity %q %q", post.Alias, post.SourcePath)
	}

	_, err = newTestParser(t).ParseFile(context.Background(), filepath.Join(root, "posts", "gone.html"))
	if !errors.Is(err, ErrMalformedPost) {
		t.Fatalf("expected unreadable file to be malformed, got %v", err)
	}
}

func TestParserCustomSelectors(t *testing.T) {
	parser, err := NewParser(runtimeconfig.ParserConfig{
		TitleSelector:     "h1.p-name",
		PublishedSelector: "time",
	}, nil)
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	doc := testsupport.MediumPost("Heading", "Summary", "<p>Body</p>", "2022-01-01T00:00:00Z")
	post, err := parser.Parse("custom", strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if post.Title != "Heading" || post.PublishedOn() == 0 {
		t.Fatalf("unexpected post %+v", post)
	}
}

func TestNewParserRejectsInvalidSelector(t *testing.T) {
	if _, err := NewParser(runtimeconfig.ParserConfig{BodySelector: "section[data-field"}, nil); err == nil {
		t.Fatal("expected invalid selector error")
	}
}

func TestParserReadsExportedPostFixture(t *testing.T) {
	raw, err := testsupport.LoadFixture(filepath.Join("testdata", "2019-05-01_Hello-World-1a2b3c4d5e6f.html"))
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}

	post, err := newTestParser(t).Parse("2019-05-01_Hello-World-1a2b3c4d5e6f", strings.NewReader(string(raw)))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if post.Title != "Hello World" {
		t.Fatalf("unexpected title %q", post.Title)
	}
	if post.Summary != "Greetings from the export" {
		t.Fatalf("unexpected summary %q", post.Summary)
	}
	for _, fragment := range []string{
		`<p name="c3d4" id="c3d4" class="graf graf--p graf-after--h3">First paragraph.</p>`,
		`<em class="markup--em markup--p-em">emphasis</em>`,
	} {
		if !strings.Contains(post.BodyHTML, fragment) {
			t.Fatalf("expected body to contain %q, got %q", fragment, post.BodyHTML)
		}
	}
	if strings.Contains(post.BodyHTML, "dt-published") {
		t.Fatalf("body leaked footer markup: %q", post.BodyHTML)
	}
	want := time.Date(2019, 5, 1, 12, 0, 0, 0, time.UTC)
	if !post.PublishedAt.Equal(want) {
		t.Fatalf("expected published %v, got %v", want, post.PublishedAt)
	}
}
