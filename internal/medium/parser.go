package medium

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-cms-medium/internal/runtimeconfig"
)

const (
	fieldTitle   = "title"
	fieldSummary = "summary"
	fieldBody    = "body"
)

var publishedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123Z,
	time.RFC1123,
}

// Parser extracts post content from Medium export documents.
type Parser struct {
	html      HTMLParser
	selectors runtimeconfig.ParserConfig
}

// NewParser constructs a Parser. Blank selectors fall back to the Medium
// defaults and a nil html parser falls back to goquery.
func NewParser(cfg runtimeconfig.ParserConfig, html HTMLParser) (*Parser, error) {
	selectors := withParserDefaults(cfg)
	for _, selector := range []string{
		selectors.TitleSelector,
		selectors.SummarySelector,
		selectors.BodySelector,
		selectors.PublishedSelector,
	} {
		if err := ValidateSelector(selector); err != nil {
			return nil, err
		}
	}
	if html == nil {
		html = NewGoqueryParser()
	}
	return &Parser{html: html, selectors: selectors}, nil
}

// ParseFile reads the post at path. The alias is the file name without its
// extension.
func (p *Parser) ParseFile(ctx context.Context, path string) (ParsedPost, error) {
	if err := ctx.Err(); err != nil {
		return ParsedPost{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return ParsedPost{}, &MalformedPostError{Path: path, Err: err}
	}
	defer file.Close()

	post, err := p.parse(aliasFromPath(path), path, file)
	if err != nil {
		return ParsedPost{}, err
	}
	return post, nil
}

// Parse reads a post document from r.
func (p *Parser) Parse(alias string, r io.Reader) (ParsedPost, error) {
	return p.parse(alias, "", r)
}

func (p *Parser) parse(alias, path string, r io.Reader) (ParsedPost, error) {
	doc, err := p.html.ParseDocument(r)
	if err != nil {
		return ParsedPost{}, &MalformedPostError{Path: path, Err: err}
	}

	title, ok := doc.FindFirst(p.selectors.TitleSelector)
	if !ok {
		return ParsedPost{}, &MalformedPostError{Path: path, Field: fieldTitle}
	}
	summary, ok := doc.FindFirst(p.selectors.SummarySelector)
	if !ok {
		return ParsedPost{}, &MalformedPostError{Path: path, Field: fieldSummary}
	}
	body, ok := doc.FindFirst(p.selectors.BodySelector)
	if !ok {
		return ParsedPost{}, &MalformedPostError{Path: path, Field: fieldBody}
	}
	bodyHTML, err := body.InnerMarkup()
	if err != nil {
		return ParsedPost{}, &MalformedPostError{Path: path, Field: fieldBody, Err: err}
	}

	post := ParsedPost{
		Alias:      alias,
		Title:      strings.TrimSpace(title.PlainText()),
		Summary:    strings.TrimSpace(summary.PlainText()),
		BodyHTML:   bodyHTML,
		SourcePath: path,
	}
	if published, ok := doc.FindFirst(p.selectors.PublishedSelector); ok {
		if value, ok := published.Attribute(p.selectors.PublishedAttr); ok {
			post.PublishedAt = parsePublished(value)
		}
	}
	return post, nil
}

func parsePublished(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range publishedLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func withParserDefaults(cfg runtimeconfig.ParserConfig) runtimeconfig.ParserConfig {
	defaults := runtimeconfig.DefaultParserConfig()
	if strings.TrimSpace(cfg.TitleSelector) == "" {
		cfg.TitleSelector = defaults.TitleSelector
	}
	if strings.TrimSpace(cfg.SummarySelector) == "" {
		cfg.SummarySelector = defaults.SummarySelector
	}
	if strings.TrimSpace(cfg.BodySelector) == "" {
		cfg.BodySelector = defaults.BodySelector
	}
	if strings.TrimSpace(cfg.PublishedSelector) == "" {
		cfg.PublishedSelector = defaults.PublishedSelector
	}
	if strings.TrimSpace(cfg.PublishedAttr) == "" {
		cfg.PublishedAttr = defaults.PublishedAttr
	}
	return cfg
}

