package medium

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// HTMLParser turns a post document into a queryable tree.
type HTMLParser interface {
	ParseDocument(r io.Reader) (HTMLDocument, error)
}

// HTMLDocument exposes CSS selector lookups over a parsed document.
type HTMLDocument interface {
	// FindFirst returns the first element matching selector.
	FindFirst(selector string) (HTMLElement, bool)
}

// HTMLElement is a single matched element.
type HTMLElement interface {
	// PlainText returns the text content with tags stripped.
	PlainText() string
	// InnerMarkup returns the element's children serialised as HTML.
	InnerMarkup() (string, error)
	// Attribute returns the named attribute value.
	Attribute(name string) (string, bool)
}

// ValidateSelector reports whether selector is a valid CSS selector.
func ValidateSelector(selector string) error {
	if strings.TrimSpace(selector) == "" {
		return fmt.Errorf("medium html: selector is empty")
	}
	if _, err := cascadia.Compile(selector); err != nil {
		return fmt.Errorf("medium html: selector %q: %w", selector, err)
	}
	return nil
}

// GoqueryParser is the goquery backed HTMLParser. Compiled selectors are
// cached and shared by every document it produces.
type GoqueryParser struct {
	mu        sync.RWMutex
	selectors map[string]cascadia.Selector
}

// NewGoqueryParser constructs an HTMLParser backed by goquery.
func NewGoqueryParser() *GoqueryParser {
	return &GoqueryParser{selectors: make(map[string]cascadia.Selector)}
}

// ParseDocument implements HTMLParser.
func (p *GoqueryParser) ParseDocument(r io.Reader) (HTMLDocument, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("medium html: parse document: %w", err)
	}
	return &goqueryDocument{parser: p, doc: doc}, nil
}

func (p *GoqueryParser) compile(selector string) (cascadia.Selector, bool) {
	p.mu.RLock()
	sel, ok := p.selectors[selector]
	p.mu.RUnlock()
	if ok {
		return sel, true
	}

	compiled, err := cascadia.Compile(selector)
	if err != nil {
		return nil, false
	}
	p.mu.Lock()
	p.selectors[selector] = compiled
	p.mu.Unlock()
	return compiled, true
}

type goqueryDocument struct {
	parser *GoqueryParser
	doc    *goquery.Document
}

func (d *goqueryDocument) FindFirst(selector string) (HTMLElement, bool) {
	sel, ok := d.parser.compile(selector)
	if !ok {
		return nil, false
	}
	found := d.doc.FindMatcher(sel).First()
	if found.Length() == 0 {
		return nil, false
	}
	return goqueryElement{selection: found}, true
}

type goqueryElement struct {
	selection *goquery.Selection
}

func (e goqueryElement) PlainText() string {
	return e.selection.Text()
}

func (e goqueryElement) InnerMarkup() (string, error) {
	return e.selection.Html()
}

func (e goqueryElement) Attribute(name string) (string, bool) {
	return e.selection.Attr(name)
}
