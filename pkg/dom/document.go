package dom

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Document wraps a parsed page and the event handlers bound to its nodes. It
// is not safe for concurrent use; a page is driven from a single goroutine.
type Document struct {
	doc      *goquery.Document
	handlers map[*html.Node][]binding
	nextID   HandlerID
}

// Parse reads HTML from r and returns a Document ready for querying.
func Parse(r io.Reader) (*Document, error) {
	if r == nil {
		return nil, errors.New("dom: reader is required")
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("dom: parse: %w", err)
	}
	return newDocument(doc), nil
}

// ParseString is a convenience wrapper over Parse for inline markup.
func ParseString(markup string) (*Document, error) {
	return Parse(strings.NewReader(markup))
}

// Open parses the HTML file at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dom: open %s: %w", path, err)
	}
	defer f.Close()
	return Parse(f)
}

// FromGoquery adopts an already parsed goquery document.
func FromGoquery(doc *goquery.Document) *Document {
	if doc == nil {
		return nil
	}
	return newDocument(doc)
}

func newDocument(doc *goquery.Document) *Document {
	return &Document{
		doc:      doc,
		handlers: make(map[*html.Node][]binding),
	}
}

// Root returns the selection holding the document node.
func (d *Document) Root() *goquery.Selection {
	return d.doc.Selection
}

// Find runs a CSS selector against the whole document.
func (d *Document) Find(selector string) *goquery.Selection {
	return d.doc.Find(selector)
}

// ByID looks an element up by id. Attribute matching is used instead of the
// #id shorthand because host generated ids often carry characters that are
// not valid in CSS identifiers.
func (d *Document) ByID(id string) *goquery.Selection {
	if strings.TrimSpace(id) == "" {
		return d.doc.Selection.Slice(0, 0)
	}
	return d.doc.FindMatcher(idMatcher(id))
}

// Render writes the current document markup to w.
func (d *Document) Render(w io.Writer) error {
	for _, node := range d.doc.Nodes {
		if err := html.Render(w, node); err != nil {
			return fmt.Errorf("dom: render: %w", err)
		}
	}
	return nil
}

// HTML renders the document to a string.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Wrap returns a selection for a single node that still belongs to the
// document tree.
func Wrap(node *html.Node) *goquery.Selection {
	if node == nil {
		return nil
	}
	return goquery.NewDocumentFromNode(node).Selection
}

// NewElement creates a detached <tag> element carrying attrs and an optional
// text child.
func NewElement(tag string, attrs map[string]string, text string) *goquery.Selection {
	return Wrap(newNode(tag, attrs, text))
}

// InsertAfter creates a <tag> element carrying attrs right after the first
// element of sel and returns it.
func InsertAfter(sel *goquery.Selection, tag string, attrs map[string]string) *goquery.Selection {
	if sel == nil || sel.Length() == 0 {
		return nil
	}
	node := newNode(tag, attrs, "")
	sel.First().AfterNodes(node)
	return Wrap(node)
}

func newNode(tag string, attrs map[string]string, text string) *html.Node {
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, key := range sortedKeys(attrs) {
		node.Attr = append(node.Attr, html.Attribute{Key: key, Val: attrs[key]})
	}
	if text != "" {
		node.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	}
	return node
}

// Comments returns the text of the immediate comment children of node in
// document order.
func Comments(node *html.Node) []string {
	if node == nil {
		return nil
	}
	var out []string
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if child.Type == html.CommentNode {
			out = append(out, child.Data)
		}
	}
	return out
}

// NodeName reports the upper-cased tag name of the first element in sel.
func NodeName(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	return strings.ToUpper(goquery.NodeName(sel.First()))
}

type idMatcher string

func (m idMatcher) Match(node *html.Node) bool {
	if node == nil || node.Type != html.ElementNode {
		return false
	}
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == "id" {
			return attr.Val == string(m)
		}
	}
	return false
}

func (m idMatcher) MatchAll(node *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if m.Match(n) {
			out = append(out, n)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(node)
	return out
}

func (m idMatcher) Filter(nodes []*html.Node) []*html.Node {
	var out []*html.Node
	for _, node := range nodes {
		if m.Match(node) {
			out = append(out, node)
		}
	}
	return out
}
