package memdom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Load parses an HTML document into a Document. Element ids, classes,
// inline styles and data attributes all survive the trip, so a page
// authored with inline geometry is immediately usable as a host. Style
// elements present in the markup are active from the start.
func Load(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var htmlNode *html.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "html" {
			htmlNode = c
			break
		}
	}
	if htmlNode == nil {
		return nil, fmt.Errorf("document has no html element")
	}

	d := &Document{supported: defaultSupport()}
	d.root = d.convert(htmlNode, nil)

	for _, c := range d.root.children {
		switch c.tag {
		case "head":
			d.head = c
		case "body":
			d.body = c
		}
	}
	if d.body == nil {
		return nil, fmt.Errorf("document has no body element")
	}

	d.registerStyleSubtree(d.root)
	return d, nil
}

// convert maps a parsed html node and its element children into the
// in-memory tree. Text nodes collapse into the owning element's text.
func (d *Document) convert(n *html.Node, parent *Element) *Element {
	e := d.newElement(n.Data)
	e.parent = parent

	for _, a := range n.Attr {
		switch a.Key {
		case "id":
			e.id = a.Val
		case "class":
			e.classes = strings.Fields(a.Val)
		case "style":
			e.styles = parseInlineStyle(a.Val)
		default:
			e.attrs[a.Key] = a.Val
		}
	}

	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.ElementNode:
			e.children = append(e.children, d.convert(c, e))
		case html.TextNode:
			text.WriteString(c.Data)
		}
	}
	e.text = strings.TrimSpace(text.String())

	return e
}

// parseInlineStyle reads a style attribute value into a property map.
func parseInlineStyle(s string) map[string]string {
	out := make(map[string]string)
	for _, decl := range strings.Split(s, ";") {
		prop, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		value = strings.TrimSpace(value)
		if prop != "" && value != "" {
			out[prop] = value
		}
	}
	return out
}
