package tilemap

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"
	"strings"
)

// Node is an element of a parsed TMX or TSX document. It is never modified
// once decoded.
type Node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Nodes    []*Node    `xml:",any"`
	CharData string     `xml:",chardata"`
}

// Parse decodes a document from r and returns its root element. Syntax
// errors are returned unwrapped.
func Parse(r io.Reader) (*Node, error) {
	var n Node
	if err := xml.NewDecoder(r).Decode(&n); err != nil {
		return nil, err
	}
	return &n, nil
}

// ParseFile decodes the document stored in file.
func ParseFile(file string) (*Node, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

func (n *Node) Name() string {
	return n.XMLName.Local
}

// First returns the first direct child with the given tag, or nil.
func (n *Node) First(tag string) *Node {
	for _, c := range n.Nodes {
		if c.XMLName.Local == tag {
			return c
		}
	}
	return nil
}

// Children returns every direct child with the given tag in document order.
func (n *Node) Children(tag string) []*Node {
	var children []*Node
	for _, c := range n.Nodes {
		if c.XMLName.Local == tag {
			children = append(children, c)
		}
	}
	return children
}

func (n *Node) Has(tag string) bool {
	return n.First(tag) != nil
}

func (n *Node) lookup(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// Attr returns the value of the named attribute or def if it is absent.
func (n *Node) Attr(name, def string) string {
	if v, ok := n.lookup(name); ok {
		return v
	}
	return def
}

// IntAttr returns the named attribute as an integer, or def if it is absent.
func (n *Node) IntAttr(name string, def int) (int, error) {
	v, ok := n.lookup(name)
	if !ok {
		return def, nil
	}
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, &FormatError{Msg: "<" + n.Name() + "> attribute " + strconv.Quote(name) + " is not an integer", Err: err}
	}
	return i, nil
}

// RequireIntAttr is like IntAttr but the attribute must be present.
func (n *Node) RequireIntAttr(name string) (int, error) {
	if _, ok := n.lookup(name); !ok {
		return 0, formatErrorf("<%s> is missing attribute %q", n.Name(), name)
	}
	return n.IntAttr(name, 0)
}

// Text returns the character data directly inside the element. Leading and
// trailing whitespace is removed unless preserveWhitespace is set.
func (n *Node) Text(preserveWhitespace bool) string {
	if preserveWhitespace {
		return n.CharData
	}
	return strings.TrimSpace(n.CharData)
}
