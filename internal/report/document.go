// Package report parses JUnit XML report files and classifies their shape.
//
// A report is either a single <testsuite> block, a collection whose children
// are <testsuite> blocks, or a collection whose children are <testsuites>
// summary wrappers. Parsing and serialization are delegated to xmlquery;
// this package only decides what the parsed tree means.
package report

import (
	"bytes"
	"encoding/xml"
	stderrors "errors"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/antchfx/xmlquery"
	"golang.org/x/net/html/charset"

	"github.com/AndreyAkinshin/junitmerge/internal/errors"
)

// Element names recognized in JUnit reports.
const (
	SuiteTag   = "testsuite"
	SummaryTag = "testsuites"
)

// Extension is the file extension of report files.
const Extension = ".xml"

// Shape describes the structural form of a parsed report.
type Shape int

const (
	// ShapeUnrecognized means the document has no root element to inspect.
	ShapeUnrecognized Shape = iota
	// ShapeSingleSuite means the root element is a <testsuite>.
	ShapeSingleSuite
	// ShapeCollection means the root element wraps other blocks.
	ShapeCollection
)

func (s Shape) String() string {
	switch s {
	case ShapeSingleSuite:
		return "single-suite"
	case ShapeCollection:
		return "collection"
	default:
		return "unrecognized"
	}
}

// Node is one element of a parsed report.
type Node struct {
	n *xmlquery.Node
}

// Name returns the element's local name.
func (n *Node) Name() string {
	return n.n.Data
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.n.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// ChildrenNamed returns the direct child elements with the given name, in document order.
func (n *Node) ChildrenNamed(name string) []*Node {
	var children []*Node
	for c := n.n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == name {
			children = append(children, &Node{n: c})
		}
	}
	return children
}

// String serializes the element, including itself, back to XML text.
func (n *Node) String() string {
	return n.n.OutputXML(true)
}

// Float returns the attribute parsed as a float. A missing attribute yields
// (0, true); an unparsable one yields (0, false).
func (n *Node) Float(name string) (float64, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int returns the leading integer of the attribute, so "5.0" and "5 tests"
// read as 5. A missing attribute yields (0, true); a value that does not
// start with an optionally signed digit yields (0, false).
func (n *Node) Int(name string) (int, bool) {
	v, ok := n.Attr(name)
	if !ok {
		return 0, true
	}
	return leadingInt(v)
}

func leadingInt(v string) (int, bool) {
	v = strings.TrimLeft(v, " \t\n\r")
	end := 0
	if end < len(v) && (v[end] == '+' || v[end] == '-') {
		end++
	}
	digits := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	i, err := strconv.Atoi(v[:end])
	if err != nil {
		return 0, false
	}
	return i, true
}

// Document is one parsed report file.
type Document struct {
	Path  string
	Root  *Node // nil when Shape is ShapeUnrecognized
	Shape Shape
}

// Parse parses report text. The path is only used in error messages.
func Parse(path string, data []byte) (*Document, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		// xmlquery rejects well-formed text that has no element at all.
		if !hasElement(data) {
			return &Document{Path: path, Shape: ShapeUnrecognized}, nil
		}
		return nil, errors.MalformedDocument(path, err)
	}

	d := &Document{Path: path}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode {
			d.Root = &Node{n: c}
			break
		}
	}
	d.Shape = Classify(d.Root)
	return d, nil
}

// hasElement reports whether data contains a start element or is not
// well-formed. Empty, comment-only and text-only input yields false.
func hasElement(data []byte) bool {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return false
		}
		if err != nil {
			return true
		}
		if _, ok := tok.(xml.StartElement); ok {
			return true
		}
	}
}

// ParseFile reads and parses a report file.
// A missing file yields a KindNotFound error; invalid markup yields KindMalformedDocument.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.NotFound(path, err)
		}
		return nil, &errors.MergeError{
			Kind:    errors.KindRuntime,
			Message: "failed to read report",
			Path:    path,
			Cause:   err,
		}
	}
	return Parse(path, data)
}

// Classify determines the shape of a report from its root element.
func Classify(root *Node) Shape {
	switch {
	case root == nil:
		return ShapeUnrecognized
	case root.Name() == SuiteTag:
		return ShapeSingleSuite
	default:
		return ShapeCollection
	}
}

// IsSummary reports whether the document root is a <testsuites> wrapper.
func (d *Document) IsSummary() bool {
	return d.Root != nil && d.Root.Name() == SummaryTag
}

// Suites returns the suite blocks of the document.
func (d *Document) Suites() ([]*Node, error) {
	switch d.Shape {
	case ShapeSingleSuite:
		return []*Node{d.Root}, nil
	case ShapeCollection:
		return d.Root.ChildrenNamed(SuiteTag), nil
	default:
		return nil, errors.NoTestsFound(d.Path)
	}
}

// Summaries returns the summary wrappers of the document.
func (d *Document) Summaries() ([]*Node, error) {
	switch {
	case d.Shape == ShapeUnrecognized:
		return nil, errors.NoTestsFound(d.Path)
	case d.IsSummary():
		return []*Node{d.Root}, nil
	default:
		return d.Root.ChildrenNamed(SummaryTag), nil
	}
}
