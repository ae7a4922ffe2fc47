package xmltree

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/beevik/etree"
)

// Mode selects how forgiving the parser is.
type Mode int

const (
	// Permissive accepts documents that do not conform to a strict schema.
	Permissive Mode = iota
	// Strict requires well-formed XML.
	Strict
)

func (m Mode) String() string {
	if m == Strict {
		return "strict"
	}
	return "permissive"
}

// ErrNoRoot is wrapped in a ParseError when the input holds no element at all.
var ErrNoRoot = errors.New("document has no root element")

// Element is a single node of a loaded document.
type Element interface {
	// Tag returns the local name, without namespace prefix.
	Tag() string
	// Text returns the character data directly inside the element.
	Text() string
	// SetText replaces the character data directly inside the element.
	SetText(text string)
	// Attr returns the value of the attribute key and whether it is present.
	Attr(key string) (string, bool)
	// String serializes the element and its subtree, for diagnostics.
	String() string
}

// Document is a loaded XML tree.
type Document interface {
	// FindByTag returns every element whose local name is tag, in document order.
	FindByTag(tag string) []Element
	// Serialize renders the whole tree, including structure that was never touched.
	Serialize() (string, error)
	// WriteTo writes the serialized tree to w.
	WriteTo(w io.Writer) (int64, error)
}

// Load reads and parses the file at path.
// Any failure (missing, unreadable, not well-formed) is a *domain.ParseError.
func Load(path string, mode Mode) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	doc, err := parse(data, mode)
	if err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	return doc, nil
}

// Parse reads the whole of r and parses it.
func Parse(r io.Reader, mode Mode) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &domain.ParseError{Err: err}
	}
	return ParseBytes(data, mode)
}

// ParseBytes parses an in-memory document.
func ParseBytes(data []byte, mode Mode) (Document, error) {
	doc, err := parse(data, mode)
	if err != nil {
		return nil, &domain.ParseError{Err: err}
	}
	return doc, nil
}

func parse(data []byte, mode Mode) (*etreeDocument, error) {
	doc := etree.NewDocument()
	doc.WriteSettings.CanonicalEndTags = true
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true
	switch mode {
	case Strict:
		doc.ReadSettings.ValidateInput = true
	default:
		doc.ReadSettings.Permissive = true
	}

	if _, err := doc.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%s parse: %w", mode, err)
	}
	if doc.Root() == nil {
		return nil, ErrNoRoot
	}
	return &etreeDocument{doc: doc, raw: data, mode: mode, edits: make(map[*etree.Element]string)}, nil
}

type etreeDocument struct {
	doc  *etree.Document
	raw  []byte
	mode Mode

	// edits holds the replacement text of every element whose text was set.
	edits map[*etree.Element]string
}

func (d *etreeDocument) FindByTag(tag string) []Element {
	var out []Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		if e.Tag == tag {
			out = append(out, &etreeElement{el: e, doc: d})
		}
		for _, child := range e.ChildElements() {
			walk(child)
		}
	}
	walk(d.doc.Root())
	return out
}

func (d *etreeDocument) Serialize() (string, error) {
	var b strings.Builder
	if _, err := d.WriteTo(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// WriteTo re-emits the input bytes with only the edited texts replaced. If the
// input cannot be re-scanned in step with the tree, the tree is serialized by
// etree instead.
func (d *etreeDocument) WriteTo(w io.Writer) (int64, error) {
	out, err := splice(d.raw, d.mode, d.elements(), d.edits)
	if err != nil {
		return d.doc.WriteTo(w)
	}
	n, err := w.Write(out)
	return int64(n), err
}

// elements lists every element of the tree in document order, which is the
// order their start tags appear in the input.
func (d *etreeDocument) elements() []*etree.Element {
	var out []*etree.Element
	var walk func(e *etree.Element)
	walk = func(e *etree.Element) {
		out = append(out, e)
		for _, child := range e.ChildElements() {
			walk(child)
		}
	}
	for _, top := range d.doc.ChildElements() {
		walk(top)
	}
	return out
}

type etreeElement struct {
	el  *etree.Element
	doc *etreeDocument
}

func (e *etreeElement) Tag() string { return e.el.Tag }

func (e *etreeElement) Text() string { return e.el.Text() }

func (e *etreeElement) SetText(text string) {
	e.el.SetText(text)
	if e.doc != nil {
		e.doc.edits[e.el] = text
	}
}

func (e *etreeElement) Attr(key string) (string, bool) {
	a := e.el.SelectAttr(key)
	if a == nil {
		return "", false
	}
	return a.Value, true
}

func (e *etreeElement) String() string {
	d := etree.NewDocument()
	d.SetRoot(e.el.Copy())
	s, err := d.WriteToString()
	if err != nil {
		return "<" + e.el.FullTag() + ">"
	}
	return s
}
