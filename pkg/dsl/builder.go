package dsl

import (
	"fmt"
	"strconv"

	"github.com/aretw0/tinkit/internal/tokenize"
	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/beevik/etree"
)

// Builder manages the document construction.
type Builder struct {
	root       string
	containers []*ContainerBuilder
	indent     int
}

// Option configures a Builder.
type Option func(*Builder)

// WithRoot sets the root element name (default "LandXML").
func WithRoot(name string) Option {
	return func(b *Builder) {
		b.root = name
	}
}

// WithIndent pretty-prints the output with n spaces per level. Zero writes a single line.
func WithIndent(n int) Option {
	return func(b *Builder) {
		b.indent = n
	}
}

// New creates a new document builder.
func New(opts ...Option) *Builder {
	b := &Builder{root: "LandXML"}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Surface adds a `Surface` container.
func (b *Builder) Surface(name string) *ContainerBuilder {
	return b.add(domain.TagSurface, name)
}

// Breakline adds a `Breakline` container.
func (b *Builder) Breakline(name string) *ContainerBuilder {
	return b.add(domain.TagBreakline, name)
}

func (b *Builder) add(tag, name string) *ContainerBuilder {
	cb := &ContainerBuilder{tag: tag, name: name, builder: b}
	b.containers = append(b.containers, cb)
	return cb
}

// Build renders the document.
func (b *Builder) Build() ([]byte, error) {
	if b.root == "" {
		return nil, fmt.Errorf("root element name is empty")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(b.root)

	for _, c := range b.containers {
		c.render(root)
	}

	if b.indent > 0 {
		doc.Indent(b.indent)
	}
	return doc.WriteToBytes()
}

// MustBuild is Build for tests and examples; it panics on error.
func (b *Builder) MustBuild() []byte {
	data, err := b.Build()
	if err != nil {
		panic(err)
	}
	return data
}

type point struct {
	id      string
	x, y, z float64
}

// ContainerBuilder collects the points and faces of one container.
type ContainerBuilder struct {
	tag, name string
	points    []point
	faces     [][]int
	rawFaces  []string
	builder   *Builder
}

// Point adds `<P id="id">x y z</P>`.
func (c *ContainerBuilder) Point(id int, x, y, z float64) *ContainerBuilder {
	c.points = append(c.points, point{id: strconv.Itoa(id), x: x, y: y, z: z})
	return c
}

// AnonymousPoint adds a `P` without an id attribute. The scaler accepts it; the extractor rejects it.
func (c *ContainerBuilder) AnonymousPoint(x, y, z float64) *ContainerBuilder {
	c.points = append(c.points, point{x: x, y: y, z: z})
	return c
}

// Face adds `<F>ids...</F>`. Any arity is written as given.
func (c *ContainerBuilder) Face(ids ...int) *ContainerBuilder {
	c.faces = append(c.faces, ids)
	return c
}

// RawFace adds an `F` element with verbatim text, for malformed inputs.
func (c *ContainerBuilder) RawFace(text string) *ContainerBuilder {
	c.rawFaces = append(c.rawFaces, text)
	return c
}

// End returns to the document builder.
func (c *ContainerBuilder) End() *Builder {
	return c.builder
}

func (c *ContainerBuilder) render(parent *etree.Element) {
	el := parent.CreateElement(c.tag)
	if c.name != "" {
		el.CreateAttr("name", c.name)
	}

	if len(c.points) > 0 {
		pnts := el.CreateElement("Pnts")
		for _, p := range c.points {
			pe := pnts.CreateElement(domain.TagPoint)
			if p.id != "" {
				pe.CreateAttr(domain.AttrID, p.id)
			}
			pe.SetText(formatCoord(p.x) + " " + formatCoord(p.y) + " " + formatCoord(p.z))
		}
	}

	if len(c.faces) > 0 || len(c.rawFaces) > 0 {
		faces := el.CreateElement("Faces")
		for _, f := range c.faces {
			faces.CreateElement(domain.TagFace).SetText(tokenize.JoinInts(f))
		}
		for _, raw := range c.rawFaces {
			faces.CreateElement(domain.TagFace).SetText(raw)
		}
	}
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
