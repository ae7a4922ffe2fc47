package xmltree_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/tinkit/pkg/domain"
	"github.com/aretw0/tinkit/pkg/xmltree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `<?xml version="1.0" encoding="UTF-8"?>
<LandXML>
  <Surfaces>
    <Surface name="ground">
      <Definition>
        <Pnts>
          <P id="1">10.0 20.0 5.0</P>
          <P id="2">11.0 20.0 5.5</P>
        </Pnts>
        <Faces>
          <F>1 2 1</F>
        </Faces>
      </Definition>
    </Surface>
  </Surfaces>
  <Breakline><P>0 0 0</P></Breakline>
</LandXML>`

func TestFindByTag_DocumentOrder(t *testing.T) {
	doc, err := xmltree.ParseBytes([]byte(sample), xmltree.Permissive)
	require.NoError(t, err)

	points := doc.FindByTag(domain.TagPoint)
	require.Len(t, points, 3)
	assert.Equal(t, "10.0 20.0 5.0", points[0].Text())
	assert.Equal(t, "0 0 0", points[2].Text())

	id, ok := points[1].Attr("id")
	assert.True(t, ok)
	assert.Equal(t, "2", id)

	_, ok = points[2].Attr("id")
	assert.False(t, ok)

	assert.Len(t, doc.FindByTag(domain.TagSurface), 1)
	assert.Len(t, doc.FindByTag(domain.TagBreakline), 1)
	assert.Empty(t, doc.FindByTag("Missing"))
}

func TestSetText_Serialize(t *testing.T) {
	doc, err := xmltree.ParseBytes([]byte(sample), xmltree.Strict)
	require.NoError(t, err)

	faces := doc.FindByTag(domain.TagFace)
	require.Len(t, faces, 1)
	faces[0].SetText("7 8 9")

	out, err := doc.Serialize()
	require.NoError(t, err)
	assert.Contains(t, out, "<F>7 8 9</F>")
	assert.Contains(t, out, `<Surface name="ground">`)
	assert.Contains(t, out, `<P id="1">10.0 20.0 5.0</P>`)
}

func TestElementString(t *testing.T) {
	doc, err := xmltree.ParseBytes([]byte(`<Pnts><P id="4">1 2 3</P></Pnts>`), xmltree.Strict)
	require.NoError(t, err)

	p := doc.FindByTag(domain.TagPoint)[0]
	assert.Equal(t, `<P id="4">1 2 3</P>`, strings.TrimSpace(p.String()))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := xmltree.Load(filepath.Join(dir, "nope.xml"), xmltree.Permissive)
		assert.ErrorIs(t, err, domain.ErrParse)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.xml")
		require.NoError(t, os.WriteFile(path, nil, 0644))
		_, err := xmltree.Load(path, xmltree.Strict)
		assert.ErrorIs(t, err, domain.ErrParse)
	})

	t.Run("not well formed in strict mode", func(t *testing.T) {
		path := filepath.Join(dir, "broken.xml")
		require.NoError(t, os.WriteFile(path, []byte(`<a><b></a>`), 0644))
		_, err := xmltree.Load(path, xmltree.Strict)
		assert.ErrorIs(t, err, domain.ErrParse)

		var pe *domain.ParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, path, pe.Path)
	})
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tin.xml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	doc, err := xmltree.Load(path, xmltree.Strict)
	require.NoError(t, err)
	assert.Len(t, doc.FindByTag(domain.TagFace), 1)
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "strict", xmltree.Strict.String())
	assert.Equal(t, "permissive", xmltree.Permissive.String())
}

func TestSerialize_Unedited(t *testing.T) {
	in := "<?xml version='1.0'?>\n<a x='1' y=\"&apos;\">t &#65; &gt;<b/><c></c><!-- c --></a>\n"
	for _, mode := range []xmltree.Mode{xmltree.Permissive, xmltree.Strict} {
		doc, err := xmltree.ParseBytes([]byte(in), mode)
		require.NoError(t, err)

		out, err := doc.Serialize()
		require.NoError(t, err)
		assert.Equal(t, in, out, mode.String())
	}
}

func TestSerialize_SplicesEditedText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		tag  string
		text string
		want string
	}{
		{
			name: "plain text",
			in:   `<a q='x'><P id='1'> 1 2 3 </P><b/></a>`,
			tag:  "P", text: "4 5 6",
			want: `<a q='x'><P id='1'>4 5 6</P><b/></a>`,
		},
		{
			name: "text before a child and a comment",
			in:   `<a><P>old<!-- keep --><i/>tail</P></a>`,
			tag:  "P", text: "new",
			want: `<a><P>new<!-- keep --><i/>tail</P></a>`,
		},
		{
			name: "entities are replaced with the text",
			in:   `<a><P>1 &amp; 2</P><n>&#65;</n></a>`,
			tag:  "P", text: "a<b",
			want: `<a><P>a&lt;b</P><n>&#65;</n></a>`,
		},
		{
			name: "self-closing element gains text",
			in:   `<a><F /><g/></a>`,
			tag:  "F", text: "1 2 3",
			want: `<a><F >1 2 3</F><g/></a>`,
		},
		{
			name: "self-closing element with empty text",
			in:   `<a><F/></a>`,
			tag:  "F", text: "",
			want: `<a><F/></a>`,
		},
		{
			name: "prefixed element",
			in:   `<a xmlns:t="urn:t"><t:F/></a>`,
			tag:  "F", text: "7",
			want: `<a xmlns:t="urn:t"><t:F>7</t:F></a>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := xmltree.ParseBytes([]byte(tt.in), xmltree.Permissive)
			require.NoError(t, err)

			els := doc.FindByTag(tt.tag)
			require.Len(t, els, 1)
			els[0].SetText(tt.text)

			out, err := doc.Serialize()
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestSerialize_NestedEdits(t *testing.T) {
	in := `<r><P>1<P>2</P>3</P><P>4</P></r>`
	doc, err := xmltree.ParseBytes([]byte(in), xmltree.Permissive)
	require.NoError(t, err)

	for i, p := range doc.FindByTag("P") {
		p.SetText(strings.Repeat("x", i+1))
	}

	var b strings.Builder
	_, err = doc.WriteTo(&b)
	require.NoError(t, err)
	assert.Equal(t, `<r><P>x<P>xx</P>3</P><P>xxx</P></r>`, b.String())
}
