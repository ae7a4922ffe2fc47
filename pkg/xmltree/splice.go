package xmltree

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

var errOutOfStep = errors.New("input and tree are out of step")

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// splice copies raw through unchanged except for the leading character data of
// the elements in edits, which is replaced by the edited text. This is the same
// run of character data etree's SetText replaces: everything between the start
// tag and the first token that is not character data.
//
// raw is re-tokenized with the decoder settings etree read it with, so the n-th
// start tag is the n-th entry of elems.
func splice(raw []byte, mode Mode, elems []*etree.Element, edits map[*etree.Element]string) ([]byte, error) {
	if len(edits) == 0 {
		return raw, nil
	}

	dec := xml.NewDecoder(bytes.NewReader(raw))
	dec.Strict = mode == Strict
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	var (
		out     bytes.Buffer
		copied  int64
		idx     int
		pending xml.Token
	)
	out.Grow(len(raw))

	for {
		tok := pending
		pending = nil
		if tok == nil {
			var err error
			tok, err = dec.RawToken()
			if err == io.EOF {
				break
			}
			if err != nil {
				return nil, err
			}
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if idx >= len(elems) || elems[idx].Tag != start.Name.Local {
			return nil, errOutOfStep
		}
		el := elems[idx]
		idx++

		text, edited := edits[el]
		if !edited {
			continue
		}

		open := dec.InputOffset()
		var end int64
		for {
			end = dec.InputOffset()
			next, err := dec.RawToken()
			if err != nil {
				return nil, fmt.Errorf("element <%s> is not closed: %w", start.Name.Local, err)
			}
			if _, ok := next.(xml.CharData); !ok {
				pending = next
				break
			}
		}

		if bytes.HasSuffix(raw[:open], []byte("/>")) {
			// Self-closing tag: it only changes if text has to be inserted.
			if text == "" {
				continue
			}
			out.Write(raw[copied : open-2])
			out.WriteByte('>')
			textEscaper.WriteString(&out, text)
			out.WriteString("</" + fullName(start.Name) + ">")
			copied = open
			continue
		}

		out.Write(raw[copied:open])
		textEscaper.WriteString(&out, text)
		copied = end
	}

	out.Write(raw[copied:])
	return out.Bytes(), nil
}

func fullName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
