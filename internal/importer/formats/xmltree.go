// SPDX-License-Identifier: Apache-2.0

package formats

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// xmlNode is a namespace-agnostic element with its mixed content kept in
// document order, which the OpenLyrics <lines> markup needs.
type xmlNode struct {
	name    string
	attrs   map[string]string
	content []xmlItem
}

// xmlItem is either character data or a child element.
type xmlItem struct {
	text string
	elem *xmlNode
}

// parseXML reads text into a tree. The whole document must be well formed
// and hold exactly one root element.
func parseXML(text string) (*xmlNode, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	// The text has already been decoded to UTF-8, whatever the prolog says.
	dec.CharsetReader = func(_ string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	var root *xmlNode
	var stack []*xmlNode
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &xmlNode{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
					continue
				}
				node.attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("junk after document element: <%s>", t.Name.Local)
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.content = append(parent.content, xmlItem{elem: node})
			}
			stack = append(stack, node)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.content = append(parent.content, xmlItem{text: string(t)})
			} else if strings.TrimSpace(string(t)) != "" {
				return nil, errors.New("text outside of the document element")
			}
		}
	}

	if root == nil {
		return nil, errors.New("no element found")
	}
	if len(stack) > 0 {
		return nil, fmt.Errorf("unclosed element <%s>", stack[len(stack)-1].name)
	}
	return root, nil
}

// child returns the first direct child element named name.
func (n *xmlNode) child(name string) *xmlNode {
	if n == nil {
		return nil
	}
	for _, item := range n.content {
		if item.elem != nil && item.elem.name == name {
			return item.elem
		}
	}
	return nil
}

// children returns every direct child element named name.
func (n *xmlNode) children(name string) []*xmlNode {
	if n == nil {
		return nil
	}
	var out []*xmlNode
	for _, item := range n.content {
		if item.elem != nil && item.elem.name == name {
			out = append(out, item.elem)
		}
	}
	return out
}

// text returns the concatenated character data of n and its descendants,
// trimmed.
func (n *xmlNode) text() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.writeText(&b)
	return strings.TrimSpace(b.String())
}

func (n *xmlNode) writeText(b *strings.Builder) {
	for _, item := range n.content {
		if item.elem != nil {
			item.elem.writeText(b)
			continue
		}
		b.WriteString(item.text)
	}
}

// childText is the trimmed text of the first child named name.
func (n *xmlNode) childText(name string) string {
	return n.child(name).text()
}
