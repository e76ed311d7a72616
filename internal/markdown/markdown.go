// Package markdown provides read-only analysis of markdown text for the
// post-processing pipeline. It never re-renders: stages do their own string
// surgery so that output stays in the source dialect.
package markdown

import (
	"strings"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

type LinkKind string

const (
	LinkKindInline LinkKind = "inline"
	LinkKindImage  LinkKind = "image"
	LinkKindAuto   LinkKind = "auto"
)

// Link is a link-like construct with a literal destination, i.e. one that
// bypasses the reference registry.
type Link struct {
	Kind        LinkKind
	Destination string
	Text        string
}

// DirectLinks parses a markdown body and returns every construct carrying a
// literal destination: inline links, inline images and autolinks.
//
// Reference-style links (`[text][id]`) whose id has no matching definition
// are left as plain text by the parser, so a body that routes everything
// through the registry (footer already stripped) yields no results.
func DirectLinks(body string) []Link {
	src := []byte(body)
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var links []Link
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *gmast.AutoLink:
			links = append(links, Link{Kind: LinkKindAuto, Destination: string(node.URL(src))})
		case *gmast.Image:
			links = append(links, Link{Kind: LinkKindImage, Destination: string(node.Destination), Text: nodeText(node, src)})
		case *gmast.Link:
			links = append(links, Link{Kind: LinkKindInline, Destination: string(node.Destination), Text: nodeText(node, src)})
		}
		return gmast.WalkContinue, nil
	})
	return links
}

// Headings parses a markdown body and returns the text of every heading,
// in document order.
func Headings(body string) []string {
	src := []byte(body)
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(src))

	var out []string
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if h, ok := n.(*gmast.Heading); ok {
			out = append(out, nodeText(h, src))
		}
		return gmast.WalkContinue, nil
	})
	return out
}

func nodeText(n gmast.Node, src []byte) string {
	var b strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*gmast.Text); ok {
			b.Write(t.Segment.Value(src))
			continue
		}
		b.WriteString(nodeText(c, src))
	}
	return b.String()
}
