package io

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/tagcloud/pkg/cloud"
	"github.com/matzehuels/tagcloud/pkg/errors"
)

// missingText stands in for list items without any text.
const missingText = "?"

// ReadHTML reads records from the first <ul> in an HTML document or
// fragment. Every <li> inside it, nested ones included, becomes a record in
// document order.
//
// The weight is the data-weight attribute of the <li>, or of its first child
// element when the <li> has none. A missing weight is left nil. The link is
// the href of the first <a> in the item.
func ReadHTML(r io.Reader) ([]cloud.Record, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse HTML")
	}

	list := find(doc, atom.Ul)
	if list == nil {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no <ul> list found")
	}

	var recs []cloud.Record
	walk(list, func(n *html.Node) {
		if n.DataAtom == atom.Li {
			recs = append(recs, listItem(n))
		}
	})
	return recs, nil
}

func listItem(li *html.Node) cloud.Record {
	rec := cloud.Record{Tag: strings.TrimSpace(text(li))}
	if rec.Tag == "" {
		rec.Tag = missingText
	}

	if w, ok := attr(li, "data-weight"); ok {
		rec.Weight = w
	} else if c := firstElement(li); c != nil {
		if w, ok := attr(c, "data-weight"); ok {
			rec.Weight = w
		}
	}

	if a := find(li, atom.A); a != nil {
		rec.Link, _ = attr(a, "href")
	}
	return rec
}

// MergeRecords overlays list entries onto base records by position. For an
// index present in both, the entry's text always replaces the base tag, and
// its weight and link replace the base values when present. Entries beyond
// the end of base are appended. Neither input is modified.
func MergeRecords(base, list []cloud.Record) []cloud.Record {
	out := make([]cloud.Record, len(base), max(len(base), len(list)))
	copy(out, base)
	for i, e := range list {
		if i >= len(out) {
			out = append(out, e)
			continue
		}
		if e.Weight != nil {
			out[i].Weight = e.Weight
		}
		if e.Link != "" {
			out[i].Link = e.Link
		}
		out[i].Tag = e.Tag
	}
	return out
}

func walk(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			fn(c)
		}
		walk(c, fn)
	}
}

func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

func firstElement(n *html.Node) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			return c
		}
	}
	return nil
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func text(n *html.Node) string {
	var b strings.Builder
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	return b.String()
}
