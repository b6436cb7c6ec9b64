// Package svg builds the SVG element tree the scene mutates in place. The
// tree is an etree DOM so the same elements can be rewritten every frame and
// serialized at any point.
package svg

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"
)

// Namespace is the SVG XML namespace.
const Namespace = "http://www.w3.org/2000/svg"

// Decorator mutates an element once, at creation.
type Decorator func(*etree.Element)

// Node creates a tag, applies decorate (if any) and appends children in order.
func Node(tag string, decorate Decorator, children ...*etree.Element) *etree.Element {
	el := etree.NewElement(tag)
	if decorate != nil {
		decorate(el)
	}
	for _, child := range children {
		if child != nil {
			el.AddChild(child)
		}
	}
	return el
}

// Attributes sets every key on the element. Keys are applied in sorted order
// so serialized output is stable.
func Attributes(atts map[string]string) Decorator {
	keys := make([]string, 0, len(atts))
	for k := range atts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return func(el *etree.Element) {
		for _, k := range keys {
			el.CreateAttr(k, atts[k])
		}
	}
}

// Chain applies decorators left to right.
func Chain(decorators ...Decorator) Decorator {
	return func(el *etree.Element) {
		for _, d := range decorators {
			if d != nil {
				d(el)
			}
		}
	}
}

// Root returns a full-size svg element.
func Root(children ...*etree.Element) *etree.Element {
	return Node("svg", Attributes(map[string]string{
		"xmlns":  Namespace,
		"width":  "100%",
		"height": "100%",
	}), children...)
}

// Defs wraps reusable definitions.
func Defs(children ...*etree.Element) *etree.Element {
	return Node("defs", nil, children...)
}

// DotsPattern is a 50x50 tile with a small white dot, referenced as url(#dots).
func DotsPattern() *etree.Element {
	return Node("pattern", Attributes(map[string]string{
		"id":           "dots",
		"width":        "50",
		"height":       "50",
		"patternUnits": "userSpaceOnUse",
	}), Node("circle", Attributes(map[string]string{
		"cx":   "5",
		"cy":   "5",
		"r":    "2",
		"fill": "white",
	})))
}

// Group returns an empty g element.
func Group(decorate Decorator, children ...*etree.Element) *etree.Element {
	return Node("g", decorate, children...)
}

// Path returns an empty path element.
func Path(decorate Decorator) *etree.Element {
	return Node("path", decorate)
}

// Translate formats a translate transform.
func Translate(x, y float64) string {
	return fmt.Sprintf("translate(%v, %v)", x, y)
}

// SetAttr writes key only if the value changed and reports whether it did.
func SetAttr(el *etree.Element, key, value string) bool {
	if a := el.SelectAttr(key); a != nil && a.Value == value {
		return false
	}
	el.CreateAttr(key, value)
	return true
}

// Document wraps root in a document with an XML declaration.
func Document(root *etree.Element) *etree.Document {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.SetRoot(root)
	return doc
}
