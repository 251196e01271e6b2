package xmlpath

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// Namespaces maps the prefixes used in paths to namespace URIs.
type Namespaces map[string]string

// Order lists, per parent element, its children in schema sequence.
// Keys and values are prefixed names using the Namespaces prefixes.
type Order map[string][]string

// URI returns the namespace URI bound to prefix.
func (ns Namespaces) URI(prefix string) (string, bool) {
	uri, ok := ns[prefix]

	return uri, ok
}

// PrefixFor returns the prefix bound to uri. When several prefixes share the
// URI the alphabetically first one wins.
func (ns Namespaces) PrefixFor(uri string) (string, bool) {
	var found []string

	for p, u := range ns {
		if u == uri {
			found = append(found, p)
		}
	}

	if len(found) == 0 {
		return "", false
	}

	slices.Sort(found)

	return found[0], true
}

// QName returns the prefixed name of el in terms of ns. Elements whose
// namespace is not in ns keep their document tag.
func QName(el *etree.Element, ns Namespaces) string {
	if p, ok := ns.PrefixFor(el.NamespaceURI()); ok {
		return p + ":" + el.Tag
	}

	return el.FullTag()
}

// Compile translates the path into an etree path that matches elements by
// local name and namespace URI.
func (p Path) Compile(ns Namespaces) (etree.Path, error) {
	var b strings.Builder

	if p.Descendant {
		b.WriteString("//")
	} else {
		b.WriteString("/")
	}

	for i, s := range p.Steps {
		uri, ok := ns.URI(s.Prefix)
		if !ok {
			return etree.Path{}, fmt.Errorf("path %s: unbound prefix %q", p.Raw, s.Prefix)
		}

		if i > 0 {
			b.WriteByte('/')
		}

		fmt.Fprintf(&b, "*[local-name()=%s][namespace-uri()=%s]", quote(s.Local), quote(uri))

		if s.HasFilter() {
			fmt.Fprintf(&b, "[@%s=%s]", s.AttrName, quote(s.AttrValue))
		}
	}

	compiled, err := etree.CompilePath(b.String())
	if err != nil {
		return etree.Path{}, fmt.Errorf("path %s: %w", p.Raw, err)
	}

	return compiled, nil
}

// Find returns the elements of doc matched by the path, in document order
// for absolute paths.
func (p Path) Find(doc *etree.Document, ns Namespaces) ([]*etree.Element, error) {
	compiled, err := p.Compile(ns)
	if err != nil {
		return nil, err
	}

	return doc.FindElementsPath(compiled), nil
}

// FindFrom evaluates the path with root as the document element. Unlike
// Find it works on trees that are not attached to a document.
func (p Path) FindFrom(root *etree.Element, ns Namespaces) ([]*etree.Element, error) {
	if root == nil {
		return nil, nil
	}

	if p.Descendant {
		compiled, err := p.Compile(ns)
		if err != nil {
			return nil, err
		}

		return root.FindElementsPath(compiled), nil
	}

	ok, err := p.Steps[0].matches(root, ns)
	if err != nil {
		return nil, fmt.Errorf("path %s: %w", p.Raw, err)
	}

	if !ok {
		return nil, nil
	}

	frontier := []*etree.Element{root}

	for _, step := range p.Steps[1:] {
		var next []*etree.Element

		for _, parent := range frontier {
			matched, err := step.children(parent, ns)
			if err != nil {
				return nil, fmt.Errorf("path %s: %w", p.Raw, err)
			}

			next = append(next, matched...)
		}

		if len(next) == 0 {
			return nil, nil
		}

		frontier = next
	}

	return frontier, nil
}

// Ensure returns the elements matched by the absolute path, creating every
// missing element along the way. It reports how many elements were created.
func (p Path) Ensure(doc *etree.Document, ns Namespaces, order Order) ([]*etree.Element, int, error) {
	if p.Descendant {
		return nil, 0, fmt.Errorf("path %s: cannot create elements along a descendant path", p.Raw)
	}

	root := doc.Root()
	if root == nil {
		return nil, 0, errors.New("document has no root element")
	}

	first := p.Steps[0]

	ok, err := first.matches(root, ns)
	if err != nil {
		return nil, 0, fmt.Errorf("path %s: %w", p.Raw, err)
	}

	if !ok {
		return nil, 0, fmt.Errorf("path %s does not start at root element %s", p.Raw, root.FullTag())
	}

	created := 0
	frontier := []*etree.Element{root}

	for _, step := range p.Steps[1:] {
		var next []*etree.Element

		for _, parent := range frontier {
			matched, err := step.children(parent, ns)
			if err != nil {
				return nil, 0, fmt.Errorf("path %s: %w", p.Raw, err)
			}

			if len(matched) == 0 {
				child := createChild(root, parent, step, ns, order)
				matched = []*etree.Element{child}
				created++
			}

			next = append(next, matched...)
		}

		frontier = next
	}

	return frontier, created, nil
}

func (s Step) matches(el *etree.Element, ns Namespaces) (bool, error) {
	uri, ok := ns.URI(s.Prefix)
	if !ok {
		return false, fmt.Errorf("unbound prefix %q", s.Prefix)
	}

	if el.Tag != s.Local || el.NamespaceURI() != uri {
		return false, nil
	}

	if s.HasFilter() {
		attr := el.SelectAttr(s.AttrName)
		if attr == nil || attr.Value != s.AttrValue {
			return false, nil
		}
	}

	return true, nil
}

func (s Step) children(parent *etree.Element, ns Namespaces) ([]*etree.Element, error) {
	var out []*etree.Element

	for _, c := range parent.ChildElements() {
		ok, err := s.matches(c, ns)
		if err != nil {
			return nil, err
		}

		if ok {
			out = append(out, c)
		}
	}

	return out, nil
}

// createChild builds the element for step under parent and places it at its
// schema position.
func createChild(root, parent *etree.Element, step Step, ns Namespaces, order Order) *etree.Element {
	uri := ns[step.Prefix]

	el := etree.NewElement(step.Local)
	el.Space = boundPrefix(root, parent, uri, step.Prefix)

	if step.HasFilter() {
		el.CreateAttr(step.AttrName, step.AttrValue)
	}

	siblings := order[QName(parent, ns)]

	pos := slices.Index(siblings, step.QName())
	if pos >= 0 {
		for _, c := range parent.ChildElements() {
			if slices.Index(siblings, QName(c, ns)) > pos {
				parent.InsertChildAt(c.Index(), el)

				return el
			}
		}
	}

	parent.AddChild(el)

	return el
}

// boundPrefix finds the document prefix for uri in scope at parent. When the
// namespace is not declared, it is declared on the root element using
// preferred (or a numbered variant if preferred is taken).
func boundPrefix(root, parent *etree.Element, uri, preferred string) string {
	for e := parent; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if a.Space == "xmlns" && a.Value == uri {
				return a.Key
			}

			if a.Space == "" && a.Key == "xmlns" && a.Value == uri {
				return ""
			}
		}
	}

	prefix := preferred
	for n := 1; root.SelectAttr("xmlns:"+prefix) != nil; n++ {
		prefix = preferred + strconv.Itoa(n)
	}

	root.CreateAttr("xmlns:"+prefix, uri)

	return prefix
}

func quote(s string) string {
	if strings.ContainsRune(s, '\'') {
		return `"` + s + `"`
	}

	return "'" + s + "'"
}
