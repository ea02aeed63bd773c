// SPDX-License-Identifier: MIT

// Package page models the configurator page: a fixed set of elements, each
// carrying an ordered inline style map.
package page

import (
	"strings"
	"unicode"
)

// Element IDs used by the rendered page.
const (
	IDBody            = "body"
	IDHeading         = "heading"
	IDButton          = "colorButton"
	IDSelector        = "configSelector"
	IDSelectorLabel   = "configLabel"
	IDSelectorControl = "configSelect"
	IDGenerator       = "aiGenerator"
)

// Declaration is one inline style property.
type Declaration struct {
	Property string
	Value    string
}

// CSSName returns the property in CSS (kebab-case) form.
func (d Declaration) CSSName() string {
	return CSSName(d.Property)
}

// Safe reports whether the declaration can be written into a style
// attribute or stylesheet without ending it. Values come from pulled and
// generated documents.
func (d Declaration) Safe() bool {
	for _, s := range []string{d.Property, d.Value} {
		if strings.ContainsAny(s, "{};<>\\") || strings.Contains(s, "/*") {
			return false
		}
	}
	return d.Property != ""
}

// Element is one styled page element.
type Element struct {
	ID     string
	values map[string]string
	order  []string
}

// NewElement creates an unstyled element.
func NewElement(id string) *Element {
	return &Element{ID: id, values: make(map[string]string)}
}

// SetStyle sets a property. An empty value removes it.
func (e *Element) SetStyle(property, value string) {
	if value == "" {
		if _, ok := e.values[property]; !ok {
			return
		}
		delete(e.values, property)
		for i, p := range e.order {
			if p == property {
				e.order = append(e.order[:i], e.order[i+1:]...)
				break
			}
		}
		return
	}
	if _, ok := e.values[property]; !ok {
		e.order = append(e.order, property)
	}
	e.values[property] = value
}

// Style returns the current value of a property, or "".
func (e *Element) Style(property string) string {
	return e.values[property]
}

// Declarations returns the properties in the order they were first set.
func (e *Element) Declarations() []Declaration {
	out := make([]Declaration, 0, len(e.order))
	for _, p := range e.order {
		out = append(out, Declaration{Property: p, Value: e.values[p]})
	}
	return out
}

// Inline renders the element's styles as a style attribute value.
func (e *Element) Inline() string {
	var b strings.Builder
	for _, d := range e.Declarations() {
		if !d.Safe() {
			continue
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(d.CSSName())
		b.WriteString(": ")
		b.WriteString(d.Value)
		b.WriteString(";")
	}
	return b.String()
}

// Page holds every element the projector can style.
type Page struct {
	Body            *Element
	Heading         *Element
	Button          *Element
	Selector        *Element
	SelectorLabel   *Element
	SelectorControl *Element
	Generator       *Element
}

// New creates a page with unstyled elements.
func New() *Page {
	return &Page{
		Body:            NewElement(IDBody),
		Heading:         NewElement(IDHeading),
		Button:          NewElement(IDButton),
		Selector:        NewElement(IDSelector),
		SelectorLabel:   NewElement(IDSelectorLabel),
		SelectorControl: NewElement(IDSelectorControl),
		Generator:       NewElement(IDGenerator),
	}
}

// Elements returns the elements in document order.
func (p *Page) Elements() []*Element {
	return []*Element{p.Body, p.Heading, p.Button, p.Selector, p.SelectorLabel, p.SelectorControl, p.Generator}
}

// Snapshot copies the current styles keyed by element ID.
func (p *Page) Snapshot() map[string]map[string]string {
	out := make(map[string]map[string]string)
	for _, e := range p.Elements() {
		styles := make(map[string]string, len(e.values))
		for k, v := range e.values {
			styles[k] = v
		}
		out[e.ID] = styles
	}
	return out
}

// CSSName converts a camelCase property name to its CSS form. Names that
// already contain a dash are returned unchanged.
func CSSName(property string) string {
	if strings.Contains(property, "-") {
		return property
	}
	var b strings.Builder
	for _, r := range property {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
