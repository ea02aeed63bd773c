// SPDX-License-Identifier: MIT

// Package styles defines the style document: a named set of per-role
// style blocks that the projector writes onto the page.
package styles

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// Role identifies one of the fixed UI targets a document can style.
type Role string

const (
	RoleBody     Role = "body"
	RoleHeading  Role = "heading"
	RoleButton   Role = "button"
	RoleSelector Role = "selector"
)

// Reserved button keys. They describe the color cycle and are never
// written as literal properties.
const (
	KeyColors        = "colors"
	KeyColorProperty = "colorProperty"
	KeyInitialColor  = "initialColor"
)

// Presentation channels touched by the background resolution rules.
const (
	PropBackground      = "background"
	PropBackgroundColor = "backgroundColor"
	PropBackgroundImage = "backgroundImage"
	PropColor           = "color"
)

// DefaultColorProperty is the channel the color cycle mutates when a
// button block does not name one.
const DefaultColorProperty = PropBackgroundColor

// Document is the unit of configuration.
type Document struct {
	Name   string `json:"name,omitempty"`
	Styles Styles `json:"styles"`
}

// Styles holds the role blocks of a document. A nil block means the
// document does not style that role.
type Styles struct {
	Body     *Block `json:"body,omitempty" validate:"required"`
	Heading  *Block `json:"heading,omitempty"`
	Button   *Block `json:"button,omitempty" validate:"required"`
	Selector *Block `json:"configSelector,omitempty"`
}

// Block returns the block for a role, or nil.
func (s Styles) Block(role Role) *Block {
	switch role {
	case RoleBody:
		return s.Body
	case RoleHeading:
		return s.Heading
	case RoleButton:
		return s.Button
	case RoleSelector:
		return s.Selector
	}
	return nil
}

// DisplayName returns the document name, falling back to its key.
func (d *Document) DisplayName(key string) string {
	if d == nil || d.Name == "" {
		return key
	}
	return d.Name
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{
		Name: d.Name,
		Styles: Styles{
			Body:     d.Styles.Body.Clone(),
			Heading:  d.Styles.Heading.Clone(),
			Button:   d.Styles.Button.Clone(),
			Selector: d.Styles.Selector.Clone(),
		},
	}
}

// Block is an unordered property map plus the reserved color cycle
// metadata (only meaningful on the button role).
type Block struct {
	Properties    map[string]string
	Colors        []string
	ColorProperty string
	InitialColor  string
}

// Get returns a literal property value.
func (b *Block) Get(property string) (string, bool) {
	if b == nil {
		return "", false
	}
	v, ok := b.Properties[property]
	return v, ok
}

// ResolvedColorProperty returns the channel the color cycle writes to.
func (b *Block) ResolvedColorProperty() string {
	if b == nil || b.ColorProperty == "" {
		return DefaultColorProperty
	}
	return b.ColorProperty
}

// SortedKeys returns the literal property names in a stable order.
func (b *Block) SortedKeys() []string {
	if b == nil {
		return nil
	}
	keys := make([]string, 0, len(b.Properties))
	for k := range b.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the block.
func (b *Block) Clone() *Block {
	if b == nil {
		return nil
	}
	out := &Block{
		Properties:    make(map[string]string, len(b.Properties)),
		ColorProperty: b.ColorProperty,
		InitialColor:  b.InitialColor,
	}
	for k, v := range b.Properties {
		out.Properties[k] = v
	}
	if b.Colors != nil {
		out.Colors = append([]string(nil), b.Colors...)
	}
	return out
}

// UnmarshalJSON splits the reserved keys out of the flat JSON object.
// Non-string scalars are kept as their JSON text.
func (b *Block) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	b.Properties = make(map[string]string, len(raw))
	for key, value := range raw {
		switch key {
		case KeyColors:
			var colors []string
			if err := json.Unmarshal(value, &colors); err != nil {
				return fmt.Errorf("%s: %w", KeyColors, err)
			}
			b.Colors = colors
		case KeyColorProperty:
			s, err := scalarString(value)
			if err != nil {
				return fmt.Errorf("%s: %w", KeyColorProperty, err)
			}
			b.ColorProperty = s
		case KeyInitialColor:
			s, err := scalarString(value)
			if err != nil {
				return fmt.Errorf("%s: %w", KeyInitialColor, err)
			}
			b.InitialColor = s
		default:
			s, err := scalarString(value)
			if err != nil {
				return fmt.Errorf("property %q: %w", key, err)
			}
			b.Properties[key] = s
		}
	}
	return nil
}

// MarshalJSON writes the block back as one flat object.
func (b Block) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Properties)+3)
	for k, v := range b.Properties {
		out[k] = v
	}
	if b.Colors != nil {
		out[KeyColors] = b.Colors
	}
	if b.ColorProperty != "" {
		out[KeyColorProperty] = b.ColorProperty
	}
	if b.InitialColor != "" {
		out[KeyInitialColor] = b.InitialColor
	}
	return json.Marshal(out)
}

func scalarString(value json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(value)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("expected scalar value, got %s", kindOf(trimmed[0]))
	default:
		return string(trimmed), nil
	}
}

func kindOf(c byte) string {
	if c == '{' {
		return "object"
	}
	return "array"
}

// IsGradient reports whether a background value uses a gradient function.
func IsGradient(value string) bool {
	return strings.Contains(value, "gradient")
}

// Parse decodes a document from JSON.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Marshal encodes a document as indented JSON.
func Marshal(doc *Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}
