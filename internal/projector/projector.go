// SPDX-License-Identifier: MIT

// Package projector resolves a style document into concrete inline styles
// on the page's role targets.
package projector

import (
	"github.com/thatcatcamp/themecycle/internal/styles"
)

// Fixed values used by the derived selector and generator panel styling.
const (
	selectorGradientBackground = "#ffffff"
	selectorGradientText       = "#333333"
	selectorPadding            = "5px 10px"
	selectorBorderRadius       = "4px"
	selectorBorder             = "1px solid"
	generatorOpacity           = "0.9"
	generatorGradientOverlay   = "rgba(255, 255, 255, 0.1)"
)

// Target receives presentation properties. An empty value clears the
// property.
type Target interface {
	SetStyle(property, value string)
}

// Targets is the fixed set of role targets. Nil targets are skipped.
type Targets struct {
	Body            Target
	Heading         Target
	Button          Target
	Selector        Target
	SelectorLabel   Target
	SelectorControl Target
	GeneratorPanel  Target
}

// Projector applies documents to a Targets set. It keeps no state of its
// own beyond the targets.
type Projector struct {
	targets Targets
}

// New creates a projector bound to targets.
func New(targets Targets) *Projector {
	return &Projector{targets: targets}
}

// Targets returns the bound targets.
func (p *Projector) Targets() Targets {
	return p.targets
}

// Apply projects doc onto the targets. Roles the document does not style
// keep their current presentation.
func (p *Projector) Apply(doc *styles.Document) {
	if doc == nil {
		return
	}
	t := p.targets
	s := doc.Styles

	if s.Body != nil {
		ApplyBlock(t.Body, s.Body)
	}
	if s.Heading != nil {
		ApplyBlock(t.Heading, s.Heading)
	}
	if s.Button != nil {
		ApplyBlock(t.Button, s.Button)
		// initialColor always wins over a literal property of the same name.
		if s.Button.InitialColor != "" {
			set(t.Button, s.Button.ResolvedColorProperty(), s.Button.InitialColor)
		}
	}
	if s.Selector != nil {
		ApplyBlock(t.Selector, s.Selector)
		ApplyBlock(t.SelectorLabel, s.Selector)
		applySelectorControl(t.SelectorControl, s.Body, s.Selector)
		applyGeneratorPanel(t.GeneratorPanel, s.Body, s.Selector)
	}
}

// ApplyBlock writes every literal property of block onto target,
// resolving the polymorphic background property into exactly one of the
// image and color channels.
func ApplyBlock(target Target, block *styles.Block) {
	if target == nil || block == nil {
		return
	}
	for _, property := range block.SortedKeys() {
		value := block.Properties[property]
		switch property {
		case styles.KeyColors, styles.KeyColorProperty, styles.KeyInitialColor:
			continue
		case styles.PropBackground:
			applyBackground(target, value)
		default:
			target.SetStyle(property, value)
		}
	}
}

func applyBackground(target Target, value string) {
	if styles.IsGradient(value) {
		target.SetStyle(styles.PropBackgroundImage, value)
		target.SetStyle(styles.PropBackgroundColor, "")
		return
	}
	target.SetStyle(styles.PropBackgroundColor, value)
	target.SetStyle(styles.PropBackgroundImage, "")
}

func applySelectorControl(target Target, body, selector *styles.Block) {
	if target == nil {
		return
	}
	color, hasColor := nonEmpty(selector, styles.PropColor)
	if hasColor {
		target.SetStyle(styles.PropColor, color)
	}

	if background, ok := nonEmpty(body, styles.PropBackground); ok {
		if styles.IsGradient(background) {
			target.SetStyle(styles.PropBackgroundColor, selectorGradientBackground)
			target.SetStyle(styles.PropColor, selectorGradientText)
		} else {
			target.SetStyle(styles.PropBackgroundColor, background)
		}
		target.SetStyle(styles.PropBackgroundImage, "")
	} else if backgroundColor, ok := nonEmpty(body, styles.PropBackgroundColor); ok {
		target.SetStyle(styles.PropBackgroundColor, backgroundColor)
		target.SetStyle(styles.PropBackgroundImage, "")
	}

	target.SetStyle("padding", selectorPadding)
	target.SetStyle("borderRadius", selectorBorderRadius)
	target.SetStyle("border", selectorBorder)
	if hasColor {
		target.SetStyle("borderColor", color)
	}
}

func applyGeneratorPanel(target Target, body, selector *styles.Block) {
	if target == nil {
		return
	}
	if color, ok := nonEmpty(selector, styles.PropColor); ok {
		target.SetStyle(styles.PropColor, color)
		target.SetStyle("borderColor", color)
	}
	if body == nil {
		return
	}
	if backgroundColor, ok := nonEmpty(body, styles.PropBackgroundColor); ok {
		target.SetStyle(styles.PropBackgroundColor, backgroundColor)
		target.SetStyle("opacity", generatorOpacity)
	} else if _, ok := nonEmpty(body, styles.PropBackground); ok {
		target.SetStyle(styles.PropBackgroundColor, generatorGradientOverlay)
	}
}

func set(target Target, property, value string) {
	if target == nil {
		return
	}
	target.SetStyle(property, value)
}

// nonEmpty reads a property for the derived pass. Empty values count as
// unset.
func nonEmpty(b *styles.Block, property string) (string, bool) {
	v, ok := b.Get(property)
	return v, ok && v != ""
}
