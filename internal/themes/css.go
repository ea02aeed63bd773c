// SPDX-License-Identifier: MIT
package themes

import (
	"strings"

	"github.com/thatcatcamp/themecycle/internal/page"
)

// GenerateCSS renders the page's current inline styles as a stylesheet,
// one rule per styled element.
func GenerateCSS(p *page.Page) string {
	var b strings.Builder
	b.WriteString("/* Generated theme */\n")
	for _, e := range p.Elements() {
		decls := safeDeclarations(e)
		if len(decls) == 0 {
			continue
		}
		b.WriteString(selectorFor(e.ID))
		b.WriteString(" {\n")
		for _, d := range decls {
			b.WriteString("  ")
			b.WriteString(d.CSSName())
			b.WriteString(": ")
			b.WriteString(d.Value)
			b.WriteString(";\n")
		}
		b.WriteString("}\n\n")
	}
	return b.String()
}

func selectorFor(id string) string {
	if id == page.IDBody {
		return "body"
	}
	return "#" + id
}

// safeDeclarations drops declarations that could close the rule and
// inject others.
func safeDeclarations(e *page.Element) []page.Declaration {
	all := e.Declarations()
	out := all[:0]
	for _, d := range all {
		if d.Safe() {
			out = append(out, d)
		}
	}
	return out
}
